package invoices

import (
	"context"

	"github.com/dkotelnikov/invoicehub/internal/server/models"
)

// Repository is the invoice store contract. Every read and write is scoped
// to the owning user id; a row belonging to another owner behaves exactly
// like a row that does not exist.
type Repository interface {
	// ListByOwner returns all invoices owned by ownerID in insertion order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Invoice, error)

	// Create inserts an invoice and returns it with the store-assigned id.
	Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error)

	// GetByID returns the invoice with the given id owned by ownerID,
	// or common.ErrorNotFound.
	GetByID(ctx context.Context, id, ownerID int64) (*models.Invoice, error)

	// Update overwrites all mutable fields of the invoice identified by
	// (invoice.ID, invoice.UserID). Returns common.ErrorNotFound when no
	// such row exists.
	Update(ctx context.Context, invoice *models.Invoice) error

	// Delete removes the invoice scoped to (id, ownerID) and reports the
	// number of rows deleted. Zero rows is not an error.
	Delete(ctx context.Context, id, ownerID int64) (int64, error)
}
