package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkotelnikov/invoicehub/internal/common"
	"github.com/dkotelnikov/invoicehub/internal/logging"
	"github.com/dkotelnikov/invoicehub/internal/server/models"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/repomanager"
	"github.com/dkotelnikov/invoicehub/internal/server/validation"
)

// InvoiceInput carries the raw form fields of a create/update submission.
// All values are strings as received from the transport.
type InvoiceInput struct {
	CustomerName    string
	CustomerAddress string
	Date            string
	InvoiceNo       string
	Description     string
	Total           string
}

type InvoiceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewInvoiceService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *InvoiceService {
	return &InvoiceService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "invoice_service"),
	}
}

// validate trims and checks the six submitted fields, in order: presence,
// total, date. It returns the validated invoice fields ready to persist.
func (s *InvoiceService) validate(in InvoiceInput) (*models.Invoice, error) {

	fields := []*string{
		&in.CustomerName, &in.CustomerAddress, &in.Date,
		&in.InvoiceNo, &in.Description, &in.Total,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
		}
	}

	total, err := validation.Total(in.Total)
	if err != nil {
		return nil, err
	}

	if err := validation.Date(in.Date); err != nil {
		return nil, err
	}

	return &models.Invoice{
		CustomerName:    in.CustomerName,
		CustomerAddress: in.CustomerAddress,
		Date:            in.Date,
		InvoiceNo:       in.InvoiceNo,
		Description:     in.Description,
		Total:           total,
	}, nil
}

// List returns all invoices owned by ownerID in insertion order.
func (s *InvoiceService) List(ctx context.Context, ownerID int64) ([]*models.Invoice, error) {

	repo := s.repomanager.Invoices(s.db)

	result, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices: %w", err)
	}

	return result, nil
}

// Create validates the input and persists a new invoice for ownerID with
// status Unpaid. Validation failures persist nothing.
func (s *InvoiceService) Create(ctx context.Context, ownerID int64, in InvoiceInput) (*models.Invoice, error) {

	invoice, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	invoice.UserID = ownerID
	invoice.Status = models.StatusUnpaid

	repo := s.repomanager.Invoices(s.db)

	invoice, err = repo.Create(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("error creating invoice: %w", err)
	}

	return invoice, nil
}

// Get returns the invoice scoped to (id, ownerID). A foreign-owned id is
// indistinguishable from a missing one: both yield common.ErrorNotFound.
func (s *InvoiceService) Get(ctx context.Context, ownerID, id int64) (*models.Invoice, error) {

	repo := s.repomanager.Invoices(s.db)

	invoice, err := repo.GetByID(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching invoice: %w", err)
	}

	return invoice, nil
}

// Update overwrites all mutable fields of the invoice scoped to
// (id, ownerID), including status. The same validations as Create apply,
// plus the status enumeration check.
func (s *InvoiceService) Update(ctx context.Context, ownerID, id int64, in InvoiceInput, status string) (*models.Invoice, error) {

	invoice, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	parsedStatus, ok := models.ParseInvoiceStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status", common.ErrorValidation)
	}

	invoice.ID = id
	invoice.UserID = ownerID
	invoice.Status = parsedStatus

	repo := s.repomanager.Invoices(s.db)

	if err := repo.Update(ctx, invoice); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating invoice: %w", err)
	}

	return invoice, nil
}

// Delete removes the invoice scoped to (id, ownerID). Deleting a missing
// or foreign-owned id is an explicit no-op: it is logged and succeeds.
func (s *InvoiceService) Delete(ctx context.Context, ownerID, id int64) error {

	repo := s.repomanager.Invoices(s.db)

	affected, err := repo.Delete(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("error deleting invoice: %w", err)
	}

	if affected == 0 {
		s.logger.Warn(ctx, "delete was a no-op", "invoice_id", id, "owner_id", ownerID)
	}

	return nil
}
