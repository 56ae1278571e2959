package users

import (
	"context"

	"github.com/dkotelnikov/invoicehub/internal/server/models"
)

type Repository interface {
	// Create inserts a new credential record and returns it with the
	// store-assigned id. A duplicate username yields common.ErrorAlreadyExists
	// and no state change.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username, or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
