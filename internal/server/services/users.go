// Package services contains the transport-independent application core:
// the session authenticator (UserService) and the owner-scoped invoice
// access layer (InvoiceService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkotelnikov/invoicehub/internal/common"
	"github.com/dkotelnikov/invoicehub/internal/server/auth"
	"github.com/dkotelnikov/invoicehub/internal/server/models"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/repomanager"
)

// minPasswordLen is the minimum accepted password length at signup.
const minPasswordLen = 8

// dummyPasswordHash is a valid bcrypt hash compared against when the
// username does not exist, so the login path costs the same for missing
// users and wrong passwords.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
	}
}

// Signup validates the credentials, hashes the password, and creates the
// user. A duplicate username yields common.ErrorAlreadyExists with no
// state change.
func (s *UserService) Signup(ctx context.Context, username, password string) (*models.User, error) {

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}

	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Username: username, PasswordHash: hash}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and returns the user for session
// establishment. Missing users and wrong passwords are indistinguishable:
// both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a hash comparison so timing does not reveal
			// whether the account exists
			auth.CheckPassword(dummyPasswordHash, password)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
