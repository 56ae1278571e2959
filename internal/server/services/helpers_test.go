package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/dkotelnikov/invoicehub/internal/dbx"
	"github.com/dkotelnikov/invoicehub/internal/logging"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/invoices"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/users"
)

// fakeRepoManager hands out whatever repositories the test wired in,
// ignoring the db handle.
type fakeRepoManager struct {
	users    users.Repository
	invoices invoices.Repository
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return f.users }

func (f *fakeRepoManager) Invoices(db dbx.DBTX) invoices.Repository { return f.invoices }

func newTestLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
