package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dkotelnikov/invoicehub/internal/dbx"
	migrations "github.com/dkotelnikov/invoicehub/internal/server/migrations/sqlite"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/invoices"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/users"
)

type SQLiteRepositoryManager struct {
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Invoices(db dbx.DBTX) invoices.Repository {
	return invoices.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
