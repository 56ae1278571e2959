package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dkotelnikov/invoicehub/internal/dbx"
	migrations "github.com/dkotelnikov/invoicehub/internal/server/migrations/postgres"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/invoices"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/users"
)

type PostgresRepositoryManager struct {
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Invoices(db dbx.DBTX) invoices.Repository {
	return invoices.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
