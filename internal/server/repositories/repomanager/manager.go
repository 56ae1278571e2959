// Package repomanager selects a store backend and hands out the matching
// repository implementations. The backend is an injected collaborator: the
// rest of the application only sees the Repository interfaces.
package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dkotelnikov/invoicehub/internal/dbx"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/invoices"
	"github.com/dkotelnikov/invoicehub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Invoices(db dbx.DBTX) invoices.Repository
}

// Open picks the store backend from the DSN: postgres:// and postgresql://
// URLs go to the networked PostgreSQL driver, anything else is treated as
// an embedded SQLite file path.
func Open(dsn string) (*sql.DB, RepositoryManager, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, err
		}
		return db, &PostgresRepositoryManager{}, nil
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	// SQLite allows a single writer; a one-connection pool avoids
	// SQLITE_BUSY and keeps :memory: databases from fragmenting per
	// connection.
	db.SetMaxOpenConns(1)
	return db, &SQLiteRepositoryManager{}, nil
}
