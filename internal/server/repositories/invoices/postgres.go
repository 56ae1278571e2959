// Package invoices provides the invoice store repositories (PostgreSQL
// and embedded SQLite) behind a single Repository interface. All queries
// are parameterized and scoped by the owning user id.
package invoices

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkotelnikov/invoicehub/internal/common"
	"github.com/dkotelnikov/invoicehub/internal/dbx"
	"github.com/dkotelnikov/invoicehub/internal/server/models"
)

// PostgresRepository implements invoice storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Invoice, error) {

	query :=
		`SELECT id, user_id, customer_name, customer_address, date, invoice_no, description, total, status
		 FROM invoices
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Invoice
	for rows.Next() {
		item := &models.Invoice{}
		err := rows.Scan(&item.ID, &item.UserID, &item.CustomerName, &item.CustomerAddress,
			&item.Date, &item.InvoiceNo, &item.Description, &item.Total, &item.Status)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {

	query :=
		`INSERT INTO invoices (user_id, customer_name, customer_address, date, invoice_no, description, total, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		invoice.UserID, invoice.CustomerName, invoice.CustomerAddress, invoice.Date,
		invoice.InvoiceNo, invoice.Description, invoice.Total, invoice.Status).Scan(&invoice.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return invoice, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Invoice, error) {

	query :=
		`SELECT id, user_id, customer_name, customer_address, date, invoice_no, description, total, status
		 FROM invoices
		 WHERE id = $1 AND user_id = $2
		 `

	item := &models.Invoice{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&item.ID, &item.UserID, &item.CustomerName, &item.CustomerAddress,
			&item.Date, &item.InvoiceNo, &item.Description, &item.Total, &item.Status)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, invoice *models.Invoice) error {

	query :=
		`UPDATE invoices
		 SET customer_name = $1, customer_address = $2, date = $3,
		     invoice_no = $4, description = $5, total = $6, status = $7
		 WHERE id = $8 AND user_id = $9
		 `

	res, err := r.db.ExecContext(ctx, query,
		invoice.CustomerName, invoice.CustomerAddress, invoice.Date,
		invoice.InvoiceNo, invoice.Description, invoice.Total, invoice.Status,
		invoice.ID, invoice.UserID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID int64) (int64, error) {

	query :=
		`DELETE FROM invoices
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
