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

// SQLiteRepository implements invoice storage over an embedded SQLite
// database. Totals are stored as TEXT to keep decimal values exact.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Invoice, error) {

	query := `SELECT id, user_id, customer_name, customer_address, date, invoice_no, description, total, status
		FROM invoices
		WHERE user_id = ?
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

func (r *SQLiteRepository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {

	query := `INSERT INTO invoices (user_id, customer_name, customer_address, date, invoice_no, description, total, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		invoice.UserID, invoice.CustomerName, invoice.CustomerAddress, invoice.Date,
		invoice.InvoiceNo, invoice.Description, invoice.Total, invoice.Status)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	invoice.ID = id

	return invoice, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Invoice, error) {

	query := `SELECT id, user_id, customer_name, customer_address, date, invoice_no, description, total, status
		FROM invoices
		WHERE id = ? AND user_id = ?
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

func (r *SQLiteRepository) Update(ctx context.Context, invoice *models.Invoice) error {

	query := `UPDATE invoices
		SET customer_name = ?, customer_address = ?, date = ?,
		    invoice_no = ?, description = ?, total = ?, status = ?
		WHERE id = ? AND user_id = ?
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

func (r *SQLiteRepository) Delete(ctx context.Context, id, ownerID int64) (int64, error) {

	query := `DELETE FROM invoices
		WHERE id = ? AND user_id = ?
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
