// Package invoices provides the PostgreSQL-backed authoritative invoice
// store plus an in-memory variant used in tests and dev mode.
package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/dbx"
	"github.com/nexsys-labs/billing/internal/server/models"
)

// pgUniqueViolation is the SQLSTATE class for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresRepository implements invoice storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores the invoice under its pre-assigned number. The UNIQUE
// constraint on invoice_number is the backstop against concurrent
// allocations observing the same max; a violation surfaces as
// common.ErrDuplicateNumber so the caller can re-read the max and retry.
func (r *PostgresRepository) Insert(ctx context.Context, inv *models.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	query := `
		INSERT INTO invoices (invoice_number, customer, invoice_date, items, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	err = r.db.QueryRowContext(ctx, query,
		inv.InvoiceNumber, inv.Customer, inv.Date, items, inv.Total,
	).Scan(&inv.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrDuplicateNumber
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetMax returns the highest stored invoice number, or 0 for an empty store.
func (r *PostgresRepository) GetMax(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(invoice_number), 0) FROM invoices`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("select max invoice number: %w", err)
	}
	return max, nil
}

// GetByNumber returns a single invoice or common.ErrorNotFound.
func (r *PostgresRepository) GetByNumber(ctx context.Context, number int64) (*models.Invoice, error) {
	query := `
		SELECT invoice_number, customer, invoice_date, items, total, created_at
		FROM invoices WHERE invoice_number = $1
	`
	inv, err := scanInvoice(r.db.QueryRowContext(ctx, query, number))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select invoice %d: %w", number, err)
	}
	return inv, nil
}

// GetAll lists all invoices ordered by invoice number descending.
func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Invoice, error) {
	query := `
		SELECT invoice_number, customer, invoice_date, items, total, created_at
		FROM invoices ORDER BY invoice_number DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select invoices: %w", err)
	}
	defer rows.Close()

	var result []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	inv := &models.Invoice{}
	var items []byte
	if err := row.Scan(&inv.InvoiceNumber, &inv.Customer, &inv.Date, &items, &inv.Total, &inv.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return inv, nil
}
