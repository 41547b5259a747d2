// Package queue provides the SQLite-backed offline invoice queue.
package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nexsys-labs/billing/internal/client/models"
	"github.com/nexsys-labs/billing/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Enqueue appends a record to the durable queue. The write is a single
// statement, so it is atomic with respect to a concurrent drain.
func (r *SQLiteRepository) Enqueue(ctx context.Context, inv *models.QueuedInvoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	query := `INSERT INTO queued_invoices (id, local_number, customer, invoice_date, items, total, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		inv.ID, inv.LocalNumber, inv.Customer, inv.Date, items, inv.Total, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue invoice: %w", err)
	}
	return nil
}

// ListPending returns unsynced records oldest-first. FIFO order approximates
// the order invoices were actually created offline.
func (r *SQLiteRepository) ListPending(ctx context.Context) ([]*models.QueuedInvoice, error) {
	query := `SELECT id, local_number, customer, invoice_date, items, total, created_at, synced, server_number
			FROM queued_invoices WHERE synced=0 ORDER BY created_at, local_number`
	return r.list(ctx, query)
}

// ListAll returns every queued record, pending and synced, oldest-first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*models.QueuedInvoice, error) {
	query := `SELECT id, local_number, customer, invoice_date, items, total, created_at, synced, server_number
			FROM queued_invoices ORDER BY created_at, local_number`
	return r.list(ctx, query)
}

func (r *SQLiteRepository) list(ctx context.Context, query string) ([]*models.QueuedInvoice, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to select queued invoices: %w", err)
	}
	defer rows.Close()

	var result []*models.QueuedInvoice
	for rows.Next() {
		inv := &models.QueuedInvoice{}
		var items []byte
		var synced int
		if err := rows.Scan(&inv.ID, &inv.LocalNumber, &inv.Customer, &inv.Date,
			&items, &inv.Total, &inv.CreatedAt, &synced, &inv.ServerNumber); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
		inv.Synced = synced == 1
		result = append(result, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkSynced acknowledges a record after the server confirmed it, recording
// the authoritative number. It expects exactly one pending row to be affected.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, serverNumber int64) error {
	query := `UPDATE queued_invoices SET synced=1, server_number=? WHERE id=? AND synced=0`
	res, err := r.db.ExecContext(ctx, query, serverNumber, id)
	if err != nil {
		return fmt.Errorf("failed to mark invoice synced: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}

// CountPending returns the number of unsynced records.
func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queued_invoices WHERE synced=0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending invoices: %w", err)
	}
	return n, nil
}

// PurgeSynced removes acknowledged records. Pending rows are never touched.
func (r *SQLiteRepository) PurgeSynced(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM queued_invoices WHERE synced=1`)
	if err != nil {
		return fmt.Errorf("failed to purge synced invoices: %w", err)
	}
	return nil
}
