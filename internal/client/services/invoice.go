// Package services implements the client-side invoice workflows: submitting
// a draft (online or queued offline) and reconciling the offline queue with
// the authoritative server.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexsys-labs/billing/internal/client/api"
	"github.com/nexsys-labs/billing/internal/client/models"
	"github.com/nexsys-labs/billing/internal/client/repositories/metadata"
	"github.com/nexsys-labs/billing/internal/client/repositories/queue"
	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/dbx"
	"github.com/nexsys-labs/billing/internal/logging"
)

// SubmitResult reports where a submitted invoice ended up. Identity is
// confirmed when the server persisted the record, provisional when it was
// queued offline.
type SubmitResult struct {
	Queued   bool
	Identity models.Identity
	Invoice  *api.ServerInvoice // set only when persisted online
}

type InvoiceService struct {
	client api.Client
	db     *sql.DB
	queue  queue.Repository
	logger logging.Logger
}

func NewInvoiceService(c api.Client, db *sql.DB, l logging.Logger) *InvoiceService {
	return &InvoiceService{
		client: c,
		db:     db,
		queue:  queue.NewSQLiteRepository(db),
		logger: l.With("module", "invoice_service"),
	}
}

// Submit sends a draft to the server; when the server is unreachable the
// invoice is assigned a provisional local number and queued durably instead.
// Any other failure is surfaced to the caller immediately.
func (s *InvoiceService) Submit(ctx context.Context, draft *models.Draft) (*SubmitResult, error) {
	draft.Total = models.ComputeTotal(draft.Items)

	inv, err := s.client.CreateInvoice(ctx, draft)
	if err == nil {
		return &SubmitResult{
			Identity: models.Identity{Confirmed: true, Number: inv.InvoiceNumber},
			Invoice:  inv,
		}, nil
	}

	if !errors.Is(err, common.ErrServerUnavailable) {
		return nil, fmt.Errorf("submitting invoice: %w", err)
	}

	s.logger.Warn(ctx, "server unreachable, queueing invoice offline", "error", err)

	// Counter bump and enqueue commit together: a crash cannot leave a
	// burned local number without its record or vice versa.
	var q *models.QueuedInvoice
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		local, err := metadata.NewSQLiteRepository(tx).IncrementCounter(ctx, metadata.KeyLastLocalInvoiceNumber)
		if err != nil {
			return fmt.Errorf("allocating local number: %w", err)
		}

		q = &models.QueuedInvoice{
			ID:          uuid.NewString(),
			LocalNumber: local,
			Customer:    draft.Customer,
			Date:        draft.Date,
			Items:       draft.Items,
			Total:       draft.Total,
			CreatedAt:   time.Now().UTC(),
		}
		return queue.NewSQLiteRepository(tx).Enqueue(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("queueing invoice: %w", err)
	}

	s.logger.Info(ctx, "invoice queued offline", "local_number", q.LocalNumber)

	return &SubmitResult{
		Queued:   true,
		Identity: q.Identity(),
	}, nil
}

// List returns the server's records when reachable, annotated local history
// otherwise.
func (s *InvoiceService) List(ctx context.Context) ([]*api.ServerInvoice, error) {
	return s.client.ListInvoices(ctx)
}

// Get fetches one confirmed invoice from the server.
func (s *InvoiceService) Get(ctx context.Context, number int64) (*api.ServerInvoice, error) {
	return s.client.GetInvoice(ctx, number)
}

// Pending returns the queued records awaiting reconciliation, oldest first.
func (s *InvoiceService) Pending(ctx context.Context) ([]*models.QueuedInvoice, error) {
	return s.queue.ListPending(ctx)
}

// History returns all locally recorded invoices, synced and pending.
func (s *InvoiceService) History(ctx context.Context) ([]*models.QueuedInvoice, error) {
	return s.queue.ListAll(ctx)
}
