package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/nexsys-labs/billing/internal/client/api"
	"github.com/nexsys-labs/billing/internal/client/models"
	"github.com/nexsys-labs/billing/internal/client/repositories/queue"
	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/logging"
)

const (
	// itemRetryAttempts bounds the per-record network retry during a sync
	// pass. A record that still fails stays pending and is picked up by the
	// next pass; it must never block the rest of the batch.
	itemRetryAttempts = 3

	itemRetryBackoff = 500 * time.Millisecond
)

// SyncReport summarizes one reconciliation pass.
type SyncReport struct {
	Synced  int
	Failed  int
	Skipped int // pending records left untouched because the pass aborted early
}

// Reconciler replays queued invoices into the authoritative server once
// connectivity returns. The server re-assigns every invoice number; the
// local provisional numbers are discarded.
type Reconciler struct {
	client api.Client
	queue  queue.Repository
	logger logging.Logger

	mu sync.Mutex // one sync pass at a time
}

func NewReconciler(c api.Client, q queue.Repository, l logging.Logger) *Reconciler {
	return &Reconciler{
		client: c,
		queue:  q,
		logger: l.With("module", "reconciler"),
	}
}

// Run drains the queue every time the connectivity-restored signal fires,
// until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context, restored <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-restored:
			if !ok {
				return
			}
			report, err := r.SyncPending(ctx)
			if err != nil {
				r.logger.Error(ctx, "sync pass failed", "error", err)
				continue
			}
			r.logger.Info(ctx, "sync pass finished",
				"synced", report.Synced, "failed", report.Failed)
		}
	}
}

// SyncPending drains pending records FIFO. Each record is inserted on the
// server, which assigns the authoritative number, then acknowledged locally
// via MarkSynced. Per-record failures are logged and the record is retained
// for the next pass; one bad record never blocks the rest.
func (r *Reconciler) SyncPending(ctx context.Context) (*SyncReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.queue.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}

	for i, q := range pending {
		if ctx.Err() != nil {
			report.Skipped = len(pending) - i
			return report, ctx.Err()
		}

		inv, err := r.syncOne(ctx, q)
		if err != nil {
			report.Failed++
			r.logger.Error(ctx, "failed to sync queued invoice, keeping for next pass",
				"id", q.ID, "local_number", q.LocalNumber, "error", err)
			continue
		}

		if err := r.queue.MarkSynced(ctx, q.ID, inv.InvoiceNumber); err != nil {
			// The server accepted the record but the local ack failed; the
			// record stays pending and will be replayed, which can duplicate
			// it server-side. Loudly log the id so the duplicate is traceable.
			report.Failed++
			r.logger.Error(ctx, "server accepted invoice but local ack failed",
				"id", q.ID, "server_number", inv.InvoiceNumber, "error", err)
			continue
		}

		report.Synced++
		r.logger.Info(ctx, "queued invoice confirmed",
			"id", q.ID, "local_number", q.LocalNumber, "server_number", inv.InvoiceNumber)
	}

	return report, nil
}

// syncOne submits one queued record, retrying briefly on transient network
// failures. Validation and server-side errors are not retried.
func (r *Reconciler) syncOne(ctx context.Context, q *models.QueuedInvoice) (*api.ServerInvoice, error) {
	draft := &models.Draft{
		Customer: q.Customer,
		Date:     q.Date,
		Items:    q.Items,
		Total:    q.Total,
	}

	var inv *api.ServerInvoice

	backoff := retry.WithMaxRetries(itemRetryAttempts-1, retry.NewConstant(itemRetryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		created, err := r.client.CreateInvoice(ctx, draft)
		if err != nil {
			if errors.Is(err, common.ErrServerUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		inv = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}
