package queue

import (
	"context"

	"github.com/nexsys-labs/billing/internal/client/models"
)

// Repository is the durable offline queue. It is a log with per-record
// acknowledgment: records are enqueued while the server is unreachable,
// listed FIFO for reconciliation, and marked synced individually once the
// server confirms them. A crash between server ack and local bookkeeping
// can therefore never lose a record, and an acked record is never replayed.
type Repository interface {
	Enqueue(ctx context.Context, inv *models.QueuedInvoice) error
	ListPending(ctx context.Context) ([]*models.QueuedInvoice, error)
	MarkSynced(ctx context.Context, id string, serverNumber int64) error
	ListAll(ctx context.Context) ([]*models.QueuedInvoice, error)
	CountPending(ctx context.Context) (int, error)
	PurgeSynced(ctx context.Context) error
}
