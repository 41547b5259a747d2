package metadata

import "context"

// KeyLastLocalInvoiceNumber is the metadata key holding the client's local
// allocation counter. It is monotonic and independent of the server's
// sequence.
const KeyLastLocalInvoiceNumber = "lastInvoiceNumber"

// KeyLastSyncAt records when the offline queue last drained successfully,
// as an RFC 3339 timestamp.
const KeyLastSyncAt = "lastSyncAt"

// Repository is a small durable key/value store for client-side state.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error

	// IncrementCounter atomically bumps the integer value under key and
	// returns the new value, treating a missing key as 0.
	IncrementCounter(ctx context.Context, key string) (int64, error)
}
