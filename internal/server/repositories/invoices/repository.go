package invoices

import (
	"context"

	"github.com/nexsys-labs/billing/internal/server/models"
)

// Repository is the authoritative invoice store. Records are append-only;
// there is no update or delete.
type Repository interface {
	// Insert persists an invoice under its pre-assigned number and fills in
	// CreatedAt. Returns common.ErrDuplicateNumber when the number is
	// already taken, which the allocator treats as a retry signal.
	Insert(ctx context.Context, inv *models.Invoice) error

	// GetMax returns the highest stored invoice number, 0 when empty.
	GetMax(ctx context.Context) (int64, error)

	// GetByNumber returns one record or common.ErrorNotFound.
	GetByNumber(ctx context.Context, number int64) (*models.Invoice, error)

	// GetAll lists every record ordered by invoice number descending.
	GetAll(ctx context.Context) ([]*models.Invoice, error)
}
