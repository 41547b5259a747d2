package invoices

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/server/models"
)

// InMemoryRepository keeps invoices in a map guarded by a mutex. It mirrors
// the Postgres semantics, including the duplicate-number rejection, and is
// used by service/handler tests and the dev-mode server.
type InMemoryRepository struct {
	mu       sync.RWMutex
	invoices map[int64]*models.Invoice
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{invoices: make(map[int64]*models.Invoice)}
}

func (r *InMemoryRepository) Insert(ctx context.Context, inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invoices[inv.InvoiceNumber]; exists {
		return common.ErrDuplicateNumber
	}

	inv.CreatedAt = time.Now().UTC()
	stored := *inv
	r.invoices[inv.InvoiceNumber] = &stored
	return nil
}

func (r *InMemoryRepository) GetMax(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var max int64
	for n := range r.invoices {
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *InMemoryRepository) GetByNumber(ctx context.Context, number int64) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invoices[number]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		cp := *inv
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].InvoiceNumber > result[j].InvoiceNumber
	})
	return result, nil
}
