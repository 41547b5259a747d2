// Package invoices implements invoice creation with sequential number
// allocation on top of the authoritative store.
package invoices

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/server/models"
	repo "github.com/nexsys-labs/billing/internal/server/repositories/invoices"
)

const (
	// allocationAttempts bounds the read-max/insert retry loop. Two
	// concurrent creations can observe the same max; the storage layer's
	// uniqueness constraint rejects the loser, which re-reads and retries.
	allocationAttempts = 5

	allocationBackoff = 10 * time.Millisecond
)

type Service struct {
	repo repo.Repository
}

func NewService(r repo.Repository) *Service {
	return &Service{repo: r}
}

// Create persists a draft invoice under the next free invoice number.
//
// The caller-supplied total is discarded and recomputed from the (already
// coerced) items. Allocation is max+1 with a bounded retry on duplicate; if
// the loop cannot converge within its budget the operation fails with
// common.ErrAllocationExhausted.
func (s *Service) Create(ctx context.Context, draft *models.Invoice) (*models.Invoice, error) {
	draft.Normalize()

	var stored *models.Invoice

	backoff := retry.WithMaxRetries(allocationAttempts-1, retry.NewConstant(allocationBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		max, err := s.repo.GetMax(ctx)
		if err != nil {
			return err
		}

		inv := *draft
		inv.InvoiceNumber = max + 1

		if err := s.repo.Insert(ctx, &inv); err != nil {
			if errors.Is(err, common.ErrDuplicateNumber) {
				// lost the race, re-read max and try again
				return retry.RetryableError(err)
			}
			return err
		}

		stored = &inv
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateNumber) {
			return nil, common.ErrAllocationExhausted
		}
		return nil, err
	}

	return stored, nil
}

// Get returns one invoice by number, common.ErrorNotFound when missing.
func (s *Service) Get(ctx context.Context, number int64) (*models.Invoice, error) {
	return s.repo.GetByNumber(ctx, number)
}

// List returns all invoices ordered by invoice number descending.
func (s *Service) List(ctx context.Context) ([]*models.Invoice, error) {
	return s.repo.GetAll(ctx)
}
