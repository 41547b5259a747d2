package invoices

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexsys-labs/billing/internal/common"
	"github.com/nexsys-labs/billing/internal/server/models"
	repo "github.com/nexsys-labs/billing/internal/server/repositories/invoices"
)

func draft(customer string) *models.Invoice {
	return &models.Invoice{
		Customer: customer,
		Date:     "2026-08-28",
		Items:    []models.LineItem{{Name: "Cloth", Qty: 3, Price: 150}},
	}
}

func TestCreate_EmptyStoreAssignsNumberOne(t *testing.T) {
	s := NewService(repo.NewInMemoryRepository())

	got, err := s.Create(context.Background(), draft("Acme"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.InvoiceNumber)
	assert.Equal(t, 450.0, got.Total)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreate_SequentialNumbers(t *testing.T) {
	s := NewService(repo.NewInMemoryRepository())
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := s.Create(ctx, draft("Acme"))
		require.NoError(t, err)
		assert.Equal(t, want, got.InvoiceNumber)
	}
}

func TestCreate_NextNumberIsMaxPlusOne(t *testing.T) {
	r := repo.NewInMemoryRepository()
	ctx := context.Background()

	// pre-seed the store at max=5
	require.NoError(t, r.Insert(ctx, &models.Invoice{InvoiceNumber: 5, Customer: "seed"}))

	got, err := NewService(r).Create(ctx, draft("Acme"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.InvoiceNumber)
}

func TestCreate_TotalNeverTrustedFromCaller(t *testing.T) {
	s := NewService(repo.NewInMemoryRepository())

	d := draft("Acme")
	d.Total = 100000

	got, err := s.Create(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, 450.0, got.Total)
}

// racingRepo makes the first insert attempt collide, simulating a concurrent
// allocation that claimed the same number between GetMax and Insert.
type racingRepo struct {
	*repo.InMemoryRepository
	mu        sync.Mutex
	collision bool
	inner     *repo.InMemoryRepository
}

func newRacingRepo() *racingRepo {
	inner := repo.NewInMemoryRepository()
	return &racingRepo{InMemoryRepository: inner, inner: inner}
}

func (r *racingRepo) Insert(ctx context.Context, inv *models.Invoice) error {
	r.mu.Lock()
	fired := r.collision
	r.collision = true
	r.mu.Unlock()

	if !fired {
		// a rival wins the number the service just computed
		rival := *inv
		rival.Customer = "rival"
		if err := r.inner.Insert(ctx, &rival); err != nil {
			return err
		}
	}
	return r.inner.Insert(ctx, inv)
}

func TestCreate_RetriesPastDuplicateNumber(t *testing.T) {
	r := newRacingRepo()
	s := NewService(r)
	ctx := context.Background()

	got, err := s.Create(ctx, draft("Acme"))
	require.NoError(t, err)

	// rival took 1, retry landed on 2
	assert.Equal(t, int64(2), got.InvoiceNumber)

	rival, err := r.GetByNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "rival", rival.Customer)
}

// alwaysDuplicateRepo rejects every insert, driving the retry loop to
// exhaustion.
type alwaysDuplicateRepo struct {
	*repo.InMemoryRepository
	attempts int
}

func (r *alwaysDuplicateRepo) Insert(ctx context.Context, inv *models.Invoice) error {
	r.attempts++
	return common.ErrDuplicateNumber
}

func TestCreate_AllocationExhaustedAfterBoundedRetries(t *testing.T) {
	r := &alwaysDuplicateRepo{InMemoryRepository: repo.NewInMemoryRepository()}
	s := NewService(r)

	_, err := s.Create(context.Background(), draft("Acme"))
	require.ErrorIs(t, err, common.ErrAllocationExhausted)
	assert.Equal(t, allocationAttempts, r.attempts, "retry loop must be bounded")
}

// failingRepo reports storage unreachable.
type failingRepo struct {
	*repo.InMemoryRepository
}

var errStorageDown = errors.New("storage unreachable")

func (r *failingRepo) GetMax(ctx context.Context) (int64, error) {
	return 0, errStorageDown
}

func TestCreate_PersistenceErrorIsFatalNotRetried(t *testing.T) {
	s := NewService(&failingRepo{repo.NewInMemoryRepository()})

	_, err := s.Create(context.Background(), draft("Acme"))
	require.ErrorIs(t, err, errStorageDown)
}

func TestCreate_ConcurrentCallsNeverDuplicate(t *testing.T) {
	s := NewService(repo.NewInMemoryRepository())
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Create(ctx, draft("Acme"))
			if err == nil {
				numbers <- got.InvoiceNumber
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int64]bool)
	for n := range numbers {
		require.False(t, seen[n], "invoice number %d assigned twice", n)
		seen[n] = true
	}
}

func TestGetAndList(t *testing.T) {
	s := NewService(repo.NewInMemoryRepository())
	ctx := context.Background()

	_, err := s.Create(ctx, draft("Acme"))
	require.NoError(t, err)
	_, err = s.Create(ctx, draft("Globex"))
	require.NoError(t, err)

	got, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Globex", got.Customer)

	_, err = s.Get(ctx, 99)
	require.ErrorIs(t, err, common.ErrorNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(2), all[0].InvoiceNumber, "descending order")
}
