package repomanager

import (
	"context"
	"database/sql"

	"github.com/nexsys-labs/billing/internal/server/repositories/invoices"
)

// InMemoryRepositoryManager backs the server with the in-memory store.
// Used in tests and for running the server without Postgres.
type InMemoryRepositoryManager struct {
	invoices invoices.Repository
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) Invoices() invoices.Repository {
	return m.invoices
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{invoices: invoices.NewInMemoryRepository()}
}
