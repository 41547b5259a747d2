// Package repomanager wires repositories to a concrete storage backend and
// owns connection lifecycle and migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/nexsys-labs/billing/internal/server/repositories/invoices"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Invoices() invoices.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
