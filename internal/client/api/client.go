// Package api is the HTTP client for the billing server.
package api

import (
	"context"

	"github.com/nexsys-labs/billing/internal/client/models"
)

// ServerInvoice is an invoice as confirmed by the server, number included.
type ServerInvoice struct {
	InvoiceNumber int64             `json:"invoiceNumber"`
	Customer      string            `json:"customer"`
	Date          string            `json:"date"`
	Items         []models.LineItem `json:"items"`
	Total         float64           `json:"total"`
	CreatedAt     string            `json:"createdAt"`
}

// Client talks to the authoritative billing server. Implementations must
// classify unreachable-server conditions as common.ErrServerUnavailable so
// callers can fall back to the offline queue.
type Client interface {
	Ping(ctx context.Context) error
	CreateInvoice(ctx context.Context, draft *models.Draft) (*ServerInvoice, error)
	ListInvoices(ctx context.Context) ([]*ServerInvoice, error)
	GetInvoice(ctx context.Context, number int64) (*ServerInvoice, error)
}
