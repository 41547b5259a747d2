// Package cli implements the billing client commands: creating invoices
// (online or offline), browsing them, draining the offline queue, and
// exporting printable documents.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/nexsys-labs/billing/internal/client/api"
	"github.com/nexsys-labs/billing/internal/client/client"
	"github.com/nexsys-labs/billing/internal/client/config"
	"github.com/nexsys-labs/billing/internal/client/connectivity"
	"github.com/nexsys-labs/billing/internal/client/services"
	"github.com/nexsys-labs/billing/internal/logging"
)

// App wires the client components for one command invocation.
type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      *client.Repositories
	apiClient  api.Client
	invoices   *services.InvoiceService
	reconciler *services.Reconciler
	monitor    *connectivity.Monitor
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewZerologLogger(
		zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	)

	repos, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(api.ClientConfig{
		BaseURL: cfg.ServerBaseURL,
		Timeout: cfg.NetworkTimeout,
	})

	return &App{
		config:     cfg,
		logger:     logger,
		repos:      repos,
		apiClient:  apiClient,
		invoices:   services.NewInvoiceService(apiClient, repos.DB, logger),
		reconciler: services.NewReconciler(apiClient, repos.Queue, logger),
		monitor:    connectivity.NewMonitor(apiClient, cfg.OnlineCheckInterval, logger),
	}, nil
}

func (a *App) Close() error {
	return a.repos.Close()
}
