package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/client/repositories/metadata"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and offline queue state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := app.apiClient.Ping(ctx); err != nil {
		fmt.Printf("Server:        unreachable (%s)\n", app.config.ServerBaseURL)
	} else {
		fmt.Printf("Server:        online (%s)\n", app.config.ServerBaseURL)
	}

	pending, err := app.repos.Queue.CountPending(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Pending queue: %d invoice(s)\n", pending)

	last, err := app.repos.Metadata.Get(ctx, metadata.KeyLastLocalInvoiceNumber)
	if err != nil {
		return err
	}
	if last == "" {
		last = "none"
	}
	fmt.Printf("Local counter: %s\n", last)

	syncedAt, err := app.repos.Metadata.Get(ctx, metadata.KeyLastSyncAt)
	if err != nil {
		return err
	}
	if syncedAt == "" {
		syncedAt = "never"
	}
	fmt.Printf("Last sync:     %s\n", syncedAt)

	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
