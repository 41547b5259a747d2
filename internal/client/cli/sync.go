package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/client/repositories/metadata"
)

var syncPurge bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Submit queued invoices to the server now",
	Long: `Drain the offline queue immediately instead of waiting for the
connectivity watcher. Records are submitted oldest first and the server
assigns each one its final invoice number. Records that fail stay queued
for the next attempt.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	pending, err := app.invoices.Pending(cmd.Context())
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to sync.")
		return purgeIfRequested(cmd)
	}

	report, err := app.reconciler.SyncPending(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d invoice(s), %d failed.\n", report.Synced, report.Failed)
	if report.Failed > 0 {
		fmt.Println("Failed records stay queued and will be retried on the next sync.")
	}

	if report.Synced > 0 {
		ts := time.Now().UTC().Format(time.RFC3339)
		if err := app.repos.Metadata.Set(cmd.Context(), metadata.KeyLastSyncAt, ts); err != nil {
			return err
		}
	}

	return purgeIfRequested(cmd)
}

func purgeIfRequested(cmd *cobra.Command) error {
	if !syncPurge {
		return nil
	}
	if err := app.repos.Queue.PurgeSynced(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Purged synced records from the local store.")

	// With the local store empty there are no draft numbers left on screen,
	// so the provisional counter can start over.
	pending, err := app.repos.Queue.CountPending(cmd.Context())
	if err != nil {
		return err
	}
	if pending == 0 {
		if err := app.repos.Metadata.Delete(cmd.Context(), metadata.KeyLastLocalInvoiceNumber); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	syncCmd.Flags().BoolVar(&syncPurge, "purge", false, "delete already-synced records from the local store afterwards")
	rootCmd.AddCommand(syncCmd)
}
