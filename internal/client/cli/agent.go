package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Watch connectivity and sync the queue automatically",
	Long: `Run in the foreground, probing the server at the configured interval.
Whenever connectivity comes back after an outage, queued invoices are
submitted oldest first and receive their server-assigned numbers. Stop with
Ctrl-C.`,
	RunE: runAgent,
}

func runAgent(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching server connectivity; queued invoices sync automatically.")

	go app.monitor.Run(ctx)
	app.reconciler.Run(ctx, app.monitor.Restored())

	fmt.Println("Shutting down.")
	return nil
}

func init() {
	rootCmd.AddCommand(agentCmd)
}
