package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/client/config"

	_ "modernc.org/sqlite"
)

var (
	cfgFile     string
	serverURL   string
	dbPath      string
	timeoutSec  int
	intervalSec int

	app *App
)

var rootCmd = &cobra.Command{
	Use:   "billing",
	Short: "Billing client - create and manage invoices, online or offline",
	Long: `The billing client talks to the billing server to create sequentially
numbered invoices. When the server is unreachable, invoices are stored in a
local queue with provisional draft numbers and are replayed automatically
once connectivity returns; the server assigns the final numbers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Flags beat both defaults and the JSON file.
		if cmd.Flags().Changed("server") {
			cfg.ServerBaseURL = serverURL
		}
		if cmd.Flags().Changed("db") {
			cfg.DatabasePath = dbPath
		}
		if cmd.Flags().Changed("timeout") {
			cfg.NetworkTimeout = time.Duration(timeoutSec) * time.Second
		}
		if cmd.Flags().Changed("interval") {
			cfg.OnlineCheckInterval = time.Duration(intervalSec) * time.Second
		}

		app, err = NewApp(cmd.Context(), cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app == nil {
			return nil
		}
		return app.Close()
	},
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to JSON config file")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "a", "http://localhost:5001", "base URL of the billing server")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "billing.db", "path to the local queue database")
	rootCmd.PersistentFlags().IntVarP(&timeoutSec, "timeout", "t", 10, "network timeout in seconds")
	rootCmd.PersistentFlags().IntVarP(&intervalSec, "interval", "i", 3, "online check interval in seconds")
}
