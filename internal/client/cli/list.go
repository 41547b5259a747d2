package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/common"
)

var listLocal bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Long: `List invoices known to the server. With --local, list the records in
the local store instead: pending drafts with provisional numbers and already
synced invoices with their server-assigned numbers.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	if listLocal {
		return listLocalRecords(cmd)
	}

	invoices, err := app.invoices.List(cmd.Context())
	if err != nil {
		if errors.Is(err, common.ErrServerUnavailable) {
			fmt.Println("Server unreachable. Use --local to browse the local store.")
		}
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tCUSTOMER\tDATE\tTOTAL")
	for _, inv := range invoices {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\n", inv.InvoiceNumber, inv.Customer, inv.Date, inv.Total)
	}
	return w.Flush()
}

func listLocalRecords(cmd *cobra.Command) error {
	records, err := app.invoices.History(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATUS\tCUSTOMER\tDATE\tTOTAL")
	for _, q := range records {
		id := q.Identity()
		if id.Confirmed {
			fmt.Fprintf(w, "%d\tsynced\t%s\t%s\t%.2f\n", id.Number, q.Customer, q.Date, q.Total)
		} else {
			fmt.Fprintf(w, "draft %d\tpending\t%s\t%s\t%.2f\n", id.Number, q.Customer, q.Date, q.Total)
		}
	}
	return w.Flush()
}

func init() {
	listCmd.Flags().BoolVar(&listLocal, "local", false, "list the local store instead of the server")
	rootCmd.AddCommand(listCmd)
}
