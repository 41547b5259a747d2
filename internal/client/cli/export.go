package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/client/render"
)

var (
	exportOut   string
	exportDraft bool
)

var exportCmd = &cobra.Command{
	Use:   "export NUMBER",
	Short: "Export an invoice as PDF",
	Long: `Render an invoice to PDF using headless Chrome. By default NUMBER is
a server-assigned invoice number. With --draft, NUMBER is the provisional
number of a locally queued record; the document is marked DRAFT because only
server-assigned numbers may appear on an issued invoice.`,
	Example: `  billing export 6 -o invoice-6.pdf
  billing export --draft 2 -o draft.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	number, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice number %q", args[0])
	}

	doc, err := resolveDocument(cmd, number)
	if err != nil {
		return err
	}

	data, err := render.PDF(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("invoice-%s.pdf", args[0])
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d bytes).\n", out, len(data))
	return nil
}

func resolveDocument(cmd *cobra.Command, number int64) (*render.Document, error) {
	if !exportDraft {
		inv, err := app.invoices.Get(cmd.Context(), number)
		if err != nil {
			return nil, err
		}
		return render.DocumentFromServer(inv), nil
	}

	pending, err := app.invoices.Pending(cmd.Context())
	if err != nil {
		return nil, err
	}
	for _, q := range pending {
		if q.LocalNumber == number {
			return render.DocumentFromQueued(q), nil
		}
	}
	return nil, fmt.Errorf("no pending draft with local number %d", number)
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default invoice-NUMBER.pdf)")
	exportCmd.Flags().BoolVar(&exportDraft, "draft", false, "export a pending local draft instead of a server invoice")

	rootCmd.AddCommand(exportCmd)
}
