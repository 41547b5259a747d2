package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/client/models"
)

var (
	createCustomer string
	createDate     string
	createItems    []string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice",
	Long: `Create an invoice on the server. If the server is unreachable the
invoice is stored locally as a draft with a provisional number and submitted
automatically by the next sync.

Items are given as NAME:QTY:PRICE. Negative or unparsable quantities and
prices are treated as zero.`,
	Example: `  billing create --customer "Acme Corporation" \
    --item "Cloth:3:150" --item "Thread:10:2.5"`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	if len(createItems) == 0 {
		return fmt.Errorf("at least one --item is required")
	}

	items := make([]models.LineItem, 0, len(createItems))
	for _, raw := range createItems {
		item, err := parseItem(raw)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	draft := &models.Draft{
		Customer: createCustomer,
		Date:     createDate,
		Items:    items,
	}

	res, err := app.invoices.Submit(cmd.Context(), draft)
	if err != nil {
		return err
	}

	if res.Queued {
		fmt.Printf("Server unreachable: invoice saved locally as draft #%d (total %.2f).\n",
			res.Identity.Number, draft.Total)
		fmt.Println("It will be submitted automatically when the server is back; the server assigns the final number.")
		return nil
	}

	fmt.Printf("Invoice #%d created for %s, total %.2f.\n",
		res.Identity.Number, res.Invoice.Customer, res.Invoice.Total)
	return nil
}

// parseItem decodes NAME:QTY:PRICE. The name may itself contain colons; the
// last two segments are always qty and price.
func parseItem(raw string) (models.LineItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return models.LineItem{}, fmt.Errorf("invalid item %q, expected NAME:QTY:PRICE", raw)
	}

	name := strings.Join(parts[:len(parts)-2], ":")
	qty := sanitizeQty(parts[len(parts)-2])
	price := sanitizePrice(parts[len(parts)-1])

	return models.LineItem{Name: name, Qty: qty, Price: price}, nil
}

func sanitizeQty(s string) int64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int64(v)
}

func sanitizePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func init() {
	createCmd.Flags().StringVar(&createCustomer, "customer", "", "customer name")
	createCmd.Flags().StringVar(&createDate, "date", time.Now().Format("2006-01-02"), "invoice date (YYYY-MM-DD)")
	createCmd.Flags().StringArrayVar(&createItems, "item", nil, "line item as NAME:QTY:PRICE (repeatable)")

	rootCmd.AddCommand(createCmd)
}
