package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nexsys-labs/billing/internal/common"
)

var getCmd = &cobra.Command{
	Use:   "get NUMBER",
	Short: "Fetch one invoice from the server by its number",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	number, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice number %q", args[0])
	}

	inv, err := app.invoices.Get(cmd.Context(), number)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("invoice %d not found", number)
		}
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(inv)
}

func init() {
	rootCmd.AddCommand(getCmd)
}
