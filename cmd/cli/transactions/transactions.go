package transactions

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trackops/itam/cmd/cli/client"
	"github.com/trackops/itam/cmd/cli/config"
	"github.com/trackops/itam/cmd/cli/output"
	"github.com/trackops/itam/internal/models"
)

// InitTransactions registers transaction history commands on the root command.
func InitTransactions(rootCmd *cobra.Command) {
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "Inspect check-out/check-in history",
	}

	transactionsCmd.AddCommand(listTransactionsCmd())
	rootCmd.AddCommand(transactionsCmd)
}

func listTransactionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			var history []models.AssetTransaction
			if err := client.Do("GET", "/transactions", token, nil, &history); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(history, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(history))
			for _, t := range history {
				assetName := "(deleted)"
				if t.Asset != nil {
					assetName = t.Asset.Name
				}
				rows = append(rows, []interface{}{t.ID, t.Type, assetName, t.UserName, t.Date.Format("2006-01-02 15:04")})
			}
			output.RenderTable([]string{"ID", "Type", "Asset", "User", "Date"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
	return cmd
}
