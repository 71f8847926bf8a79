package audit

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trackops/itam/cmd/cli/client"
	"github.com/trackops/itam/cmd/cli/config"
	"github.com/trackops/itam/cmd/cli/output"
	"github.com/trackops/itam/internal/models"
)

// InitAudit registers audit log commands on the root command.
func InitAudit(rootCmd *cobra.Command) {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit log",
	}

	auditCmd.AddCommand(listAuditCmd())
	rootCmd.AddCommand(auditCmd)
}

func listAuditCmd() *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			var entries []models.AuditEntry
			path := "/audit?limit=" + strconv.Itoa(limit)
			if err := client.Do("GET", path, token, nil, &entries); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(entries, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []interface{}{e.ID, e.EntityName, e.Action, e.Changes, e.UserName, e.Timestamp.Format("2006-01-02 15:04")})
			}
			output.RenderTable([]string{"ID", "Entity", "Action", "Changes", "User", "Timestamp"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of entries")
	return cmd
}
