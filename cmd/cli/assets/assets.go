package assets

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

// InitAssets registers asset commands on the root command.
func InitAssets(rootCmd *cobra.Command) {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage assets",
	}

	assetsCmd.AddCommand(
		listAssetsCmd(),
		getAssetCmd(),
		createAssetCmd(),
		updateAssetCmd(),
		deleteAssetCmd(),
		checkOutCmd(),
		checkInCmd(),
	)

	rootCmd.AddCommand(assetsCmd)
}

func listAssetsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			var assets []models.Asset
			if err := client.Do("GET", "/assets", token, nil, &assets); err != nil {
				return err
			}

			if asJSON {
				b, _ := json.MarshalIndent(assets, "", "  ")
				fmt.Println(string(b))
				return nil
			}

			rows := make([][]interface{}, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []interface{}{a.ID, a.Name, a.SerialNumber, a.Status, a.CreatedAt.Format("2006-01-02 15:04")})
			}
			output.RenderTable([]string{"ID", "Name", "Serial Number", "Status", "Created"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
	return cmd
}

func getAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			var asset models.Asset
			if err := client.Do("GET", "/assets/"+args[0], token, nil, &asset); err != nil {
				return err
			}
			b, _ := json.MarshalIndent(asset, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}
}

func createAssetCmd() *cobra.Command {
	var name string
	var serialNumber string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			payload := map[string]string{
				"name":          name,
				"serial_number": serialNumber,
			}

			var asset models.Asset
			if err := client.Do("POST", "/assets", token, payload, &asset); err != nil {
				return err
			}
			b, _ := json.MarshalIndent(asset, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&serialNumber, "serial-number", "", "asset serial number")
	return cmd
}

func updateAssetCmd() *cobra.Command {
	var name string
	var serialNumber string
	var status string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update asset (full replacement of name, serial number, status)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			payload := map[string]string{
				"name":          name,
				"serial_number": serialNumber,
				"status":        status,
			}

			if err := client.Do("PUT", "/assets/"+args[0], token, payload, nil); err != nil {
				return err
			}
			fmt.Println("Asset updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "asset name")
	cmd.Flags().StringVar(&serialNumber, "serial-number", "", "asset serial number")
	cmd.Flags().StringVar(&status, "status", "", "asset status (InStock, InUse, Retired)")
	return cmd
}

func deleteAssetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete asset (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			if err := client.Do("DELETE", "/assets/"+args[0], token, nil, nil); err != nil {
				return err
			}
			fmt.Println("Asset deleted")
			return nil
		},
	}
}

func checkOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-out [id]",
		Short: "Check out an in-stock asset",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRun("/transactions/check-out"),
	}
}

func checkInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-in [id]",
		Short: "Check in an asset you have checked out",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRun("/transactions/check-in"),
	}
}

func transitionRun(path string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		token, err := config.ReadToken()
		if err != nil {
			return fmt.Errorf("please login first")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid asset id %q", args[0])
		}

		var record models.AssetTransaction
		if err := client.Do("POST", path, token, map[string]int{"asset_id": id}, &record); err != nil {
			return err
		}
		b, _ := json.MarshalIndent(record, "", "  ")
		fmt.Println(string(b))
		return nil
	}
}
