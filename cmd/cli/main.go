package main

import (
	"fmt"
	"os"

	"github.com/trackops/itam/cmd/cli/assets"
	"github.com/trackops/itam/cmd/cli/audit"
	"github.com/trackops/itam/cmd/cli/auth"
	"github.com/trackops/itam/cmd/cli/root"
	"github.com/trackops/itam/cmd/cli/transactions"
)

func main() {
	rootCmd := root.GetRoot()

	auth.InitAuth(rootCmd)
	assets.InitAssets(rootCmd)
	transactions.InitTransactions(rootCmd)
	audit.InitAudit(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
