package root

import "github.com/spf13/cobra"

// RootCmd is the entry point for all itam subcommands.
var RootCmd = &cobra.Command{
	Use:   "itam",
	Short: "IT asset tracking CLI",
	Long:  "Command line interface for the IT asset tracking API: manage assets, check them out and in, and inspect history.",
}

// GetRoot returns the root command.
func GetRoot() *cobra.Command {
	return RootCmd
}
