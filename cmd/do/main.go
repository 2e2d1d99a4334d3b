package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/renanvzd/nlw-pocket/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Operational tools for in.orbit",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.SummaryCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
