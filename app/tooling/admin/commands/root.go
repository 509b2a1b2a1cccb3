// Package commands contains the admin tool commands for inspecting a
// saved ledger snapshot.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var snapshotPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "zledger/ledger.json", "Path to the ledger snapshot file.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Inspect a saved ledger snapshot",
}

// Execute runs the admin tool.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
