package commands

import (
	"fmt"
	"log"

	"github.com/opmana/powledger/foundation/ledger/storage"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the chain integrity checks against the snapshot.",
	Run:   validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) {
	lgr, err := storage.Load(snapshotPath, nil)
	if err != nil {
		log.Fatal(err)
	}

	if err := lgr.Validate(); err != nil {
		fmt.Println("chain INVALID:", err)
		return
	}

	fmt.Printf("chain valid: %d blocks at difficulty %d\n", len(lgr.Chain()), lgr.Difficulty())
}
