package commands

import (
	"fmt"
	"log"

	"github.com/opmana/powledger/foundation/ledger/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <address>",
	Short: "Print every transaction involving the address, in chain order.",
	Args:  cobra.ExactArgs(1),
	Run:   historyRun,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func historyRun(cmd *cobra.Command, args []string) {
	lgr, err := storage.Load(snapshotPath, nil)
	if err != nil {
		log.Fatal(err)
	}

	for _, htx := range lgr.History(args[0]) {
		fmt.Printf("blk[%d] %s -> %s: %v %q\n", htx.BlockIndex, htx.Sender, htx.Recipient, htx.Amount, htx.Data)
	}
}
