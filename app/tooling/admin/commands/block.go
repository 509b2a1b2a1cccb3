package commands

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/opmana/powledger/foundation/ledger/storage"
	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block <index>",
	Short: "Print the block at the specified chain position.",
	Args:  cobra.ExactArgs(1),
	Run:   blockRun,
}

func init() {
	rootCmd.AddCommand(blockCmd)
}

func blockRun(cmd *cobra.Command, args []string) {
	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		log.Fatal(err)
	}

	lgr, err := storage.Load(snapshotPath, nil)
	if err != nil {
		log.Fatal(err)
	}

	block, found := lgr.BlockByIndex(index)
	if !found {
		fmt.Printf("block %d not found: chain has %d blocks\n", index, len(lgr.Chain()))
		return
	}

	data, err := json.MarshalIndent(block, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}
