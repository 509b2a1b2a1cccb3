package commands

import (
	"fmt"
	"log"
	"sort"

	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/ledger/storage"
	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "balances [address]",
	Short: "Print the balance for one address, or all addresses seen on the chain.",
	Run:   balancesRun,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func balancesRun(cmd *cobra.Command, args []string) {
	lgr, err := storage.Load(snapshotPath, nil)
	if err != nil {
		log.Fatal(err)
	}

	if len(args) > 0 {
		fmt.Printf("%s: %v\n", args[0], lgr.Balance(args[0]))
		return
	}

	for _, address := range chainAddresses(lgr) {
		fmt.Printf("%s: %v\n", address, lgr.Balance(address))
	}
}

// chainAddresses collects every address that appears on the chain as a
// sender or recipient, excluding the reward sender, in sorted order.
func chainAddresses(lgr *ledger.Ledger) []string {
	seen := make(map[string]bool)
	for _, block := range lgr.Chain() {
		for _, tx := range block.Transactions {
			if tx.Sender != ledger.RewardAccount {
				seen[tx.Sender] = true
			}
			seen[tx.Recipient] = true
		}
	}

	addresses := make([]string, 0, len(seen))
	for address := range seen {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	return addresses
}
