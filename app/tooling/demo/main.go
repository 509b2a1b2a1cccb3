// This program walks the ledger through mining, transactions, tampering
// detection and persistence, printing the state of the chain along the way.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/ledger/storage"
	"github.com/pterm/pterm"
)

func main() {
	if err := run(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run() error {
	pterm.DefaultHeader.WithFullWidth().Println("PROOF OF WORK LEDGER DEMO")

	lgr, err := ledger.New(ledger.Config{Difficulty: 3})
	if err != nil {
		return err
	}

	pterm.Info.Println("Created new ledger with difficulty 3")
	printStatus(lgr)

	// =========================================================================
	// Transactions and mining

	pterm.DefaultSection.Println("Transactions")

	lgr.AddTransaction("Alice", "Bob", 50.0, "Payment for services")
	lgr.AddTransaction("Bob", "Charlie", 25.0, "Split payment")
	lgr.AddTransaction("Charlie", "Alice", 10.0, "Refund")
	pterm.Info.Printfln("Added %d pending transactions", len(lgr.PendingTransactions()))

	spinner, _ := pterm.DefaultSpinner.Start("Mining block with transactions...")
	start := time.Now()
	block := lgr.MinePendingTransactions("miner1")
	spinner.Success(pterm.Sprintf("Mined block #%d in %v: %s", block.Index, time.Since(start).Round(time.Millisecond), block.Hash))

	printStatus(lgr)
	printBalances(lgr, "Alice", "Bob", "Charlie", "miner1")

	// =========================================================================
	// Tampering detection

	pterm.DefaultSection.Println("Tampering detection")

	snapshot := lgr.TakeSnapshot()
	snapshot.Chain[1].Transactions[0].Amount = 999.0
	tampered, err := ledger.FromSnapshot(snapshot, nil)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("Chain valid after tampering with block 1: %v", tampered.IsChainValid())
	if err := tampered.Validate(); err != nil {
		pterm.Warning.Println(err)
	}

	// =========================================================================
	// Persistence

	pterm.DefaultSection.Println("Persistence")

	path := filepath.Join(os.TempDir(), "ledger_demo.json")
	if err := storage.Save(path, lgr); err != nil {
		return err
	}
	pterm.Info.Printfln("Saved ledger to %s", path)

	loaded, err := storage.Load(path, nil)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Loaded chain valid: %v", loaded.IsChainValid())

	// =========================================================================
	// History

	pterm.DefaultSection.Println("Transaction history for Alice")

	rows := pterm.TableData{{"Block", "Sender", "Recipient", "Amount", "Data"}}
	for _, htx := range lgr.History("Alice") {
		rows = append(rows, []string{
			fmt.Sprintf("%d", htx.BlockIndex),
			htx.Sender,
			htx.Recipient,
			fmt.Sprintf("%.2f", htx.Amount),
			htx.Data,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	pterm.Success.Println("ALL DEMOS COMPLETED")
	return nil
}

// printStatus renders the current state of the ledger.
func printStatus(lgr *ledger.Ledger) {
	rows := pterm.TableData{
		{"Total blocks", fmt.Sprintf("%d", len(lgr.Chain()))},
		{"Difficulty", fmt.Sprintf("%d", lgr.Difficulty())},
		{"Pending transactions", fmt.Sprintf("%d", len(lgr.PendingTransactions()))},
		{"Chain valid", fmt.Sprintf("%v", lgr.IsChainValid())},
	}
	pterm.DefaultTable.WithData(rows).Render()
}

// printBalances renders the replayed balance for each address.
func printBalances(lgr *ledger.Ledger, addresses ...string) {
	rows := pterm.TableData{{"Address", "Balance"}}
	for _, address := range addresses {
		rows = append(rows, []string{address, fmt.Sprintf("%.2f", lgr.Balance(address))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
