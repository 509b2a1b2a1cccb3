package storage_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/opmana/powledger/foundation/ledger"
	"github.com/opmana/powledger/foundation/ledger/storage"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_RoundTrip(t *testing.T) {
	t.Log("Given the need to persist and reload a mined ledger.")
	{
		t.Logf("\tTest 0:\tWhen saving and loading a two block chain.")
		{
			lgr, err := ledger.New(ledger.Config{Difficulty: 2})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a ledger: %v", failed, err)
			}

			lgr.AddTransaction("Alice", "Bob", 50.0, "rent")
			lgr.MinePendingTransactions("miner1")

			path := filepath.Join(t.TempDir(), "ledger.json")
			if err := storage.Save(path, lgr); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to save the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to save the snapshot.", success)

			loaded, err := storage.Load(path, nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the snapshot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the snapshot.", success)

			chain, loadedChain := lgr.Chain(), loaded.Chain()
			if len(chain) != len(loadedChain) {
				t.Fatalf("\t%s\tTest 0:\tShould reload the same number of blocks: exp %d, got %d.", failed, len(chain), len(loadedChain))
			}
			t.Logf("\t%s\tTest 0:\tShould reload the same number of blocks.", success)

			for i := range chain {
				if chain[i].Hash != loadedChain[i].Hash {
					t.Errorf("\t%s\tTest 0:\tShould reload an identical hash for block %d.", failed, i)
					continue
				}
				if loadedChain[i].Hash != loadedChain[i].CalculateHash() {
					t.Errorf("\t%s\tTest 0:\tShould recompute to an identical hash for block %d.", failed, i)
					continue
				}
				t.Logf("\t%s\tTest 0:\tShould reload an identical hash for block %d.", success, i)
			}

			if !loaded.IsChainValid() {
				t.Fatalf("\t%s\tTest 0:\tShould reload a valid chain: %v.", failed, loaded.Validate())
			}
			t.Logf("\t%s\tTest 0:\tShould reload a valid chain.", success)

			if loaded.Difficulty() != lgr.Difficulty() || loaded.MiningReward() != lgr.MiningReward() {
				t.Fatalf("\t%s\tTest 0:\tShould reload the difficulty and mining reward.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reload the difficulty and mining reward.", success)

			pending := loaded.PendingTransactions()
			if len(pending) != 1 || pending[0].Sender != ledger.RewardAccount {
				t.Fatalf("\t%s\tTest 0:\tShould reload the pending reward transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reload the pending reward transaction.", success)
		}
	}
}

func Test_LoadFailures(t *testing.T) {
	t.Log("Given the need to reject files that do not hold a ledger snapshot.")
	{
		t.Logf("\tTest 0:\tWhen the file does not exist.")
		{
			if _, err := storage.Load(filepath.Join(t.TempDir(), "missing.json"), nil); !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("\t%s\tTest 0:\tShould surface the underlying I/O error: got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould surface the underlying I/O error.", success)
		}

		t.Logf("\tTest 1:\tWhen the record carries an unknown field.")
		{
			path := filepath.Join(t.TempDir(), "ledger.json")
			doc := `{"chain":[],"difficulty":2,"pending_transactions":[],"mining_reward":10,"extra":true}`
			if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write the file: %v", failed, err)
			}

			if _, err := storage.Load(path, nil); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the unknown field.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the unknown field.", success)
		}

		t.Logf("\tTest 2:\tWhen a field carries the wrong type.")
		{
			path := filepath.Join(t.TempDir(), "ledger.json")
			doc := `{"chain":[],"difficulty":"two","pending_transactions":[],"mining_reward":10}`
			if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to write the file: %v", failed, err)
			}

			if _, err := storage.Load(path, nil); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject the mistyped field.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject the mistyped field.", success)
		}

		t.Logf("\tTest 3:\tWhen the record holds an empty chain.")
		{
			path := filepath.Join(t.TempDir(), "ledger.json")
			doc := `{"chain":[],"difficulty":2,"pending_transactions":[],"mining_reward":10}`
			if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to write the file: %v", failed, err)
			}

			if _, err := storage.Load(path, nil); err == nil {
				t.Fatalf("\t%s\tTest 3:\tShould reject a chain without a genesis block.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould reject a chain without a genesis block.", success)
		}
	}
}
