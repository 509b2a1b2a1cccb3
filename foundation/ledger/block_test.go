package ledger_test

import (
	"strings"
	"testing"

	"github.com/opmana/powledger/foundation/ledger"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_HashDeterminism(t *testing.T) {
	t.Log("Given the need to validate block hashing is a pure function of field values.")
	{
		t.Logf("\tTest 0:\tWhen hashing two blocks built from the same values.")
		{
			trans := []ledger.Tx{
				{Sender: "Alice", Recipient: "Bob", Amount: 50, Data: "rent", TimeStamp: 1700000000.25},
			}

			b1 := ledger.Block{
				Index:        1,
				Transactions: trans,
				TimeStamp:    1700000100.5,
				PrevHash:     "aa11",
				Nonce:        42,
			}

			// Same field values assembled on a separate value, in a
			// different order, must hash identically.
			var b2 ledger.Block
			b2.Nonce = 42
			b2.PrevHash = "aa11"
			b2.TimeStamp = 1700000100.5
			b2.Transactions = []ledger.Tx{trans[0]}
			b2.Index = 1

			if b1.CalculateHash() != b2.CalculateHash() {
				t.Fatalf("\t%s\tTest 0:\tShould produce identical hashes for identical field values.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould produce identical hashes for identical field values.", success)

			if len(b1.CalculateHash()) != 64 {
				t.Fatalf("\t%s\tTest 0:\tShould produce a 64 hex character digest: got %d.", failed, len(b1.CalculateHash()))
			}
			t.Logf("\t%s\tTest 0:\tShould produce a 64 hex character digest.", success)

			if b1.CalculateHash() != strings.ToLower(b1.CalculateHash()) {
				t.Fatalf("\t%s\tTest 0:\tShould produce lowercase hex.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould produce lowercase hex.", success)
		}

		t.Logf("\tTest 1:\tWhen changing any single hashed field.")
		{
			base := ledger.NewBlock(1, []ledger.Tx{ledger.NewTx("Alice", "Bob", 50, "")}, "aa11")

			mutations := map[string]ledger.Block{}

			b := base
			b.Index = 2
			mutations["index"] = b

			b = base
			b.Nonce = 1
			mutations["nonce"] = b

			b = base
			b.PrevHash = "bb22"
			mutations["previous hash"] = b

			b = base
			b.TimeStamp = base.TimeStamp + 1
			mutations["timestamp"] = b

			b = base
			b.Transactions = []ledger.Tx{ledger.NewTx("Alice", "Bob", 51, "")}
			mutations["transactions"] = b

			for field, mutated := range mutations {
				if mutated.CalculateHash() == base.CalculateHash() {
					t.Errorf("\t%s\tTest 1:\tShould change the hash when the %s changes.", failed, field)
				} else {
					t.Logf("\t%s\tTest 1:\tShould change the hash when the %s changes.", success, field)
				}
			}
		}
	}
}

func Test_Mining(t *testing.T) {
	t.Log("Given the need to validate the proof of work search.")
	{
		t.Logf("\tTest 0:\tWhen mining at difficulty 0.")
		{
			b := ledger.NewBlock(1, nil, "aa11")
			initialHash := b.Hash

			b.Mine(0, nil)

			if b.Nonce != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the nonce untouched: got %d.", failed, b.Nonce)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the nonce untouched.", success)

			if b.Hash != initialHash {
				t.Fatalf("\t%s\tTest 0:\tShould leave the hash untouched.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the hash untouched.", success)
		}

		t.Logf("\tTest 1:\tWhen mining at difficulty 2.")
		{
			b := ledger.NewBlock(1, []ledger.Tx{ledger.NewTx("Alice", "Bob", 50, "")}, "aa11")

			b.Mine(2, nil)

			if !strings.HasPrefix(b.Hash, "00") {
				t.Fatalf("\t%s\tTest 1:\tShould produce a hash starting with 00: got %s.", failed, b.Hash)
			}
			t.Logf("\t%s\tTest 1:\tShould produce a hash starting with 00.", success)

			if b.Hash != b.CalculateHash() {
				t.Fatalf("\t%s\tTest 1:\tShould store a hash matching the block contents.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould store a hash matching the block contents.", success)
		}
	}
}
