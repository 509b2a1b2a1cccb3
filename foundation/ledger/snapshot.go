package ledger

import (
	"errors"
	"fmt"
)

// Snapshot is the structured record the whole ledger serializes to and from.
// The layout is the persisted contract: anything reading or writing ledger
// files depends on these field names.
type Snapshot struct {
	Chain               []Block `json:"chain"`
	Difficulty          int     `json:"difficulty"`
	PendingTransactions []Tx    `json:"pending_transactions"`
	MiningReward        float64 `json:"mining_reward"`
}

// TakeSnapshot returns a deep copy of the ledger as a snapshot record.
func (l *Ledger) TakeSnapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	chain := make([]Block, len(l.chain))
	for i, block := range l.chain {
		trans := make([]Tx, len(block.Transactions))
		copy(trans, block.Transactions)
		block.Transactions = trans
		chain[i] = block
	}

	pending := make([]Tx, len(l.pending))
	copy(pending, l.pending)

	return Snapshot{
		Chain:               chain,
		Difficulty:          l.difficulty,
		PendingTransactions: pending,
		MiningReward:        l.miningReward,
	}
}

// FromSnapshot reconstructs a ledger from a snapshot record. The persisted
// hashes are trusted verbatim and no genesis is mined: callers loading
// untrusted data must call Validate or IsChainValid themselves.
func FromSnapshot(s Snapshot, ev EventHandler) (*Ledger, error) {
	if err := s.check(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	l := Ledger{
		chain:        s.Chain,
		pending:      s.PendingTransactions,
		difficulty:   s.Difficulty,
		miningReward: s.MiningReward,
		evHandler:    ev,
	}

	return &l, nil
}

// check rejects records that are structurally unable to represent a ledger.
// It deliberately does not re-validate hashes.
func (s Snapshot) check() error {
	if len(s.Chain) == 0 {
		return errors.New("chain is empty")
	}

	if s.Difficulty < 0 {
		return ErrNegativeDifficulty
	}

	genesis := s.Chain[0]
	if genesis.Index != 0 || genesis.PrevHash != GenesisParentHash {
		return errors.New("first block is not a genesis block")
	}

	for i, block := range s.Chain {
		if block.Index != uint64(i) {
			return fmt.Errorf("block %d carries index %d", i, block.Index)
		}
		if block.Hash == "" {
			return fmt.Errorf("block %d is missing its hash", i)
		}
	}

	return nil
}
