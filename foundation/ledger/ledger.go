// Package ledger implements a single process, append only ledger secured by
// a proof of work puzzle. One mutex serializes chain growth against pending
// pool mutation so a mining call always drains the pool atomically and
// exactly once per mined block.
package ledger

import (
	"errors"
	"fmt"
	"sync"
)

// defaultMiningReward is the fixed amount credited to a miner per block.
const defaultMiningReward = 10

// ErrNegativeDifficulty is returned when constructing a ledger with a
// difficulty below zero.
var ErrNegativeDifficulty = errors.New("difficulty must not be negative")

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Difficulty   int
	MiningReward float64
	EvHandler    EventHandler
}

// Ledger manages the chain of blocks and the pool of transactions waiting
// to be mined into the next block.
type Ledger struct {
	mu sync.Mutex

	chain        []Block
	pending      []Tx
	difficulty   int
	miningReward float64
	evHandler    EventHandler
}

// New constructs a ledger and synchronously mines the genesis block at the
// configured difficulty before returning.
func New(cfg Config) (*Ledger, error) {
	if cfg.Difficulty < 0 {
		return nil, ErrNegativeDifficulty
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	reward := cfg.MiningReward
	if reward == 0 {
		reward = defaultMiningReward
	}

	l := Ledger{
		difficulty:   cfg.Difficulty,
		miningReward: reward,
		evHandler:    ev,
	}

	// The chain starts with a mined genesis block holding no transactions.
	genesis := NewBlock(0, []Tx{}, GenesisParentHash)
	genesis.Mine(l.difficulty, ev)
	l.chain = append(l.chain, genesis)

	return &l, nil
}

// =============================================================================

// AddTransaction appends a transaction to the pending pool with a server
// assigned timestamp. The returned index is a forecast of the block that
// will contain it: more transactions may arrive before the next mining call.
func (l *Ledger) AddTransaction(sender string, recipient string, amount float64, data string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, NewTx(sender, recipient, amount, data))

	return len(l.chain)
}

// MinePendingTransactions drains the entire pending pool into a new block,
// mines it at the configured difficulty, appends it to the chain and reseeds
// the pool with a single reward transaction for the miner. The ledger mutex
// is held for the full mining run, so a transaction submitted while mining
// is in progress waits and lands in the pool for the next block.
func (l *Ledger) MinePendingTransactions(minerAddress string) Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evHandler("ledger: mine: MINING: txs[%d]", len(l.pending))

	trans := l.pending
	if trans == nil {
		trans = []Tx{}
	}
	l.pending = nil

	block := NewBlock(uint64(len(l.chain)), trans, l.chain[len(l.chain)-1].Hash)
	block.Mine(l.difficulty, l.evHandler)

	l.chain = append(l.chain, block)
	l.pending = []Tx{newRewardTx(minerAddress, l.miningReward, block.Index)}

	return block
}

// =============================================================================

// Validate scans the chain and returns an error naming the first block that
// fails an integrity check. The genesis block is trusted as constructed.
func (l *Ledger) Validate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := 1; i < len(l.chain); i++ {
		block := l.chain[i]

		// A field tampered without recomputing the hash.
		if block.Hash != block.CalculateHash() {
			return fmt.Errorf("block %d: stored hash does not match block contents", i)
		}

		// A block removed, reordered or substituted.
		if block.PrevHash != l.chain[i-1].Hash {
			return fmt.Errorf("block %d: parent hash does not match previous block", i)
		}

		// A forged hash that still looks linked.
		if !isHashSolved(l.difficulty, block.Hash) {
			return fmt.Errorf("block %d: hash does not meet difficulty %d", i, l.difficulty)
		}
	}

	return nil
}

// IsChainValid reports whether every block in the chain passes the
// integrity checks. Callers needing the offending block use Validate.
func (l *Ledger) IsChainValid() bool {
	return l.Validate() == nil
}

// =============================================================================

// Balance replays every transaction in every block in chain order and
// returns the net amount for the address. No sufficiency or authenticity
// checks are applied anywhere, so negative balances are possible.
func (l *Ledger) Balance(address string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var balance float64
	for _, block := range l.chain {
		for _, tx := range block.Transactions {
			if tx.Sender == address {
				balance -= tx.Amount
			}
			if tx.Recipient == address {
				balance += tx.Amount
			}
		}
	}

	return balance
}

// History replays the chain and returns every transaction the address sent
// or received, in chain order then within block order, annotated with the
// owning block's index and hash.
func (l *Ledger) History(address string) []HistoryTx {
	l.mu.Lock()
	defer l.mu.Unlock()

	var history []HistoryTx
	for _, block := range l.chain {
		for _, tx := range block.Transactions {
			if tx.Sender != address && tx.Recipient != address {
				continue
			}

			history = append(history, HistoryTx{
				Tx:         tx,
				BlockIndex: block.Index,
				BlockHash:  block.Hash,
			})
		}
	}

	return history
}

// =============================================================================

// BlockByIndex returns the block at the specified position and false when
// the index is beyond the end of the chain.
func (l *Ledger) BlockByIndex(index uint64) (Block, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if index >= uint64(len(l.chain)) {
		return Block{}, false
	}

	return l.chain[index], true
}

// LatestBlock returns the most recent block in the chain.
func (l *Ledger) LatestBlock() Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.chain[len(l.chain)-1]
}

// Chain returns a copy of the current chain of blocks.
func (l *Ledger) Chain() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)

	return chain
}

// PendingTransactions returns a copy of the pool of transactions waiting
// for the next mining call.
func (l *Ledger) PendingTransactions() []Tx {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make([]Tx, len(l.pending))
	copy(pending, l.pending)

	return pending
}

// Difficulty returns the number of leading zero hex characters a mined
// block hash must carry.
func (l *Ledger) Difficulty() int {
	return l.difficulty
}

// MiningReward returns the fixed amount credited per mined block.
func (l *Ledger) MiningReward() float64 {
	return l.miningReward
}
