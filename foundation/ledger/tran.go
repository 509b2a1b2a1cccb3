package ledger

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// RewardAccount is the reserved sender identifier used on the transaction
// that credits a miner with the mining reward. No user transaction should
// carry this sender, but nothing enforces it. Addresses are opaque strings.
const RewardAccount = "BLOCKCHAIN_REWARD"

// =============================================================================

// Tx is the transactional information between two parties. Once constructed
// a transaction is never mutated.
type Tx struct {
	Sender    string  `json:"sender"`    // Address the value is moving from.
	Recipient string  `json:"recipient"` // Address receiving the benefit of the transaction.
	Amount    float64 `json:"amount"`    // Monetary value moved by this transaction.
	Data      string  `json:"data"`      // Extra data related to the transaction.
	TimeStamp float64 `json:"timestamp"` // Wall clock seconds the transaction was accepted.
}

// NewTx constructs a new transaction with a server assigned timestamp.
func NewTx(sender string, recipient string, amount float64, data string) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Data:      data,
		TimeStamp: nowSeconds(),
	}
}

// newRewardTx constructs the transaction that pays the miner for the
// specified block.
func newRewardTx(minerAddress string, amount float64, blockIndex uint64) Tx {
	return Tx{
		Sender:    RewardAccount,
		Recipient: minerAddress,
		Amount:    amount,
		Data:      fmt.Sprintf("Reward for mining block #%d", blockIndex),
		TimeStamp: nowSeconds(),
	}
}

// encode writes the canonical representation of the transaction into the
// buffer for hashing. Strings are length prefixed so opaque addresses and
// data can never bleed into a neighboring field.
func (tx Tx) encode(buf *bytes.Buffer) {
	encodeString(buf, tx.Sender)
	encodeString(buf, tx.Recipient)
	encodeFloat(buf, tx.Amount)
	encodeString(buf, tx.Data)
	encodeFloat(buf, tx.TimeStamp)
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s -> %s: %v", tx.Sender, tx.Recipient, tx.Amount)
}

// =============================================================================

// HistoryTx is a transaction annotated with the block that holds it, as
// returned by ledger history queries.
type HistoryTx struct {
	Tx
	BlockIndex uint64 `json:"block_index"`
	BlockHash  string `json:"block_hash"`
}

// =============================================================================

// nowSeconds returns the current wall clock time as real valued seconds.
func nowSeconds() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// encodeString writes a length prefixed string into the buffer.
func encodeString(buf *bytes.Buffer, s string) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(s)
	buf.WriteByte('|')
}

// encodeFloat writes the shortest round trip representation of the value
// into the buffer. Two equal float64 values always produce the same bytes.
func encodeFloat(buf *bytes.Buffer, f float64) {
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	buf.WriteByte('|')
}
