package ledger

import (
	"bytes"
	"crypto/sha256"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// GenesisParentHash is the sentinel parent hash carried by the genesis block.
const GenesisParentHash = "0"

// hashLength is the number of hex characters in a block hash.
const hashLength = 64

// =============================================================================

// Block represents a group of transactions batched together with the
// metadata that chains it to its parent.
type Block struct {
	Index        uint64  `json:"index"`         // Block position in the chain.
	Transactions []Tx    `json:"transactions"`  // Transactions recorded in this block, in submission order.
	TimeStamp    float64 `json:"timestamp"`     // Wall clock seconds the block was created.
	PrevHash     string  `json:"previous_hash"` // Hash of the previous block in the chain.
	Nonce        uint64  `json:"nonce"`         // Value identified to solve the hash solution.
	Hash         string  `json:"hash"`          // Hash of this block's hashed fields.
}

// NewBlock constructs a new block with a zero nonce and its initial hash
// computed. Mine searches for a hash that satisfies a difficulty target.
func NewBlock(index uint64, transactions []Tx, prevHash string) Block {
	b := Block{
		Index:        index,
		Transactions: transactions,
		TimeStamp:    nowSeconds(),
		PrevHash:     prevHash,
	}
	b.Hash = b.CalculateHash()

	return b
}

// CalculateHash returns the unique hash for the block by hashing a canonical
// encoding of the five hashed fields. The encoding is a pure function of the
// field values: fixed field order, length prefixed strings, and shortest
// round trip float formatting. The stored Hash field is not an input.
func (b Block) CalculateHash() string {
	var buf bytes.Buffer

	buf.WriteString(strconv.FormatUint(b.Index, 10))
	buf.WriteByte('|')
	encodeFloat(&buf, b.TimeStamp)
	encodeString(&buf, b.PrevHash)
	buf.WriteString(strconv.FormatUint(b.Nonce, 10))
	buf.WriteByte('|')
	buf.WriteString(strconv.Itoa(len(b.Transactions)))
	buf.WriteByte('|')
	for _, tx := range b.Transactions {
		tx.encode(&buf)
	}

	hash := sha256.Sum256(buf.Bytes())
	return common.Bytes2Hex(hash[:])
}

// Mine does the work of finding a nonce that produces a hash with the
// required number of leading zeros. The search starts from the current
// nonce and only mutates the nonce and hash fields. This is a blocking,
// CPU bound loop with no cancellation; it returns only on success. A
// difficulty of zero succeeds immediately without touching the nonce.
func (b *Block) Mine(difficulty int, ev EventHandler) {
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	ev("ledger: mine: POW: started: blk[%d]", b.Index)
	defer ev("ledger: mine: POW: completed: blk[%d]", b.Index)

	var attempts uint64
	for !isHashSolved(difficulty, b.Hash) {
		attempts++
		if attempts%100_000 == 0 {
			ev("ledger: mine: POW: attempts[%d]", attempts)
		}

		b.Nonce++
		b.Hash = b.CalculateHash()
	}

	ev("ledger: mine: POW: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevHash, b.Hash)
}

// =============================================================================

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty int, hash string) bool {
	const match = "00000000000000000"

	if difficulty <= 0 {
		return true
	}

	if len(hash) != hashLength || difficulty > len(match) {
		return false
	}

	return hash[:difficulty] == match[:difficulty]
}
