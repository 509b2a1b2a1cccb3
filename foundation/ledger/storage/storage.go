// Package storage reads and writes ledger snapshots as files on disk.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opmana/powledger/foundation/ledger"
)

// Save writes the ledger snapshot to the specified file in a human
// readable format, creating the parent directory when needed.
func Save(path string, l *ledger.Ledger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(l.TakeSnapshot(), "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// Load reads a snapshot file and reconstructs the ledger. Unknown or
// mistyped fields fail the decode; the persisted hashes are trusted
// verbatim, so callers loading untrusted files must validate the chain
// themselves. I/O errors propagate untouched.
func Load(path string, ev ledger.EventHandler) (*ledger.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var snapshot ledger.Snapshot
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}

	return ledger.FromSnapshot(snapshot, ev)
}
