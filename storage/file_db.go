// Copyright 2026 The realtps Authors
// This file is part of the realtps library.
//
// The realtps library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The realtps library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the realtps library. If not, see <http://www.gnu.org/licenses/>.

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-uuid"
	"github.com/realtps/realtps/internal/errs"
	"github.com/realtps/realtps/internal/rlog"
	"github.com/realtps/realtps/chain"
)

var logger = rlog.New("storage")

const (
	blocksDir               = "blocks"
	metaDir                 = "meta"
	highestBlockNumberEntry = "highest_block_number"
	tpsEntry                = "tps"
	calculationLogEntry     = "calculation_log"
)

// FileDb persists (chain, kind, id) keyed records as JSON files under a
// root directory, one file per key:
//
//	<root>/<chain>/blocks/<block_number>
//	<root>/<chain>/meta/highest_block_number
//	<root>/<chain>/meta/tps
//	<root>/<chain>/meta/calculation_log
//
// Writes go to a sibling file with a random suffix, then rename over the
// target; a reader either sees the whole old file or the whole new one,
// never a partial write. Nothing outside this package depends on the
// JSON encoding.
type FileDb struct {
	root string
}

// NewFileDb opens (creating if absent) a file-backed Db rooted at root.
func NewFileDb(root string) (*FileDb, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.Storage(err)
	}
	return &FileDb{root: root}, nil
}

func (db *FileDb) blockPath(c chain.ID, n uint64) string {
	return filepath.Join(db.root, string(c), blocksDir, fmt.Sprintf("%d", n))
}

func (db *FileDb) metaPath(c chain.ID, entry string) string {
	return filepath.Join(db.root, string(c), metaDir, entry)
}

func (db *FileDb) StoreBlock(b chain.Block) error {
	return writeJSON(db.blockPath(b.Chain, b.BlockNumber), b)
}

func (db *FileDb) LoadBlock(c chain.ID, n uint64) (*chain.Block, error) {
	var b chain.Block
	ok, err := readJSON(db.blockPath(c, n), &b)
	if err != nil || !ok {
		return nil, err
	}
	return &b, nil
}

func (db *FileDb) StoreHighestBlockNumber(c chain.ID, n uint64) error {
	return writeJSON(db.metaPath(c, highestBlockNumberEntry), n)
}

func (db *FileDb) LoadHighestBlockNumber(c chain.ID) (*uint64, error) {
	var n uint64
	ok, err := readJSON(db.metaPath(c, highestBlockNumberEntry), &n)
	if err != nil || !ok {
		return nil, err
	}
	return &n, nil
}

func (db *FileDb) StoreTps(c chain.ID, tps float64) error {
	return writeJSON(db.metaPath(c, tpsEntry), tps)
}

func (db *FileDb) LoadTps(c chain.ID) (*float64, error) {
	var tps float64
	ok, err := readJSON(db.metaPath(c, tpsEntry), &tps)
	if err != nil || !ok {
		return nil, err
	}
	return &tps, nil
}

func (db *FileDb) StoreCalculationLog(c chain.ID, log chain.CalculationLog) error {
	return writeJSON(db.metaPath(c, calculationLogEntry), log)
}

func (db *FileDb) LoadCalculationLog(c chain.ID) (*chain.CalculationLog, error) {
	var l chain.CalculationLog
	ok, err := readJSON(db.metaPath(c, calculationLogEntry), &l)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

// RemoveBlocks deletes the given block numbers for c. A missing file is
// not an error: the pruner and a concurrent prune pass may race on the
// same key.
func (db *FileDb) RemoveBlocks(c chain.ID, ns []uint64) error {
	for _, n := range ns {
		if err := os.Remove(db.blockPath(c, n)); err != nil && !os.IsNotExist(err) {
			return errs.Storage(err)
		}
	}
	return nil
}

// writeJSON serializes data to a temp file beside path and renames it
// into place. If serialization fails the temp file is removed and the
// error surfaced; once rename succeeds the write is durable.
func writeJSON(path string, data interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Storage(err)
	}

	suffix, err := uuid.GenerateUUID()
	if err != nil {
		return errs.Storage(err)
	}
	tmpPath := fmt.Sprintf("%s.%s.tmp", path, suffix)

	f, err := os.Create(tmpPath)
	if err != nil {
		return errs.Storage(err)
	}

	enc := json.NewEncoder(f)
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errs.Storage(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errs.Storage(err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errs.Storage(err)
	}
	return nil
}

// readJSON reports (false, nil) on a missing file, matching the Db
// contract that absence is not an error.
func readJSON(path string, out interface{}) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Storage(err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		logger.Error("corrupt record", "path", path, "err", err)
		return false, errs.Storage(err)
	}
	return true, nil
}
