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

package pruner

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/storage"
)

func newTestDb(t *testing.T) storage.Db {
	dir, err := os.MkdirTemp("", "realtps-test-prune")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	db, err := storage.NewFileDb(dir)
	require.NoError(t, err)
	return db
}

func ptr(n uint64) *uint64 { return &n }

// TestPrune_RetainsBoundaryBlock builds a five-block chain where the
// three oldest blocks fall before the window edge, and checks that the
// boundary block (the newest of them, the first one below the edge)
// survives while the two behind it are removed.
func TestPrune_RetainsBoundaryBlock(t *testing.T) {
	db := newTestDb(t)

	latestTs := uint64(windowSeconds + 1000)
	blocks := []chain.Block{
		{Chain: chain.Ethereum, BlockNumber: 1, Timestamp: 0},
		{Chain: chain.Ethereum, BlockNumber: 2, Timestamp: 100, PrevBlockNumber: ptr(1)},
		{Chain: chain.Ethereum, BlockNumber: 3, Timestamp: 500, PrevBlockNumber: ptr(2)},
		{Chain: chain.Ethereum, BlockNumber: 4, Timestamp: latestTs - 1, PrevBlockNumber: ptr(3)},
		{Chain: chain.Ethereum, BlockNumber: 5, Timestamp: latestTs, PrevBlockNumber: ptr(4)},
	}
	for _, b := range blocks {
		require.NoError(t, db.StoreBlock(b))
	}
	require.NoError(t, db.StoreHighestBlockNumber(chain.Ethereum, 5))

	p := New(db)
	require.NoError(t, p.Prune(chain.Ethereum))

	// Block 3 (ts=500) is the first predecessor below tMin=1000; it is
	// the retained boundary. Blocks 1 and 2, reached only after the
	// edge flag flips, are removed.
	got, err := db.LoadBlock(chain.Ethereum, 3)
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = db.LoadBlock(chain.Ethereum, 2)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = db.LoadBlock(chain.Ethereum, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = db.LoadBlock(chain.Ethereum, 4)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestPrune_NothingBeyondWindowIsANoop(t *testing.T) {
	db := newTestDb(t)

	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 1, Timestamp: 100}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 2, Timestamp: 200, PrevBlockNumber: ptr(1)}))
	require.NoError(t, db.StoreHighestBlockNumber(chain.Ethereum, 2))

	p := New(db)
	require.NoError(t, p.Prune(chain.Ethereum))

	got, err := db.LoadBlock(chain.Ethereum, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestPrune_NoDataIsANoop(t *testing.T) {
	db := newTestDb(t)
	p := New(db)
	assert.NoError(t, p.Prune(chain.Ethereum))
}
