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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtps/realtps/chain"
)

func newTestDb(t *testing.T) *FileDb {
	dir, err := os.MkdirTemp("", "realtps-test-db")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := NewFileDb(dir)
	require.NoError(t, err)
	return db
}

func TestFileDb_BlockRoundTrip(t *testing.T) {
	db := newTestDb(t)

	got, err := db.LoadBlock(chain.Ethereum, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := chain.Block{
		Chain:       chain.Ethereum,
		BlockNumber: 1,
		Timestamp:   1000,
		NumTxs:      5,
		Hash:        "0xabc",
		ParentHash:  "0xdef",
	}
	require.NoError(t, db.StoreBlock(want))

	got, err = db.LoadBlock(chain.Ethereum, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestFileDb_HighestBlockNumber(t *testing.T) {
	db := newTestDb(t)

	got, err := db.LoadHighestBlockNumber(chain.Ethereum)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, db.StoreHighestBlockNumber(chain.Ethereum, 42))

	got, err = db.LoadHighestBlockNumber(chain.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(42), *got)
}

func TestFileDb_RemoveBlocks(t *testing.T) {
	db := newTestDb(t)

	for n := uint64(1); n <= 3; n++ {
		require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: n}))
	}

	require.NoError(t, db.RemoveBlocks(chain.Ethereum, []uint64{1, 2, 99}))

	got, err := db.LoadBlock(chain.Ethereum, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = db.LoadBlock(chain.Ethereum, 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestFileDb_TpsAndCalculationLog(t *testing.T) {
	db := newTestDb(t)

	tps, err := db.LoadTps(chain.Ethereum)
	require.NoError(t, err)
	assert.Nil(t, tps)

	require.NoError(t, db.StoreTps(chain.Ethereum, 12.5))
	tps, err = db.LoadTps(chain.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, tps)
	assert.InDelta(t, 12.5, *tps, 0.0001)

	log := chain.CalculationLog{CalculatingStart: 1, CalculatingEnd: 2, NewestBlockTimestamp: 3, OldestBlockTimestamp: 4}
	require.NoError(t, db.StoreCalculationLog(chain.Ethereum, log))

	got, err := db.LoadCalculationLog(chain.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, log, *got)
}

func TestFileDb_IsolatedPerChain(t *testing.T) {
	db := newTestDb(t)

	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 1, NumTxs: 1}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Polygon, BlockNumber: 1, NumTxs: 2}))

	eth, err := db.LoadBlock(chain.Ethereum, 1)
	require.NoError(t, err)
	poly, err := db.LoadBlock(chain.Polygon, 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), eth.NumTxs)
	assert.Equal(t, uint64(2), poly.NumTxs)
}
