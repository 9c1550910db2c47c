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

package calculator

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/storage"
)

func newTestDb(t *testing.T) storage.Db {
	dir, err := os.MkdirTemp("", "realtps-test-calc")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	db, err := storage.NewFileDb(dir)
	require.NoError(t, err)
	return db
}

func ptr(n uint64) *uint64 { return &n }

// TestCalculate_ShortChainReachesGenesis exercises the reference
// accumulation order: num_txs sums only the blocks walked through
// before the genesis (no-predecessor) block, which itself contributes
// nothing.
func TestCalculate_ShortChainReachesGenesis(t *testing.T) {
	db := newTestDb(t)

	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 8, Timestamp: 700, NumTxs: 2}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 9, Timestamp: 900, NumTxs: 3, PrevBlockNumber: ptr(8)}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 10, Timestamp: 1000, NumTxs: 5, PrevBlockNumber: ptr(9)}))
	require.NoError(t, db.StoreHighestBlockNumber(chain.Ethereum, 10))

	c := New(db)
	require.NoError(t, c.Calculate(chain.Ethereum))

	tps, err := db.LoadTps(chain.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, tps)
	assert.InDelta(t, 8.0/300.0, *tps, 0.0001)

	log, err := db.LoadCalculationLog(chain.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, uint64(1000), log.NewestBlockTimestamp)
	assert.Equal(t, uint64(700), log.OldestBlockTimestamp)
}

// TestCalculate_WindowBoundaryExcludesOlderTxs confirms the walk stops
// at the first predecessor whose timestamp falls at or below the
// window edge, counting that predecessor's own timestamp as the window
// start but never adding a transaction count beyond it.
func TestCalculate_WindowBoundaryExcludesOlderTxs(t *testing.T) {
	db := newTestDb(t)

	latestTs := uint64(windowSeconds + 1000)
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 1, Timestamp: 0, NumTxs: 1000}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 2, Timestamp: 500, NumTxs: 4, PrevBlockNumber: ptr(1)}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: chain.Ethereum, BlockNumber: 3, Timestamp: latestTs, NumTxs: 6, PrevBlockNumber: ptr(2)}))
	require.NoError(t, db.StoreHighestBlockNumber(chain.Ethereum, 3))

	c := New(db)
	require.NoError(t, c.Calculate(chain.Ethereum))

	log, err := db.LoadCalculationLog(chain.Ethereum)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, uint64(500), log.OldestBlockTimestamp)
}

func TestCalculate_NoDataIsAnError(t *testing.T) {
	db := newTestDb(t)
	c := New(db)
	err := c.Calculate(chain.Ethereum)
	assert.Error(t, err)
}

func TestComputeTps_ZeroInterval(t *testing.T) {
	assert.Equal(t, 0.0, computeTps(100, 100, 50))
}

func TestComputeTps_Normal(t *testing.T) {
	assert.InDelta(t, 0.02667, computeTps(700, 1000, 8), 0.0001)
}
