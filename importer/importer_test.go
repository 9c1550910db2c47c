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

package importer

import (
	"context"
	"os"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client/mocks"
	"github.com/realtps/realtps/storage"
)

// testChain carries a zero block pace (Solana's configured pace),
// keeping these tests from blocking on the real per-chain rate limiter.
const testChain = chain.Solana

func newTestDb(t *testing.T) storage.Db {
	dir, err := os.MkdirTemp("", "realtps-test-import")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	db, err := storage.NewFileDb(dir)
	require.NoError(t, err)
	return db
}

func ptr(n uint64) *uint64 { return &n }

// TestSync_ColdStart exercises S1: an empty store, a reported head of
// 100 whose declared predecessor hash matches block 99's actual hash.
func TestSync_ColdStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := newTestDb(t)
	cl := mocks.NewMockClient(ctrl)

	head := &chain.Block{Chain: testChain, BlockNumber: 100, Timestamp: 0, ParentHash: "A", Hash: "H100", PrevBlockNumber: ptr(99)}
	pred := &chain.Block{Chain: testChain, BlockNumber: 99, Timestamp: 0, Hash: "A", PrevBlockNumber: ptr(98)}

	cl.EXPECT().ClientVersion(gomock.Any()).Return("test/1.0", nil)
	cl.EXPECT().GetLatestBlockNumber(gomock.Any()).Return(uint64(100), nil)
	cl.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(head, nil)
	cl.EXPECT().GetBlock(gomock.Any(), uint64(99)).Return(pred, nil)

	im := New(testChain, db, cl)
	require.NoError(t, im.Sync(context.Background()))

	got, err := db.LoadBlock(testChain, 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	got, err = db.LoadBlock(testChain, 99)
	require.NoError(t, err)
	assert.NotNil(t, got)

	h, err := db.LoadHighestBlockNumber(testChain)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, uint64(100), *h)
}

// TestSync_NoChange exercises S2: the store already has H=100 and the
// client reports the same head, so nothing should be fetched or
// written.
func TestSync_NoChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := newTestDb(t)
	cl := mocks.NewMockClient(ctrl)
	require.NoError(t, db.StoreHighestBlockNumber(testChain, 100))

	cl.EXPECT().ClientVersion(gomock.Any()).Return("test/1.0", nil)
	cl.EXPECT().GetLatestBlockNumber(gomock.Any()).Return(uint64(100), nil)

	im := New(testChain, db, cl)
	require.NoError(t, im.Sync(context.Background()))
}

// TestSync_Regression exercises the documented regression branch: the
// client now reports a head below the stored highest block number.
// This is treated as a transient condition, not an error.
func TestSync_Regression(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := newTestDb(t)
	cl := mocks.NewMockClient(ctrl)
	require.NoError(t, db.StoreHighestBlockNumber(testChain, 100))

	cl.EXPECT().ClientVersion(gomock.Any()).Return("test/1.0", nil)
	cl.EXPECT().GetLatestBlockNumber(gomock.Any()).Return(uint64(50), nil)

	im := New(testChain, db, cl)
	require.NoError(t, im.Sync(context.Background()))

	h, err := db.LoadHighestBlockNumber(testChain)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, uint64(100), *h)
}

// TestSync_LinearExtension exercises S3: the store already holds a
// confirmed chain up to 100; the client now reports L=102 with 101 and
// 102 hash-consistent with the stored tip.
func TestSync_LinearExtension(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := newTestDb(t)
	cl := mocks.NewMockClient(ctrl)

	require.NoError(t, db.StoreBlock(chain.Block{Chain: testChain, BlockNumber: 100, Hash: "H100", PrevBlockNumber: ptr(99)}))
	require.NoError(t, db.StoreHighestBlockNumber(testChain, 100))

	b101 := &chain.Block{Chain: testChain, BlockNumber: 101, Hash: "H101", ParentHash: "H100", PrevBlockNumber: ptr(100)}
	b102 := &chain.Block{Chain: testChain, BlockNumber: 102, Hash: "H102", ParentHash: "H101", PrevBlockNumber: ptr(101)}

	cl.EXPECT().ClientVersion(gomock.Any()).Return("test/1.0", nil)
	cl.EXPECT().GetLatestBlockNumber(gomock.Any()).Return(uint64(102), nil)
	cl.EXPECT().GetBlock(gomock.Any(), uint64(102)).Return(b102, nil)
	cl.EXPECT().GetBlock(gomock.Any(), uint64(101)).Return(b101, nil)

	im := New(testChain, db, cl)
	require.NoError(t, im.Sync(context.Background()))

	h, err := db.LoadHighestBlockNumber(testChain)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, uint64(102), *h)

	got, err := db.LoadBlock(testChain, 101)
	require.NoError(t, err)
	assert.Equal(t, "H101", got.Hash)
}

// TestSync_Reorg exercises S4: a stored tip of 100 with hash "A" that no
// longer matches the parent_hash ("B") the client now reports for 101;
// the walk must overwrite the contested block 100 and confirm the join
// point at 99 below it.
func TestSync_Reorg(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db := newTestDb(t)
	cl := mocks.NewMockClient(ctrl)

	require.NoError(t, db.StoreBlock(chain.Block{Chain: testChain, BlockNumber: 99, Hash: "A", PrevBlockNumber: ptr(98)}))
	require.NoError(t, db.StoreBlock(chain.Block{Chain: testChain, BlockNumber: 100, Hash: "A", PrevBlockNumber: ptr(99)}))
	require.NoError(t, db.StoreHighestBlockNumber(testChain, 100))

	b101 := &chain.Block{Chain: testChain, BlockNumber: 101, Hash: "H101", ParentHash: "B", PrevBlockNumber: ptr(100)}
	b100New := &chain.Block{Chain: testChain, BlockNumber: 100, Hash: "B", ParentHash: "A", PrevBlockNumber: ptr(99)}

	cl.EXPECT().ClientVersion(gomock.Any()).Return("test/1.0", nil)
	cl.EXPECT().GetLatestBlockNumber(gomock.Any()).Return(uint64(101), nil)
	cl.EXPECT().GetBlock(gomock.Any(), uint64(101)).Return(b101, nil)
	cl.EXPECT().GetBlock(gomock.Any(), uint64(100)).Return(b100New, nil)

	im := New(testChain, db, cl)
	require.NoError(t, im.Sync(context.Background()))

	got, err := db.LoadBlock(testChain, 100)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.Hash)

	h, err := db.LoadHighestBlockNumber(testChain)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, uint64(101), *h)
}
