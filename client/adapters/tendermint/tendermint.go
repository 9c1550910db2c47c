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

// Package tendermint adapts Cosmos-SDK chains (every Tendermint-consensus
// chain: the Cosmos Hub and its app-chains) to client.Client using the
// reference Tendermint RPC HTTP client.
package tendermint

import (
	"context"

	rpchttp "github.com/tendermint/tendermint/rpc/client/http"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyTendermint, New)
}

// Client wraps a Tendermint RPC HTTP client for one configured node.
type Client struct {
	chainID chain.ID
	rpc     *rpchttp.HTTP
}

// New dials cfg.Primary via the Tendermint RPC HTTP transport.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	rpc, err := rpchttp.New(cfg.Primary, "/websocket")
	if err != nil {
		return nil, errs.Config("dial %s rpc endpoint: %v", id, err)
	}
	return &Client{chainID: id, rpc: rpc}, nil
}

// ClientVersion reports the connected node's software version, taken
// from the node's /status result.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	status, err := c.rpc.Status(ctx)
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return status.NodeInfo.Version, nil
}

// GetLatestBlockNumber returns the latest committed block height.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	status, err := c.rpc.Status(ctx)
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return uint64(status.SyncInfo.LatestBlockHeight), nil
}

// GetBlock fetches block n. Tendermint block headers do not carry a
// parent block number (only a parent hash), so the predecessor number
// is always height-1: valid for every chain in this family, since
// Tendermint height sequences have no gaps.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	height := int64(n)
	result, err := c.rpc.Block(ctx, &height)
	if err != nil {
		return nil, errs.TransientNetwork(err)
	}
	if result == nil || result.Block == nil {
		return nil, nil
	}
	blk := result.Block

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: uint64(blk.Height),
		Timestamp:   uint64(blk.Time.Unix()),
		NumTxs:      uint64(len(blk.Data.Txs)),
		Hash:        blk.Hash().String(),
		ParentHash:  blk.LastBlockID.Hash.String(),
	}
	if blk.Height > 0 {
		prev := uint64(blk.Height - 1)
		b.PrevBlockNumber = &prev
	}
	return b, nil
}
