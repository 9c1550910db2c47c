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

// Package ethers adapts every EVM-compatible, block-numbered chain
// (Ethereum, the Ethereum L2s, and the EVM sidechains) to client.Client
// using go-ethereum's own RPC client, the way the teacher's own
// BridgeClient wraps ethclient/rpc.Client for its sidechain bridge
// calls.
package ethers

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyEthers, New)
}

// Client wraps an ethclient.Client dialed against the chain's configured
// RPC endpoint.
type Client struct {
	chainID chain.ID
	ec      *ethclient.Client
}

// New dials cfg.Primary and returns a Client for id.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	ec, err := ethclient.Dial(cfg.Primary)
	if err != nil {
		return nil, errs.Config("dial %s rpc endpoint: %v", id, err)
	}
	return &Client{chainID: id, ec: ec}, nil
}

// ClientVersion reports the node's web3_clientVersion string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.ec.Client().CallContext(ctx, &version, "web3_clientVersion"); err != nil {
		return "", errs.TransientNetwork(err)
	}
	return version, nil
}

// GetLatestBlockNumber returns the chain head's block number.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	n, err := c.ec.BlockNumber(ctx)
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return n, nil
}

// GetBlock fetches block n, mapping go-ethereum's *types.Block into the
// chain-agnostic chain.Block: the block's own transaction count (no
// filtering — every EVM family counts every included transaction,
// unlike Solana's vote-transaction exclusion) and the numeric
// parent linkage a block header already carries.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	blk, err := c.ec.BlockByNumber(ctx, new(big.Int).SetUint64(n))
	if err != nil {
		if err.Error() == "not found" {
			return nil, nil
		}
		return nil, errs.TransientNetwork(err)
	}
	if blk == nil {
		return nil, nil
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: blk.NumberU64(),
		Timestamp:   blk.Time(),
		NumTxs:      uint64(len(blk.Transactions())),
		Hash:        blk.Hash().Hex(),
		ParentHash:  blk.ParentHash().Hex(),
	}
	if blk.NumberU64() > 0 {
		prev := blk.NumberU64() - 1
		b.PrevBlockNumber = &prev
	}
	return b, nil
}
