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

// Package substrate adapts Substrate-framework chains (Polkadot, Kusama,
// and their parachains) to client.Client via the reference Go
// Substrate RPC client. Block timestamps are not part of a Substrate
// block header; they live in the Timestamp pallet's storage, so every
// GetBlock call makes a second request to read Timestamp.Now at that
// block's state root.
package substrate

import (
	"context"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilySubstrate, New)
}

// Client wraps a Substrate RPC connection along with the Timestamp
// storage key derived once from chain metadata at construction time.
type Client struct {
	chainID   chain.ID
	api       *gsrpc.SubstrateAPI
	momentKey types.StorageKey
}

// New connects to cfg.Primary and resolves the Timestamp.Now storage
// key from the chain's current metadata.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	api, err := gsrpc.NewSubstrateAPI(cfg.Primary)
	if err != nil {
		return nil, errs.Config("dial %s rpc endpoint: %v", id, err)
	}
	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, errs.Config("fetch %s metadata: %v", id, err)
	}
	key, err := types.CreateStorageKey(meta, "Timestamp", "Now")
	if err != nil {
		return nil, errs.Config("resolve %s timestamp storage key: %v", id, err)
	}
	return &Client{chainID: id, api: api, momentKey: key}, nil
}

// ClientVersion reports the node's system_version string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	v, err := c.api.RPC.System.Version()
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return string(v), nil
}

// GetLatestBlockNumber returns the best (not necessarily finalized)
// block's number, matching spec semantics for every other family's head
// discovery.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	header, err := c.api.RPC.Chain.GetHeaderLatest()
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return uint64(header.Number), nil
}

// GetBlock fetches block n's header and extrinsics, then reads the
// Timestamp.Now value recorded in that block's own state.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	hash, err := c.api.RPC.Chain.GetBlockHash(n)
	if err != nil {
		if isUnknownBlock(err) {
			return nil, nil
		}
		return nil, errs.TransientNetwork(err)
	}

	signed, err := c.api.RPC.Chain.GetBlock(hash)
	if err != nil {
		return nil, errs.TransientNetwork(err)
	}

	var moment types.U64
	ok, err := c.api.RPC.State.GetStorage(c.momentKey, &moment, hash)
	if err != nil {
		return nil, errs.TransientNetwork(err)
	}
	var tsMillis uint64
	if ok {
		tsMillis = uint64(moment)
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: uint64(signed.Block.Header.Number),
		Timestamp:   tsMillis / 1000,
		NumTxs:      uint64(len(signed.Block.Extrinsics)),
		Hash:        hash.Hex(),
		ParentHash:  signed.Block.Header.ParentHash.Hex(),
	}
	if signed.Block.Header.Number > 0 {
		prev := uint64(signed.Block.Header.Number) - 1
		b.PrevBlockNumber = &prev
	}
	return b, nil
}

func isUnknownBlock(err error) bool {
	return err != nil && err.Error() == "Unknown block"
}
