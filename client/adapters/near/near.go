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

// Package near adapts NEAR Protocol to client.Client. NEAR has no
// maintained, idiomatic Go SDK anywhere in this project's dependency
// surface, so this adapter speaks NEAR's JSON-RPC 2.0 surface directly
// through the shared generic RPC client.
package near

import (
	"context"
	"strings"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/client/rpcgeneric"
)

func init() {
	client.Register(chain.FamilyNear, New)
}

type blockHeader struct {
	Height     uint64  `json:"height"`
	PrevHeight *uint64 `json:"prev_height"`
	Hash       string  `json:"hash"`
	PrevHash   string  `json:"prev_hash"`
	Timestamp  uint64  `json:"timestamp"` // nanoseconds since epoch
}

type chunkRef struct {
	ChunkHash string `json:"chunk_hash"`
}

type blockResult struct {
	Header blockHeader `json:"header"`
	Chunks []chunkRef  `json:"chunks"`
}

type chunkResult struct {
	Transactions []struct{} `json:"transactions"`
}

type statusResult struct {
	Version struct {
		Version string `json:"version"`
	} `json:"version"`
	SyncInfo struct {
		LatestBlockHeight uint64 `json:"latest_block_height"`
	} `json:"sync_info"`
}

// Client speaks NEAR JSON-RPC over HTTP POST.
type Client struct {
	chainID chain.ID
	rpc     *rpcgeneric.Client
}

// New builds a Client against cfg.Primary.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	return &Client{chainID: id, rpc: rpcgeneric.New(cfg.Primary)}, nil
}

// ClientVersion reports the node's reported software version.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	var status statusResult
	if err := c.rpc.Call(ctx, "status", nil, &status); err != nil {
		return "", err
	}
	return status.Version.Version, nil
}

// GetLatestBlockNumber returns the latest final block height.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	var status statusResult
	if err := c.rpc.Call(ctx, "status", nil, &status); err != nil {
		return 0, err
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// GetBlock fetches block n's header, then fetches every chunk in that
// block separately to total its transaction count — NEAR blocks do not
// carry a transaction count or list directly, only chunk references.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	var result blockResult
	err := c.rpc.Call(ctx, "block", map[string]interface{}{"block_id": n}, &result)
	if err != nil {
		if strings.Contains(err.Error(), "UNKNOWN_BLOCK") || strings.Contains(err.Error(), "DB Not Found") {
			return nil, nil
		}
		return nil, err
	}

	var numTxs uint64
	for _, chunk := range result.Chunks {
		var cr chunkResult
		if err := c.rpc.Call(ctx, "chunk", map[string]interface{}{"chunk_id": chunk.ChunkHash}, &cr); err != nil {
			return nil, err
		}
		numTxs += uint64(len(cr.Transactions))
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: result.Header.Height,
		Timestamp:   result.Header.Timestamp / 1_000_000_000,
		NumTxs:      numTxs,
		Hash:        result.Header.Hash,
		ParentHash:  result.Header.PrevHash,
	}
	b.PrevBlockNumber = result.Header.PrevHeight
	return b, nil
}
