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

// Package icp adapts the Internet Computer to client.Client through its
// Rosetta API, the only block-indexed, network-agnostic surface ICP
// exposes; there is no general-purpose Go SDK for ICP subnets in the
// dependency set, so (like Near and Elrond) this talks JSON over the
// shared generic REST client.
package icp

import (
	"context"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/client/rpcgeneric"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyICP, New)
}

type blockIdentifier struct {
	Index uint64 `json:"index"`
	Hash  string `json:"hash"`
}

type rosettaBlock struct {
	BlockIdentifier       blockIdentifier `json:"block_identifier"`
	ParentBlockIdentifier blockIdentifier `json:"parent_block_identifier"`
	Timestamp             uint64          `json:"timestamp"` // milliseconds
	Transactions          []struct{}      `json:"transactions"`
}

type blockRequest struct {
	NetworkIdentifier struct {
		Blockchain string `json:"blockchain"`
		Network    string `json:"network"`
	} `json:"network_identifier"`
	BlockIdentifier struct {
		Index *uint64 `json:"index,omitempty"`
	} `json:"block_identifier"`
}

type blockResponse struct {
	Block *rosettaBlock `json:"block"`
}

// Client speaks the Rosetta /block and /network/status endpoints of an
// ICP Rosetta node at cfg.Primary.
type Client struct {
	chainID chain.ID
	rest    *rpcgeneric.Client
}

// New builds a Client against cfg.Primary, a Rosetta node's base URL.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	return &Client{chainID: id, rest: rpcgeneric.New(cfg.Primary)}, nil
}

// ClientVersion reports a fixed identifier: Rosetta's API carries no
// node software version field.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	return "icp-rosetta", nil
}

func (c *Client) networkIdentifier() (blockchain, network string) {
	return "Internet Computer", "00000000000000020101"
}

// GetLatestBlockNumber returns the current index reported by /network/status.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	blockchain, network := c.networkIdentifier()
	req := struct {
		NetworkIdentifier struct {
			Blockchain string `json:"blockchain"`
			Network    string `json:"network"`
		} `json:"network_identifier"`
	}{}
	req.NetworkIdentifier.Blockchain = blockchain
	req.NetworkIdentifier.Network = network

	var status struct {
		CurrentBlockIdentifier blockIdentifier `json:"current_block_identifier"`
	}
	found, err := c.rest.PostJSON(ctx, "/network/status", req, &status)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errs.TransientNetworkf("no network status for %s", c.chainID)
	}
	return status.CurrentBlockIdentifier.Index, nil
}

// GetBlock fetches the block at index n via Rosetta's /block endpoint.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	blockchain, network := c.networkIdentifier()
	var req blockRequest
	req.NetworkIdentifier.Blockchain = blockchain
	req.NetworkIdentifier.Network = network
	req.BlockIdentifier.Index = &n

	var resp blockResponse
	found, err := c.rest.PostJSON(ctx, "/block", req, &resp)
	if err != nil {
		return nil, err
	}
	if !found || resp.Block == nil {
		return nil, nil
	}

	blk := resp.Block
	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: blk.BlockIdentifier.Index,
		Timestamp:   blk.Timestamp / 1000,
		NumTxs:      uint64(len(blk.Transactions)),
		Hash:        blk.BlockIdentifier.Hash,
		ParentHash:  blk.ParentBlockIdentifier.Hash,
	}
	if blk.BlockIdentifier.Index > 0 {
		prev := blk.BlockIdentifier.Index - 1
		b.PrevBlockNumber = &prev
	}
	return b, nil
}
