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

// Package elrond adapts the MultiversX (formerly Elrond) network to
// client.Client. Like Near, it has no maintained Go SDK anywhere in the
// dependency set, so this adapter speaks the network's public REST
// gateway (api.multiversx.com-shaped) through the shared generic REST
// client.
package elrond

import (
	"context"
	"strconv"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/client/rpcgeneric"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyElrond, New)
}

type networkStatus struct {
	Data struct {
		Status struct {
			ErdNonce uint64 `json:"erd_nonce"`
		} `json:"status"`
	} `json:"data"`
}

type blockResponse struct {
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prevHash"`
	Timestamp uint64 `json:"timestamp"`
	TxCount   uint64 `json:"txCount"`
}

// Client speaks the MultiversX gateway's REST API over cfg.Primary.
type Client struct {
	chainID chain.ID
	rest    *rpcgeneric.Client
}

// New builds a Client against cfg.Primary.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	return &Client{chainID: id, rest: rpcgeneric.New(cfg.Primary)}, nil
}

// ClientVersion reports a fixed identifier: the gateway's REST API
// exposes no software version endpoint.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	return "multiversx-gateway", nil
}

// GetLatestBlockNumber returns the metachain's current nonce, used as
// the canonical block number the way the gateway itself reports chain
// height.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	var status networkStatus
	found, err := c.rest.GetJSON(ctx, "/network/status/4294967295", &status)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errs.TransientNetworkf("no network status for %s", c.chainID)
	}
	return status.Data.Status.ErdNonce, nil
}

// GetBlock fetches the block with nonce n on the metachain.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	var wrapper struct {
		Data struct {
			Block blockResponse `json:"block"`
		} `json:"data"`
	}
	found, err := c.rest.GetJSON(ctx, "/blocks/by-nonce/"+strconv.FormatUint(n, 10)+"?withTxs=false", &wrapper)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	blk := wrapper.Data.Block
	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: blk.Nonce,
		Timestamp:   blk.Timestamp,
		NumTxs:      blk.TxCount,
		Hash:        blk.Hash,
		ParentHash:  blk.PrevHash,
	}
	if blk.Nonce > 0 {
		prev := blk.Nonce - 1
		b.PrevBlockNumber = &prev
	}
	return b, nil
}
