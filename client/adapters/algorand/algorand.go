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

// Package algorand adapts Algorand's round-numbered ledger to
// client.Client via the official Go SDK's algod REST client. Algorand
// rounds, like Tendermint heights, are strictly consecutive.
package algorand

import (
	"context"
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyAlgorand, New)
}

// Client wraps an algod REST client. cfg.Secondary, if set, is an
// indexer endpoint — unused by this adapter today, since algod alone
// is sufficient for block-level polling, but plumbed through so a
// future transaction-level query can use it without a config change.
type Client struct {
	chainID chain.ID
	algod   *algod.Client
}

// New builds a Client against cfg.Primary, algod's base URL (optionally
// "token@url" when the node requires an API token).
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	token, url := splitToken(cfg.Primary)
	c, err := algod.MakeClient(url, token)
	if err != nil {
		return nil, errs.Config("dial %s algod endpoint: %v", id, err)
	}
	return &Client{chainID: id, algod: c}, nil
}

// ClientVersion reports the node's build version string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	v, err := c.algod.Versions().Do(ctx)
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return fmt.Sprintf("%s.%s.%s-%s", v.Build.Major, v.Build.Minor, v.Build.BuildNumber, v.Build.Channel), nil
}

// GetLatestBlockNumber returns the node's last committed round.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	status, err := c.algod.Status().Do(ctx)
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return status.LastRound, nil
}

// GetBlock fetches round n's header and its canonical block hash.
// Algorand's raw block does not carry its own hash inline — it carries
// only the *next* block's reference to it via Branch — so the self hash
// is fetched through the dedicated block-hash endpoint.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	resp, err := c.algod.Block(n).Do(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return nil, nil
		}
		return nil, errs.TransientNetwork(err)
	}
	blk := resp.Block

	hashResp, err := c.algod.GetBlockHash(n).Do(ctx)
	if err != nil {
		return nil, errs.TransientNetwork(err)
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: n,
		Timestamp:   uint64(blk.TimeStamp),
		NumTxs:      uint64(len(blk.Payset)),
		Hash:        hashResp.BlockHash,
		ParentHash:  blk.Branch,
	}
	if n > 0 {
		prev := n - 1
		b.PrevBlockNumber = &prev
	}
	return b, nil
}

// splitToken extracts an optional "token@url" form down to its parts;
// most public algod endpoints need no token, in which case endpoint is
// returned unchanged with an empty token.
func splitToken(endpoint string) (token, url string) {
	at := strings.Index(endpoint, "@")
	if at < 0 {
		return "", endpoint
	}
	return endpoint[:at], endpoint[at+1:]
}
