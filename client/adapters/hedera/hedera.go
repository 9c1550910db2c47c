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

// Package hedera adapts Hedera's record-file-numbered "blocks" (as
// surfaced by a mirror node's REST API) to client.Client. Hedera's
// consensus nodes speak gRPC and have no notion of a queryable block by
// number, so block polling goes through the mirror node's /blocks
// endpoint (cfg.Primary) via the shared generic REST client, while
// cfg.Secondary, when present, names the network (as accepted by the
// official SDK's ClientForName) used only to fetch the network's HAPI
// version through that SDK.
package hedera

import (
	"context"
	"fmt"
	"strconv"

	hederasdk "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/client/rpcgeneric"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyHedera, New)
}

// mirrorBlock is the subset of a mirror node's /api/v1/blocks/{number}
// response this adapter consumes.
type mirrorBlock struct {
	Number       uint64 `json:"number"`
	Count        uint64 `json:"count"`
	Hash         string `json:"hash"`
	PreviousHash string `json:"previous_hash"`
	Timestamp    struct {
		From string `json:"from"`
	} `json:"timestamp"`
}

// Client wraps the mirror node REST surface plus, optionally, an SDK
// client against a consensus node for version reporting.
type Client struct {
	chainID chain.ID
	mirror  *rpcgeneric.Client
	sdk     *hederasdk.Client
}

// New builds a Client. cfg.Primary is the mirror node's base URL (for
// example "https://mainnet-public.mirrornode.hedera.com");
// cfg.Secondary, if non-empty, is passed to ClientForName so
// ClientVersion can query the live network.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	c := &Client{
		chainID: id,
		mirror:  rpcgeneric.New(cfg.Primary),
	}
	if cfg.Secondary != "" {
		sdkClient, err := hederasdk.ClientForName(cfg.Secondary)
		if err != nil {
			return nil, errs.Config("build hedera sdk client for %s: %v", id, err)
		}
		c.sdk = sdkClient
	}
	return c, nil
}

// ClientVersion reports the network's HAPI protobuf version when an SDK
// client was configured; otherwise it falls back to naming the mirror
// endpoint, since version info is not part of the mirror REST surface.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	if c.sdk == nil {
		return "hedera-mirror", nil
	}
	info, err := hederasdk.NewNetworkVersionInfoQuery().Execute(c.sdk)
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return fmt.Sprintf("hapi=%s", info.HapiVersion.String()), nil
}

// GetLatestBlockNumber returns the highest block number the mirror node
// has recorded.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	var page struct {
		Blocks []mirrorBlock `json:"blocks"`
	}
	found, err := c.mirror.GetJSON(ctx, "/api/v1/blocks?limit=1&order=desc", &page)
	if err != nil {
		return 0, err
	}
	if !found || len(page.Blocks) == 0 {
		return 0, errs.TransientNetworkf("mirror node returned no blocks for %s", c.chainID)
	}
	return page.Blocks[0].Number, nil
}

// GetBlock fetches block n from the mirror node. Hedera block numbers,
// like Tendermint heights, are strictly consecutive.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	var blk mirrorBlock
	found, err := c.mirror.GetJSON(ctx, "/api/v1/blocks/"+strconv.FormatUint(n, 10), &blk)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: blk.Number,
		Timestamp:   parseConsensusSeconds(blk.Timestamp.From),
		NumTxs:      blk.Count,
		Hash:        blk.Hash,
		ParentHash:  blk.PreviousHash,
	}
	if n > 0 {
		prev := n - 1
		b.PrevBlockNumber = &prev
	}
	return b, nil
}

// parseConsensusSeconds truncates a mirror node "<seconds>.<nanos>"
// consensus timestamp down to whole seconds.
func parseConsensusSeconds(ts string) uint64 {
	for i := 0; i < len(ts); i++ {
		if ts[i] == '.' {
			v, _ := strconv.ParseUint(ts[:i], 10, 64)
			return v
		}
	}
	v, _ := strconv.ParseUint(ts, 10, 64)
	return v
}
