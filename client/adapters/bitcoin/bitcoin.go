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

// Package bitcoin adapts UTXO chains that speak the Bitcoin Core RPC
// dialect (Bitcoin itself, and forks like Pivx) to client.Client using
// btcsuite's reference RPC client.
package bitcoin

import (
	"context"
	"strings"

	"github.com/btcsuite/btcd/rpcclient"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyElectrum, New)
}

// Client wraps a Bitcoin Core-compatible RPC connection for one node.
type Client struct {
	chainID chain.ID
	rpc     *rpcclient.Client
}

// New connects to cfg.Primary over HTTP POST RPC (no websocket
// notifications are needed; this adapter only ever polls).
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	user, pass := splitUserInfo(cfg.Primary)
	rc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         stripUserInfo(cfg.Primary),
		User:         user,
		Pass:         pass,
		HTTPPostMode: true,
		DisableTLS:   strings.HasPrefix(cfg.Primary, "http://"),
	}, nil)
	if err != nil {
		return nil, errs.Config("dial %s rpc endpoint: %v", id, err)
	}
	return &Client{chainID: id, rpc: rc}, nil
}

// ClientVersion reports the node's user agent string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	info, err := c.rpc.GetNetworkInfo()
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return info.SubVersion, nil
}

// GetLatestBlockNumber returns the current chain tip height.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	height, err := c.rpc.GetBlockCount()
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return uint64(height), nil
}

// GetBlock fetches block n by first resolving its hash, then its
// verbose header+body, which carries the UTXO-chain transaction count
// and the parent block's hash directly.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	hash, err := c.rpc.GetBlockHash(int64(n))
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			return nil, nil
		}
		return nil, errs.TransientNetwork(err)
	}

	verbose, err := c.rpc.GetBlockVerbose(hash)
	if err != nil {
		return nil, errs.TransientNetwork(err)
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: uint64(verbose.Height),
		Timestamp:   uint64(verbose.Time),
		NumTxs:      uint64(len(verbose.Tx)),
		Hash:        verbose.Hash,
		ParentHash:  verbose.PreviousHash,
	}
	if verbose.Height > 0 {
		prev := uint64(verbose.Height - 1)
		b.PrevBlockNumber = &prev
	}
	return b, nil
}

// splitUserInfo extracts basic-auth credentials embedded in a
// "user:pass@host:port" endpoint, the common way Bitcoin Core RPC
// endpoints are expressed in a single config string.
func splitUserInfo(endpoint string) (user, pass string) {
	endpoint = stripScheme(endpoint)
	at := strings.Index(endpoint, "@")
	if at < 0 {
		return "", ""
	}
	creds := endpoint[:at]
	parts := strings.SplitN(creds, ":", 2)
	if len(parts) != 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func stripUserInfo(endpoint string) string {
	endpoint = stripScheme(endpoint)
	at := strings.Index(endpoint, "@")
	if at < 0 {
		return endpoint
	}
	return endpoint[at+1:]
}

func stripScheme(endpoint string) string {
	if i := strings.Index(endpoint, "://"); i >= 0 {
		return endpoint[i+3:]
	}
	return endpoint
}
