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

// Package stellar adapts Stellar's ledger-numbered history to
// client.Client via the reference Horizon REST client.
package stellar

import (
	"context"
	"strings"

	"github.com/stellar/go/clients/horizonclient"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilyStellar, New)
}

// Client wraps a Horizon REST client. Stellar's "block" is the ledger;
// ledger sequence numbers are strictly consecutive, so the predecessor
// number is always sequence-1, same as Tendermint's height sequence.
type Client struct {
	chainID chain.ID
	hc      *horizonclient.Client
}

// New builds a Client against cfg.Primary, Horizon's base URL.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	return &Client{
		chainID: id,
		hc:      &horizonclient.Client{HorizonURL: cfg.Primary},
	}, nil
}

// ClientVersion reports Horizon's own version string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	root, err := c.hc.Root()
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return root.HorizonVersion, nil
}

// GetLatestBlockNumber returns the latest closed ledger sequence.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	root, err := c.hc.Root()
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return uint64(root.HistoryLatestLedger), nil
}

// GetBlock fetches ledger n.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	ledger, err := c.hc.LedgerDetail(uint32(n))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errs.TransientNetwork(err)
	}

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: uint64(ledger.Sequence),
		Timestamp:   uint64(ledger.ClosedAt.Unix()),
		NumTxs:      uint64(ledger.SuccessfulTransactionCount),
		Hash:        ledger.Hash,
		ParentHash:  ledger.PrevHash,
	}
	if ledger.Sequence > 0 {
		prev := uint64(ledger.Sequence - 1)
		b.PrevBlockNumber = &prev
	}
	return b, nil
}

func isNotFound(err error) bool {
	return strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "Not Found")
}
