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

// Package solana adapts Solana's slot-numbered ledger to client.Client
// using the community gagliardetto/solana-go RPC client.
package solana

import (
	"context"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

func init() {
	client.Register(chain.FamilySolana, New)
}

// voteProgram is the native vote program id; a transaction whose every
// instruction targets it carries no user-submitted work and is excluded
// from NumTxs, matching how Solana's own TPS dashboards report.
const voteProgram = "Vote111111111111111111111111111111111111111"

// Client wraps a Solana JSON-RPC client for one configured cluster
// endpoint.
type Client struct {
	chainID chain.ID
	rpc     *rpc.Client
}

// New builds a Client against cfg.Primary.
func New(id chain.ID, cfg client.Config) (client.Client, error) {
	return &Client{chainID: id, rpc: rpc.New(cfg.Primary)}, nil
}

// ClientVersion reports the cluster's solana-core version string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	v, err := c.rpc.GetVersion(ctx)
	if err != nil {
		return "", errs.TransientNetwork(err)
	}
	return v.SolanaCore, nil
}

// GetLatestBlockNumber returns the current slot.
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	slot, err := c.rpc.GetSlot(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return 0, errs.TransientNetwork(err)
	}
	return slot, nil
}

// GetBlock fetches the block at slot n. A skipped slot is reported by
// the node as a "not available" RPC error, which this adapter maps to a
// nil block rather than a transient failure: the importer retries it via
// pacing.IfNone and, if it stays absent, fails the pass with a
// missing-remote-data error instead of a transient-network one.
func (c *Client) GetBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	maxSupportedVersion := uint64(0)
	result, err := c.rpc.GetBlockWithOpts(ctx, n, &rpc.GetBlockOpts{
		Encoding:                       solana.EncodingBase64,
		TransactionDetails:             rpc.TransactionDetailsFull,
		MaxSupportedTransactionVersion: &maxSupportedVersion,
	})
	if err != nil {
		if strings.Contains(err.Error(), "skipped") || strings.Contains(err.Error(), "not available") {
			return nil, nil
		}
		return nil, errs.TransientNetwork(err)
	}
	if result == nil {
		return nil, nil
	}

	var numTxs uint64
	for _, tx := range result.Transactions {
		parsed, err := tx.GetTransaction()
		if err != nil || parsed == nil {
			continue
		}
		if !isVoteOnly(parsed) {
			numTxs++
		}
	}

	if result.BlockTime == nil {
		return nil, errs.TransientNetworkf("slot %d: block_time absent", n)
	}
	ts := uint64(*result.BlockTime)

	b := &chain.Block{
		Chain:       c.chainID,
		BlockNumber: n,
		Timestamp:   ts,
		NumTxs:      numTxs,
		Hash:        result.Blockhash.String(),
		ParentHash:  result.PreviousBlockhash.String(),
	}
	if result.ParentSlot > 0 || n > 0 {
		prev := result.ParentSlot
		b.PrevBlockNumber = &prev
	}
	return b, nil
}

// isVoteOnly reports whether every instruction in tx targets the native
// vote program.
func isVoteOnly(tx *solana.Transaction) bool {
	keys := tx.Message.AccountKeys
	for _, instr := range tx.Message.Instructions {
		if int(instr.ProgramIDIndex) >= len(keys) {
			return false
		}
		if keys[instr.ProgramIDIndex].String() != voteProgram {
			return false
		}
	}
	return len(tx.Message.Instructions) > 0
}
