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

// Package importer drives one chain's backward-walking, reorg-aware
// block sync. One Importer exists per chain; its single successor job
// is itself, which is what keeps stored Block writes for that chain
// totally ordered (spec §5).
package importer

import (
	"context"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
	"github.com/realtps/realtps/internal/rlog"
	"github.com/realtps/realtps/pacing"
	"github.com/realtps/realtps/storage"
)

var logger = rlog.New("importer")

// Importer runs the per-chain state machine of spec.md §4.5 against a
// single chain. Not safe for concurrent Sync calls on the same value;
// the job runner enforces at most one in flight per chain by
// construction (one Import task seeded per chain, whose only successor
// is itself).
type Importer struct {
	chainID chain.ID
	db      storage.Db
	client  client.Client
	pacer   *pacing.PaceSetter
}

// New builds an Importer for id, backed by db and cl.
func New(id chain.ID, db storage.Db, cl client.Client) *Importer {
	return &Importer{
		chainID: id,
		db:      db,
		client:  cl,
		pacer:   pacing.NewPaceSetter(id),
	}
}

// Sync runs one pass of the state machine: head discovery, then the
// appropriate branch (first import / no change / regression / backward
// walk). It returns after writing HighestBlockNumber, or immediately for
// the no-change and regression branches.
func (im *Importer) Sync(ctx context.Context) error {
	version, err := im.client.ClientVersion(ctx)
	if err != nil {
		logger.Warn("client_version unavailable", "chain", im.chainID, "err", err)
	} else {
		logger.Info("beginning import", "chain", im.chainID, "client_version", version)
	}

	hPtr, err := im.db.LoadHighestBlockNumber(im.chainID)
	if err != nil {
		return errs.Wrap(err, "load highest block number")
	}

	l, err := pacing.IfErr(ctx, im.chainID, func() (uint64, error) {
		return im.client.GetLatestBlockNumber(ctx)
	})
	if err != nil {
		return errs.Wrap(err, "get latest block number")
	}

	if hPtr == nil {
		return im.firstImport(ctx, l)
	}
	h := *hPtr

	switch {
	case l == h:
		logger.Debug("no new blocks", "chain", im.chainID, "head", l)
		return nil
	case l < h:
		logger.Warn("head regressed, treating as transient", "chain", im.chainID, "head", l, "highest", h)
		return nil
	default:
		return im.backwardWalk(ctx, l, h)
	}
}

// firstImport handles H = None: fetch head block L and its declared
// predecessor, verify the hash link, store both, and set H := L.
func (im *Importer) firstImport(ctx context.Context, l uint64) error {
	logger.Info("no highest block number, starting first import", "chain", im.chainID)

	head, err := im.fetchBlock(ctx, l)
	if err != nil {
		return errs.Wrap(err, "fetch head block")
	}

	if head.PrevBlockNumber == nil {
		return errs.Logic("first-import head block %d for chain %s has no predecessor", l, im.chainID)
	}
	pred, err := im.fetchBlock(ctx, *head.PrevBlockNumber)
	if err != nil {
		return errs.Wrap(err, "fetch first-import predecessor")
	}
	if pred.Hash != head.ParentHash {
		return errs.Logic("first-import hash mismatch for chain %s: block %d parent_hash %s != block %d hash %s",
			im.chainID, head.BlockNumber, head.ParentHash, pred.BlockNumber, pred.Hash)
	}

	if err := im.db.StoreBlock(*pred); err != nil {
		return errs.Wrap(err, "store first-import predecessor")
	}
	if err := im.db.StoreBlock(*head); err != nil {
		return errs.Wrap(err, "store first-import head")
	}
	if err := im.db.StoreHighestBlockNumber(im.chainID, l); err != nil {
		return errs.Wrap(err, "store highest block number")
	}
	logger.Info("first import complete", "chain", im.chainID, "highest", l)
	return nil
}

// backwardWalk implements the normal-sync branch: walk backward from L,
// storing every fetched block, until the walk joins the previously
// confirmed suffix. A fetched block without a predecessor ends the pass
// with a Logic error. Reorgs and interrupted-import tails are repaired
// along the way via fast-forward.
func (im *Importer) backwardWalk(ctx context.Context, l, h uint64) error {
	logger.Info("syncing forward", "chain", im.chainID, "from", h, "to", l)
	cursor := l

	for {
		b, err := im.fetchBlock(ctx, cursor)
		if err != nil {
			return errs.Wrap(err, "fetch block during backward walk")
		}
		if err := im.db.StoreBlock(*b); err != nil {
			return errs.Wrap(err, "store block during backward walk")
		}

		if b.PrevBlockNumber == nil {
			return errs.Logic("block %d for chain %s has no predecessor mid-walk; not expected before genesis", b.BlockNumber, im.chainID)
		}
		p := *b.PrevBlockNumber
		ph := b.ParentHash

		s, err := im.db.LoadBlock(im.chainID, p)
		if err != nil {
			return errs.Wrap(err, "load predecessor during backward walk")
		}

		switch {
		case s == nil:
			cursor = p
		case s.Hash != ph:
			logger.Warn("reorg detected", "chain", im.chainID, "at", p, "old_hash", s.Hash, "new_parent_hash", ph)
			cursor = p
		case p <= h:
			logger.Info("joined previously confirmed chain", "chain", im.chainID, "at", p)
			goto done
		default:
			logger.Warn("repairing interrupted previous import", "chain", im.chainID, "from", p)
			joinAt, err := im.fastForward(ctx, *s)
			if err != nil {
				return errs.Wrap(err, "fast forward")
			}
			cursor = joinAt
		}
	}

done:
	if err := im.db.StoreHighestBlockNumber(im.chainID, l); err != nil {
		return errs.Wrap(err, "store highest block number")
	}
	logger.Info("sync pass complete", "chain", im.chainID, "highest", l)
	return nil
}

// fastForward walks backward from an already-stored block b using only
// stored data, stopping at the first predecessor that is absent or
// whose hash contradicts the child's parent_hash. It returns that
// predecessor's block number, saving a remote fetch for every block in
// the already-known-good run.
func (im *Importer) fastForward(ctx context.Context, b chain.Block) (uint64, error) {
	current := b
	for {
		if current.PrevBlockNumber == nil {
			return current.BlockNumber, nil
		}
		p := *current.PrevBlockNumber
		s, err := im.db.LoadBlock(im.chainID, p)
		if err != nil {
			return 0, errs.Wrap(err, "load block during fast forward")
		}
		if s == nil || s.Hash != current.ParentHash {
			return p, nil
		}
		current = *s
	}
}

// fetchBlock retries a transient None via pacing.IfNone (the remote
// reporting a gap), paces the dispatch, and surfaces a permanent None as
// a domain error: we never expect get_block(n) to stay absent once n is
// behind the reported head.
func (im *Importer) fetchBlock(ctx context.Context, n uint64) (*chain.Block, error) {
	if err := im.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	b, found, err := pacing.IfNone(ctx, im.chainID, func() (*chain.Block, bool, error) {
		blk, err := im.client.GetBlock(ctx, n)
		if err != nil {
			return nil, false, err
		}
		return blk, blk != nil, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.MissingRemote(string(im.chainID), n)
	}
	return b, nil
}
