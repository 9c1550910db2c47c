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

// Package pruner removes blocks older than the measurement window,
// retaining exactly the boundary block the calculator needs to compute
// a correct delta on its next pass.
package pruner

import (
	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/internal/errs"
	"github.com/realtps/realtps/internal/rlog"
	"github.com/realtps/realtps/storage"
)

var logger = rlog.New("pruner")

const windowSeconds uint64 = 7 * 24 * 60 * 60

// Pruner garbage-collects blocks beyond the trailing window for one
// chain at a time.
type Pruner struct {
	db storage.Db
}

// New builds a Pruner backed by db.
func New(db storage.Db) *Pruner {
	return &Pruner{db: db}
}

// Prune walks back from HighestBlockNumber carrying a past-edge flag
// that flips true the first time a predecessor's timestamp falls below
// the window edge; every block number visited once the flag is set is
// removed. The boundary block itself — the first one found below the
// edge — is retained so the calculator's next delta is still correct.
func (p *Pruner) Prune(id chain.ID) error {
	hPtr, err := p.db.LoadHighestBlockNumber(id)
	if err != nil {
		return errs.Wrap(err, "load highest block number")
	}
	if hPtr == nil {
		logger.Debug("no data for chain, nothing to prune", "chain", id)
		return nil
	}

	latest, err := p.db.LoadBlock(id, *hPtr)
	if err != nil {
		return errs.Wrap(err, "load latest block")
	}
	if latest == nil {
		return errs.Logic("highest block number for chain %s points at missing block %d", id, *hPtr)
	}

	tMin := saturatingSub(latest.Timestamp, windowSeconds)

	var toRemove []uint64
	current := *latest
	pastEdge := false

	for {
		if current.PrevBlockNumber == nil {
			break
		}
		pred, err := p.db.LoadBlock(id, *current.PrevBlockNumber)
		if err != nil {
			return errs.Wrap(err, "load predecessor block")
		}
		if pred == nil {
			break
		}

		if pastEdge {
			toRemove = append(toRemove, pred.BlockNumber)
		} else if pred.Timestamp < tMin {
			pastEdge = true
		}

		current = *pred
	}

	if len(toRemove) == 0 {
		logger.Debug("nothing beyond window", "chain", id)
		return nil
	}

	// The backward walk collected toRemove highest-first, and it is
	// removed in that order. The order is not required for correctness;
	// it only matches the reference implementation's removal order.
	if err := p.db.RemoveBlocks(id, toRemove); err != nil {
		return errs.Wrap(err, "remove blocks")
	}
	logger.Info("pruned blocks", "chain", id, "count", len(toRemove))
	return nil
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
