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

// Package calculator derives the trailing-window TPS figure for a chain
// from the persisted block graph alone; it never touches the network.
package calculator

import (
	"math"
	"time"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/internal/errs"
	"github.com/realtps/realtps/internal/rlog"
	"github.com/realtps/realtps/storage"
)

var logger = rlog.New("calculator")

// windowSeconds is the trailing window TPS is averaged over: one week.
const windowSeconds uint64 = 7 * 24 * 60 * 60

// Calculator computes and persists TPS for one chain at a time.
type Calculator struct {
	db storage.Db
}

// New builds a Calculator backed by db.
func New(db storage.Db) *Calculator {
	return &Calculator{db: db}
}

// Calculate runs one pass for id: load HighestBlockNumber, walk
// backward accumulating num_txs over the trailing window, persist tps
// and a CalculationLog. Returns an error if no data exists for id yet.
func (c *Calculator) Calculate(id chain.ID) error {
	start := time.Now()

	hPtr, err := c.db.LoadHighestBlockNumber(id)
	if err != nil {
		return errs.Wrap(err, "load highest block number")
	}
	if hPtr == nil {
		return errs.Logic("no data for chain %s", id)
	}

	latest, err := c.db.LoadBlock(id, *hPtr)
	if err != nil {
		return errs.Wrap(err, "load latest block")
	}
	if latest == nil {
		return errs.Logic("highest block number for chain %s points at missing block %d", id, *hPtr)
	}

	tLatest := latest.Timestamp
	tMin := saturatingSub(tLatest, windowSeconds)

	current := *latest
	var numTxs uint64
	var tInit uint64

	for {
		if current.PrevBlockNumber == nil {
			tInit = current.Timestamp
			break
		}

		pred, err := c.db.LoadBlock(id, *current.PrevBlockNumber)
		if err != nil {
			return errs.Wrap(err, "load predecessor block")
		}
		if pred == nil {
			tInit = current.Timestamp
			break
		}

		numTxs += current.NumTxs

		if pred.Timestamp <= tMin || pred.BlockNumber == 0 {
			tInit = pred.Timestamp
			break
		}

		current = *pred
	}

	if tInit > tLatest {
		logger.Warn("non-monotonic timestamps", "chain", id, "newest", tLatest, "oldest", tInit)
	}

	tps := computeTps(tInit, tLatest, numTxs)

	end := time.Now()
	logEntry := chain.CalculationLog{
		CalculatingStart:     start.Unix(),
		CalculatingEnd:       end.Unix(),
		NewestBlockTimestamp: tLatest,
		OldestBlockTimestamp: tInit,
	}

	if err := c.db.StoreTps(id, tps); err != nil {
		return errs.Wrap(err, "store tps")
	}
	if err := c.db.StoreCalculationLog(id, logEntry); err != nil {
		return errs.Wrap(err, "store calculation log")
	}

	logger.Info("calculation complete", "chain", id, "tps", tps, "newest", tLatest, "oldest", tInit)
	return nil
}

// saturatingSub computes a-b without underflowing uint64.
func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// computeTps implements spec.md §4.6 step 5: zero on a zero or
// nonsensical interval, or on an overflow of the u32 range either input
// would have occupied in the reference implementation.
func computeTps(tInit, tLatest, numTxs uint64) float64 {
	delta := saturatingSub(tLatest, tInit)
	if delta == 0 {
		return 0
	}
	if delta > math.MaxUint32 || numTxs > math.MaxUint32 {
		return 0
	}
	tps := float64(numTxs) / float64(delta)
	if math.IsNaN(tps) || math.IsInf(tps, 0) {
		return 0
	}
	return tps
}
