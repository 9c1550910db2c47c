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

package jobs

import (
	"context"
	"math/rand"

	"github.com/realtps/realtps/calculator"
	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/importer"
	"github.com/realtps/realtps/pacing"
	"github.com/realtps/realtps/pruner"
)

// ImportJob runs one Importer.Sync pass for a single chain and
// resubmits itself after RescanDelay(chain), keeping that chain's
// syncing indefinitely live. There is exactly one ImportJob per
// configured chain at any time, which is what keeps a chain's stored
// block writes totally ordered.
type ImportJob struct {
	chainID chain.ID
	im      *importer.Importer
}

// NewImportJob builds an ImportJob for id.
func NewImportJob(id chain.ID, im *importer.Importer) *ImportJob {
	return &ImportJob{chainID: id, im: im}
}

// Name satisfies Job.
func (j *ImportJob) Name() string { return "import:" + string(j.chainID) }

// Run satisfies Job: one sync pass, then schedule the next one after
// this chain's configured rescan delay.
func (j *ImportJob) Run(ctx context.Context) ([]Job, error) {
	if err := j.im.Sync(ctx); err != nil {
		return nil, err
	}
	if err := delayWithJitter(ctx, pacing.RescanDelay(j.chainID)); err != nil {
		return nil, err
	}
	return []Job{j}, nil
}

// CalculateJob recomputes TPS for every configured chain concurrently,
// then resubmits itself after RecalculateGapMs. A single failing chain
// is logged and excluded from that pass's result, not treated as the
// whole job failing — the next pass will retry it.
type CalculateJob struct {
	ids  []chain.ID
	calc *calculator.Calculator
}

// NewCalculateJob builds a CalculateJob over ids.
func NewCalculateJob(ids []chain.ID, calc *calculator.Calculator) *CalculateJob {
	return &CalculateJob{ids: ids, calc: calc}
}

// Name satisfies Job.
func (j *CalculateJob) Name() string { return "calculate" }

// Run satisfies Job.
func (j *CalculateJob) Run(ctx context.Context) ([]Job, error) {
	_ = runConcurrently(j.ids, func(id chain.ID) error {
		return j.calc.Calculate(id)
	})
	if err := delayWithJitter(ctx, pacing.RecalculateGapMs); err != nil {
		return nil, err
	}
	return []Job{j}, nil
}

// RemoveJob prunes every configured chain sequentially, in a shuffled
// order each pass (spec.md's prune job has no ordering requirement
// across chains; shuffling avoids always hammering the same chain
// first when the process restarts repeatedly). It resubmits itself
// after PruneGapMs.
type RemoveJob struct {
	ids   []chain.ID
	prune *pruner.Pruner
}

// NewRemoveJob builds a RemoveJob over ids.
func NewRemoveJob(ids []chain.ID, p *pruner.Pruner) *RemoveJob {
	return &RemoveJob{ids: ids, prune: p}
}

// Name satisfies Job.
func (j *RemoveJob) Name() string { return "remove" }

// Run satisfies Job.
func (j *RemoveJob) Run(ctx context.Context) ([]Job, error) {
	order := make([]int, len(j.ids))
	for i := range order {
		order[i] = i
	}
	rand.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

	for _, i := range order {
		id := j.ids[i]
		if err := j.prune.Prune(id); err != nil {
			logger.Error("prune failed", "chain", id, "err", err)
		}
	}

	if err := delayWithJitter(ctx, pacing.PruneGapMs); err != nil {
		return nil, err
	}
	return []Job{j}, nil
}
