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

// Package jobs is the scheduler that owns every long-running per-chain
// task and resubmits a successor of the same kind on completion,
// forever. Modeled on the teacher's channel-driven worker loop
// (work/worker.go, datasync/chaindatafetcher's handleRequest goroutines)
// rather than a cron-style external scheduler: there is no external
// dependency here the pack offers that fits better than a plain
// goroutine + channel fan-in, so the scheduling loop itself is plain
// goroutines and channels by design (see DESIGN.md); errgroup and
// go-metrics are used only for the calculate fan-out and job timing.
package jobs

import (
	"context"
	"math/rand"
	"time"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/internal/metrics"
	"github.com/realtps/realtps/internal/rlog"
	"github.com/realtps/realtps/pacing"
	"golang.org/x/sync/errgroup"
)

var logger = rlog.New("jobs")

// Job is one unit of schedulable work. Run executes it once; on return
// it reports the successors to resubmit (possibly none, if the process
// is shutting down — not used in steady state, since the spec's jobs
// never terminate).
type Job interface {
	Name() string
	Run(ctx context.Context) ([]Job, error)
}

// Runner owns the unordered pool of in-flight jobs. Each job, on
// completion, is asked for its successors, which are submitted back
// into the same pool — an indefinite steady state with no global
// backoff ceiling (per-call retry already covers transient faults).
type Runner struct {
	jobs chan Job
}

// NewRunner builds a runner with room for pending jobs; cap is generous
// headroom, not a concurrency limit — every queued job gets its own
// goroutine.
func NewRunner(cap int) *Runner {
	return &Runner{
		jobs: make(chan Job, cap),
	}
}

// Seed enqueues the initial set of jobs before Run is called.
func (r *Runner) Seed(js ...Job) {
	for _, j := range js {
		r.jobs <- j
	}
}

// Run drains the job channel forever, spawning one goroutine per job
// and resubmitting its successors (or, on failure, the same job again
// after JobErrorDelayMs) until ctx is canceled, when it returns
// ctx.Err(). It returns nil if the job channel is closed, an anomaly
// condition in normal operation.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-r.jobs:
			if !ok {
				return nil
			}
			go r.execute(ctx, j)
		}
	}
}

func (r *Runner) execute(ctx context.Context, j Job) {
	timer := metrics.Timer(j.Name())
	start := time.Now()
	successors, err := j.Run(ctx)
	timer.Update(time.Since(start))
	if err != nil {
		logger.Error("job failed, will retry", "job", j.Name(), "err", err)
		go func() {
			select {
			case <-time.After(time.Duration(pacing.JobErrorDelayMs) * time.Millisecond):
			case <-ctx.Done():
				return
			}
			select {
			case r.jobs <- j:
			case <-ctx.Done():
			}
		}()
		return
	}
	for _, s := range successors {
		select {
		case r.jobs <- s:
		case <-ctx.Done():
			return
		}
	}
}

// delayWithJitter sleeps baseMs plus a small uniform jitter, honoring
// ctx cancellation.
func delayWithJitter(ctx context.Context, baseMs int64) error {
	jitter := time.Duration(rand.Intn(100)) * time.Millisecond
	d := time.Duration(baseMs)*time.Millisecond + jitter
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runConcurrently runs each chain's fn via an errgroup, matching the
// calculator's "may run concurrently" allowance; the first error cancels
// the group's context for the remaining members only if the errgroup is
// constructed with WithContext — here we deliberately run every
// member to completion instead, logging each member's error and
// returning nil, since one chain's calculation failing must never abort
// another chain's.
func runConcurrently(ids []chain.ID, fn func(chain.ID) error) error {
	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := fn(id); err != nil {
				logger.Error("per-chain task failed", "chain", id, "err", err)
			}
			return nil
		})
	}
	return g.Wait()
}
