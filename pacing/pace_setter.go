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

package pacing

import (
	"context"
	"math/rand"
	"time"

	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/internal/rlog"
	"golang.org/x/time/rate"
)

var logger = rlog.New("pacing")

// PaceSetter records the last dispatch time for one chain's get_block
// calls and sleeps out the remainder of its configured pace before
// returning, so the importer's backward walk never outruns the
// configured request budget. A chain with pace 0 (Solana) has no
// limiter and waits only for the jitter: its own client library
// rate-limits internally.
type PaceSetter struct {
	chainID chain.ID
	pace    time.Duration
	limiter *rate.Limiter
}

// NewPaceSetter builds a pace setter for id using the configured
// per-chain block pace.
func NewPaceSetter(id chain.ID) *PaceSetter {
	ms := BlockPace(id)
	ps := &PaceSetter{chainID: id, pace: time.Duration(ms) * time.Millisecond}
	if ms > 0 {
		// One token per pace interval, burst of 1: successive Wait
		// calls can never run closer together than pace, regardless of
		// how much work happened between them.
		ps.limiter = rate.NewLimiter(rate.Every(ps.pace), 1)
	}
	return ps
}

// Wait blocks until the next get_block dispatch is allowed, adding a
// small uniform jitter so many chains paced identically don't all wake
// in lockstep.
func (p *PaceSetter) Wait(ctx context.Context) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	jitter := time.Duration(rand.Intn(JitterMaxMs)) * time.Millisecond
	if jitter == 0 {
		return nil
	}
	select {
	case <-time.After(jitter):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
