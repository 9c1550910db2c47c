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

// Package pacing holds the two time budgets that bound request rate per
// chain (block pace, rescan delay) plus the retry primitives used by
// the importer. Keeping the tables in one
// file, rather than scattering magic numbers through every adapter, is
// the spec's own open-question recommendation (spec.md §9).
package pacing

import "github.com/realtps/realtps/chain"

// BlockPace is the minimum spacing between successive get_block calls
// to the same chain. Solana is 0: its client library self-limits.
func BlockPace(id chain.ID) int64 {
	if ms, ok := blockPaceMs[id]; ok {
		return ms
	}
	return defaultBlockPaceMs
}

// RescanDelay is the gap after a completed sync pass before the next
// head-poll, chosen roughly as block-time/2 per chain.
func RescanDelay(id chain.ID) int64 {
	if ms, ok := rescanDelayMs[id]; ok {
		return ms
	}
	return defaultRescanDelayMs
}

const (
	defaultBlockPaceMs  int64 = 500
	defaultRescanDelayMs int64 = 30_000
)

var blockPaceMs = map[chain.ID]int64{
	chain.Solana:    0,
	chain.Arbitrum:  400,
	chain.Bitcoin:   2000,
	chain.Pivx:      2000,
	chain.Elrond:    1000,
	chain.Optimism:  2000,
}

var rescanDelayMs = map[chain.ID]int64{
	chain.Solana:        1_000,
	chain.Polkadot:      7_000,
	chain.Kusama:        7_000,
	chain.Acala:         7_000,
	chain.Karura:        7_000,
	chain.Arbitrum:      5_000,
	chain.Optimism:      15_000,
	chain.Hedera:        10_000,
	chain.Bitcoin:       600_000,
	chain.Pivx:          600_000,
}

const (
	// RetryBaseDelayMs is the per-attempt linear backoff step used by
	// IfErr/IfNone: attempt*RetryBaseDelayMs.
	RetryBaseDelayMs = 500
	// RetryMaxAttempts bounds IfErr/IfNone.
	RetryMaxAttempts = 3

	// JobErrorDelayMs is how long the job runner waits before
	// resubmitting a failed job.
	JobErrorDelayMs = 1_000
	// RecalculateGapMs is the pause between Calculate batches.
	RecalculateGapMs = 5_000
	// PruneGapMs is the pause between Remove batches (24h).
	PruneGapMs = 24 * 60 * 60 * 1000

	// JitterMaxMs bounds the uniform jitter added to every pacing
	// sleep, to avoid synchronization storms across chains.
	JitterMaxMs = 10
)
