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

package chain

// Block is the canonical, family-independent record every adapter must
// produce. prev_block_number is not always block_number-1: Solana's
// "block number" is really a slot, and slots may be empty.
type Block struct {
	Chain           ID     `json:"chain"`
	BlockNumber     uint64 `json:"block_number"`
	PrevBlockNumber *uint64 `json:"prev_block_number,omitempty"`
	Timestamp       uint64 `json:"timestamp"`
	NumTxs          uint64 `json:"num_txs"`
	Hash            string `json:"hash"`
	ParentHash      string `json:"parent_hash"`
}

// CalculationLog records the timing envelope of the most recent TPS
// calculation for a chain, used by the (out-of-scope) web layer to flag
// stale data.
type CalculationLog struct {
	CalculatingStart     int64  `json:"calculating_start"`
	CalculatingEnd       int64  `json:"calculating_end"`
	NewestBlockTimestamp uint64 `json:"newest_block_timestamp"`
	OldestBlockTimestamp uint64 `json:"oldest_block_timestamp"`
}
