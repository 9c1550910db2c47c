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

// Package storage defines the Db capability every other component
// addresses the on-disk block graph through, and a filesystem-backed
// implementation.
package storage

import "github.com/realtps/realtps/chain"

// Db is the capability set every component other than the storage
// layer itself uses to read and write durable state. Every successful
// store is atomic against concurrent readers and process crash.
// Absence of a record is reported as (nil, nil), never an error.
type Db interface {
	StoreBlock(b chain.Block) error
	LoadBlock(c chain.ID, n uint64) (*chain.Block, error)

	StoreHighestBlockNumber(c chain.ID, n uint64) error
	LoadHighestBlockNumber(c chain.ID) (*uint64, error)

	StoreTps(c chain.ID, tps float64) error
	LoadTps(c chain.ID) (*float64, error)

	RemoveBlocks(c chain.ID, ns []uint64) error

	StoreCalculationLog(c chain.ID, log chain.CalculationLog) error
	LoadCalculationLog(c chain.ID) (*chain.CalculationLog, error)
}
