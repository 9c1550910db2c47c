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

// Package client defines the capability every chain adapter exposes to
// the importer, independent of the chain's wire protocol, plus the
// family-keyed constructor dispatch.
package client

import (
	"context"

	"github.com/realtps/realtps/chain"
)

// Client is the capability set an adapter exposes. client_version is
// informational only; get_block reports (nil, nil) for a gap or
// not-yet-produced block, reserving error for true transport failures.
//
//go:generate mockgen -destination=./mocks/client_mock.go -package=mocks github.com/realtps/realtps/client Client
type Client interface {
	ClientVersion(ctx context.Context) (string, error)
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
	GetBlock(ctx context.Context, n uint64) (*chain.Block, error)
}

// Config carries the endpoint(s) configured for one chain. A
// "url1;url2" entry is split into Primary and Secondary. Hedera reads
// Secondary as the network name for its SDK client; Algorand's entry may
// carry an indexer URL there, which its adapter does not read; every
// other family uses Primary alone.
type Config struct {
	Primary   string
	Secondary string
}

// Constructor builds the Client for one chain given its endpoint
// config. Each family package registers one.
type Constructor func(id chain.ID, cfg Config) (Client, error)

var registry = map[chain.Family]Constructor{}

// Register associates a family with the constructor its adapter package
// provides. Adapter packages call this from an init func, the same
// plugin-registration idiom the teacher uses for consensus engines
// (see consensus/istanbul/backend registering itself with consensus.Engine).
func Register(f chain.Family, ctor Constructor) {
	registry[f] = ctor
}

// New dispatches to the adapter constructor registered for id's family.
func New(id chain.ID, cfg Config) (Client, error) {
	family, ok := chain.FamilyOf(id)
	if !ok {
		return nil, errUnknownChain(id)
	}
	ctor, ok := registry[family]
	if !ok {
		return nil, errUnsupportedFamily(family)
	}
	return ctor(id, cfg)
}
