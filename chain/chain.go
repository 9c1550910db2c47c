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

// Package chain defines the closed set of chain identifiers the importer
// knows about and the protocol family each one belongs to.
package chain

import "fmt"

// ID names one observed blockchain. The set is closed; unlisted names
// are rejected at config-load time.
type ID string

const (
	Ethereum         ID = "ethereum"
	Polygon          ID = "polygon"
	BSC              ID = "bsc"
	Arbitrum         ID = "arbitrum"
	Optimism         ID = "optimism"
	Avalanche        ID = "avalanche"
	Fantom           ID = "fantom"
	Harmony          ID = "harmony"
	Celo             ID = "celo"
	Cronos           ID = "cronos"
	Moonriver        ID = "moonriver"
	Moonbeam         ID = "moonbeam"
	KuCoin           ID = "kucoin"
	OKEx             ID = "okex"
	Heco             ID = "heco"
	Rootstock        ID = "rootstock"
	XDai             ID = "xdai"
	Astar            ID = "astar"
	Bifrost          ID = "bifrost"
	Solana           ID = "solana"
	CosmosHub        ID = "cosmoshub"
	Osmosis          ID = "osmosis"
	SecretNetwork    ID = "secretnetwork"
	Terra            ID = "terra"
	Near             ID = "near"
	Polkadot         ID = "polkadot"
	Kusama           ID = "kusama"
	Acala            ID = "acala"
	Karura           ID = "karura"
	Stellar          ID = "stellar"
	Algorand         ID = "algorand"
	Hedera           ID = "hedera"
	Elrond           ID = "elrond"
	InternetComputer ID = "internetcomputer"
	Bitcoin          ID = "bitcoin"
	Pivx             ID = "pivx"
)

// Family is the protocol template whose adapter implementation handles a
// chain. Selecting on Family, rather than growing a per-chain switch
// statement, is what lets client.New dispatch to one adapter constructor
// per family instead of one per chain.
type Family string

const (
	FamilyEthers    Family = "ethers"
	FamilyTendermint Family = "tendermint"
	FamilySubstrate Family = "substrate"
	FamilySolana    Family = "solana"
	FamilyNear      Family = "near"
	FamilyStellar   Family = "stellar"
	FamilyAlgorand  Family = "algorand"
	FamilyHedera    Family = "hedera"
	FamilyElrond    Family = "elrond"
	FamilyICP       Family = "icp"
	FamilyElectrum  Family = "electrum"
)

var families = map[ID]Family{
	Ethereum:  FamilyEthers,
	Polygon:   FamilyEthers,
	BSC:       FamilyEthers,
	Arbitrum:  FamilyEthers,
	Optimism:  FamilyEthers,
	Avalanche: FamilyEthers,
	Fantom:    FamilyEthers,
	Harmony:   FamilyEthers,
	Celo:      FamilyEthers,
	Cronos:    FamilyEthers,
	Moonriver: FamilyEthers,
	Moonbeam:  FamilyEthers,
	KuCoin:    FamilyEthers,
	OKEx:      FamilyEthers,
	Heco:      FamilyEthers,
	Rootstock: FamilyEthers,
	XDai:      FamilyEthers,
	Astar:     FamilyEthers,
	Bifrost:   FamilyEthers,

	Solana: FamilySolana,

	CosmosHub:     FamilyTendermint,
	Osmosis:       FamilyTendermint,
	SecretNetwork: FamilyTendermint,
	Terra:         FamilyTendermint,

	Near: FamilyNear,

	Polkadot: FamilySubstrate,
	Kusama:   FamilySubstrate,
	Acala:    FamilySubstrate,
	Karura:   FamilySubstrate,

	Stellar:          FamilyStellar,
	Algorand:         FamilyAlgorand,
	Hedera:           FamilyHedera,
	Elrond:           FamilyElrond,
	InternetComputer: FamilyICP,
	Bitcoin:          FamilyElectrum,
	Pivx:             FamilyElectrum,
}

// FamilyOf reports the protocol family backing chain id. The second
// return is false for any id outside the closed set above.
func FamilyOf(id ID) (Family, bool) {
	f, ok := families[id]
	return f, ok
}

// All returns every chain id in the closed set, configured or not, in a
// stable order suitable for seeding the job runner deterministically.
func All() []ID {
	ids := make([]ID, 0, len(families))
	for _, id := range allOrdered {
		ids = append(ids, id)
	}
	return ids
}

// allOrdered fixes iteration order: map iteration in Go is randomized,
// and a stable seed order makes job-runner startup logs reproducible.
var allOrdered = []ID{
	Ethereum, Polygon, BSC, Arbitrum, Optimism, Avalanche, Fantom, Harmony,
	Celo, Cronos, Moonriver, Moonbeam, KuCoin, OKEx, Heco, Rootstock, XDai,
	Astar, Bifrost, Solana, CosmosHub, Osmosis, SecretNetwork, Terra, Near,
	Polkadot, Kusama, Acala, Karura, Stellar, Algorand, Hedera, Elrond,
	InternetComputer, Bitcoin, Pivx,
}

// Valid reports whether id is a member of the closed chain set.
func Valid(id ID) bool {
	_, ok := families[id]
	return ok
}

// Parse validates a lowercase chain name from config or CLI input.
func Parse(s string) (ID, error) {
	id := ID(s)
	if !Valid(id) {
		return "", fmt.Errorf("unknown chain %q", s)
	}
	return id, nil
}
