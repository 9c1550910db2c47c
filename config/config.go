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

// Package config loads the per-chain RPC endpoint table from a TOML
// file, the same decoding discipline the teacher uses for its own
// node configuration (cmd/utils/nodecmd/dumpconfigcmd.go): a
// naoina/toml Config with field-name-is-key-name normalization and a
// MissingField hook that turns unknown keys into hard errors instead
// of silently ignoring them.
package config

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/naoina/toml"
	"github.com/realtps/realtps/chain"
	"github.com/realtps/realtps/client"
	"github.com/realtps/realtps/internal/errs"
)

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see %s#%s", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// fileConfig mirrors the on-disk TOML shape: a flat table of chain name
// to endpoint string. Algorand's dual-endpoint requirement (node +
// indexer) is expressed in-band as "primary;secondary", split at load
// time rather than nesting the TOML, which keeps every chain's entry a
// single scalar.
type fileConfig struct {
	Chains map[string]string
}

// Config is the parsed, validated RPC configuration: one client.Config
// per chain named in the file.
type Config struct {
	Chains map[chain.ID]client.Config
}

// Load reads and validates the RPC configuration at path. Every entry
// must name a recognized chain.ID; the file must parse cleanly under
// tomlSettings' strict field rules.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Config("open rpc config %s: %v", path, err)
	}
	defer f.Close()

	var fc fileConfig
	if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&fc); err != nil {
		if _, ok := err.(*toml.LineError); ok {
			return nil, errs.Config("%s: %v", path, err)
		}
		return nil, errs.Config("decode rpc config %s: %v", path, err)
	}

	cfg := &Config{Chains: make(map[chain.ID]client.Config, len(fc.Chains))}
	for name, endpoint := range fc.Chains {
		id, err := chain.Parse(name)
		if err != nil {
			return nil, errs.Config("rpc config %s: %v", path, err)
		}
		cfg.Chains[id] = parseEndpoint(endpoint)
	}
	return cfg, nil
}

// parseEndpoint splits "primary;secondary" into a client.Config.
// Hedera's adapter is the only one that reads the second field; the
// Algorand adapter polls algod at Primary alone and ignores an indexer
// URL given there.
func parseEndpoint(endpoint string) client.Config {
	parts := strings.SplitN(endpoint, ";", 2)
	c := client.Config{Primary: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		c.Secondary = strings.TrimSpace(parts[1])
	}
	return c
}

// For looks up the configured client.Config for id, returning
// errs.Config if the chain was not present in the loaded file.
func (c *Config) For(id chain.ID) (client.Config, error) {
	cfg, ok := c.Chains[id]
	if !ok {
		return client.Config{}, errs.Config("no rpc config entry for chain %s", id)
	}
	return cfg, nil
}

// IDs returns every chain.ID configured in the file, in the package's
// canonical order, so callers can build a deterministic job seed list.
func (c *Config) IDs() []chain.ID {
	ids := make([]chain.ID, 0, len(c.Chains))
	for _, id := range chain.All() {
		if _, ok := c.Chains[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
