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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtps/realtps/chain"
)

func writeConfig(t *testing.T, contents string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "rpc_config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[Chains]
ethereum = "https://eth.example.com"
algorand = "token123@https://algod.example.com;https://indexer.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	ethCfg, err := cfg.For(chain.Ethereum)
	require.NoError(t, err)
	assert.Equal(t, "https://eth.example.com", ethCfg.Primary)
	assert.Empty(t, ethCfg.Secondary)

	algoCfg, err := cfg.For(chain.Algorand)
	require.NoError(t, err)
	assert.Equal(t, "token123@https://algod.example.com", algoCfg.Primary)
	assert.Equal(t, "https://indexer.example.com", algoCfg.Secondary)

	ids := cfg.IDs()
	require.Len(t, ids, 2)
	assert.Equal(t, chain.Ethereum, ids[0])
	assert.Equal(t, chain.Algorand, ids[1])
}

func TestLoad_UnknownChainNameFails(t *testing.T) {
	path := writeConfig(t, `
[Chains]
not_a_real_chain = "https://example.com"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	path := writeConfig(t, `
[Chains]
ethereum = "https://eth.example.com"

[Extra]
foo = "bar"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestConfig_ForUnconfiguredChainFails(t *testing.T) {
	path := writeConfig(t, `
[Chains]
ethereum = "https://eth.example.com"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = cfg.For(chain.Polygon)
	assert.Error(t, err)
}

func TestParseEndpoint_TrimsWhitespace(t *testing.T) {
	c := parseEndpoint(" https://a.example.com ;  https://b.example.com ")
	assert.Equal(t, "https://a.example.com", c.Primary)
	assert.Equal(t, "https://b.example.com", c.Secondary)
}

func TestParseEndpoint_NoSecondary(t *testing.T) {
	c := parseEndpoint("https://a.example.com")
	assert.Equal(t, "https://a.example.com", c.Primary)
	assert.Empty(t, c.Secondary)
}
