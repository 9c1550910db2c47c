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

package hedera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConsensusSeconds_WithFraction(t *testing.T) {
	assert.Equal(t, uint64(1654000000), parseConsensusSeconds("1654000000.123456789"))
}

func TestParseConsensusSeconds_WholeSecondsOnly(t *testing.T) {
	assert.Equal(t, uint64(1654000000), parseConsensusSeconds("1654000000"))
}
