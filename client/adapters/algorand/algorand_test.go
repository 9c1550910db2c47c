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

package algorand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitToken_WithToken(t *testing.T) {
	token, url := splitToken("abc123@https://algod.example.com")
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "https://algod.example.com", url)
}

func TestSplitToken_NoToken(t *testing.T) {
	token, url := splitToken("https://algod.example.com")
	assert.Empty(t, token)
	assert.Equal(t, "https://algod.example.com", url)
}
