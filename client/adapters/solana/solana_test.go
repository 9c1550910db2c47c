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

package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func mustKey(t *testing.T, s string) solana.PublicKey {
	t.Helper()
	k, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		// voteProgram is a well-formed base58 address; any other key used
		// only to fill out the account list need not resolve meaningfully.
		return solana.PublicKey{}
	}
	return k
}

func TestIsVoteOnly_AllVoteInstructions(t *testing.T) {
	vote := mustKey(t, voteProgram)
	other := solana.PublicKey{1, 2, 3}

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{other, vote},
			Instructions: []solana.CompiledInstruction{
				{ProgramIDIndex: 1},
				{ProgramIDIndex: 1},
			},
		},
	}
	assert.True(t, isVoteOnly(tx))
}

func TestIsVoteOnly_MixedInstructionsIsNotVoteOnly(t *testing.T) {
	vote := mustKey(t, voteProgram)
	other := solana.PublicKey{1, 2, 3}

	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys: []solana.PublicKey{other, vote},
			Instructions: []solana.CompiledInstruction{
				{ProgramIDIndex: 1},
				{ProgramIDIndex: 0},
			},
		},
	}
	assert.False(t, isVoteOnly(tx))
}

func TestIsVoteOnly_NoInstructionsIsNotVoteOnly(t *testing.T) {
	tx := &solana.Transaction{
		Message: solana.Message{
			AccountKeys:  []solana.PublicKey{},
			Instructions: []solana.CompiledInstruction{},
		},
	}
	assert.False(t, isVoteOnly(tx))
}
