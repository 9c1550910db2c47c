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

package pacing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realtps/realtps/chain"
)

func TestIfErr_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	result, err := IfErr(context.Background(), chain.Ethereum, func() (int, error) {
		attempts++
		if attempts < RetryMaxAttempts {
			return 0, errors.New("transient")
		}
		return 7, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, result)
	assert.Equal(t, RetryMaxAttempts, attempts)
}

func TestIfErr_ExhaustsAndReturnsLastError(t *testing.T) {
	attempts := 0
	_, err := IfErr(context.Background(), chain.Ethereum, func() (int, error) {
		attempts++
		return 0, errors.New("always fails")
	})
	assert.Error(t, err)
	assert.Equal(t, RetryMaxAttempts, attempts)
}

func TestIfNone_SucceedsAfterNones(t *testing.T) {
	attempts := 0
	result, found, err := IfNone(context.Background(), chain.Ethereum, func() (int, bool, error) {
		attempts++
		if attempts < RetryMaxAttempts {
			return 0, false, nil
		}
		return 9, true, nil
	})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 9, result)
}

func TestIfNone_ExhaustsToNotFound(t *testing.T) {
	_, found, err := IfNone(context.Background(), chain.Ethereum, func() (int, bool, error) {
		return 0, false, nil
	})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestIfNone_ErrorPropagatesImmediately(t *testing.T) {
	attempts := 0
	_, found, err := IfNone(context.Background(), chain.Ethereum, func() (int, bool, error) {
		attempts++
		return 0, false, errors.New("boom")
	})
	assert.Error(t, err)
	assert.False(t, found)
	assert.Equal(t, 1, attempts)
}
