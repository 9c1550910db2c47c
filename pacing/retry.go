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
	"time"

	"github.com/realtps/realtps/chain"
)

// IfErr invokes f, retrying up to RetryMaxAttempts-1 additional times
// with linear backoff (attempt*RetryBaseDelayMs) whenever it returns an
// error. Logs each retry and returns the last error if every attempt
// fails.
func IfErr[T any](ctx context.Context, id chain.ID, f func() (T, error)) (T, error) {
	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= RetryMaxAttempts; attempt++ {
		result, err = f()
		if err == nil {
			return result, nil
		}
		if attempt == RetryMaxAttempts {
			break
		}
		delay := time.Duration(int64(attempt)*RetryBaseDelayMs) * time.Millisecond
		logger.Warn("retrying after error", "chain", id, "attempt", attempt, "delay", delay, "err", err)
		if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
			return result, sleepErr
		}
	}
	return result, err
}

// IfNone invokes f, retrying up to RetryMaxAttempts-1 additional times
// with the same linear backoff whenever it returns found == false with
// a nil error (the "None" case). Unlike IfErr, exhaustion returns (zero, false, nil)
// rather than an error: a permanent None is a valid domain outcome the
// caller decides how to handle.
func IfNone[T any](ctx context.Context, id chain.ID, f func() (T, bool, error)) (T, bool, error) {
	var (
		result T
		found  bool
		err    error
	)
	for attempt := 1; attempt <= RetryMaxAttempts; attempt++ {
		result, found, err = f()
		if err != nil {
			return result, false, err
		}
		if found {
			return result, true, nil
		}
		if attempt == RetryMaxAttempts {
			break
		}
		delay := time.Duration(int64(attempt)*RetryBaseDelayMs) * time.Millisecond
		logger.Warn("retrying after none", "chain", id, "attempt", attempt, "delay", delay)
		if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
			return result, false, sleepErr
		}
	}
	return result, false, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
