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

// Package errs classifies failures into a taxonomy: transient network
// faults, missing remote data, storage faults, logic (invariant)
// violations, and fatal configuration errors. ClassOf reports an
// error's class; the retry helpers and the job runner do not branch on
// it, they retry every error alike. Built on github.com/pkg/errors so
// call sites can still Wrap/Cause through these types.
package errs

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Class identifies which bucket of the error taxonomy an error belongs
// to, so a caller can read the bucket via ClassOf without a type switch
// at every call site.
type Class string

const (
	ClassTransientNetwork Class = "transient-network"
	ClassMissingRemote    Class = "missing-remote-data"
	ClassStorage          Class = "storage"
	ClassLogic            Class = "logic"
	ClassConfig           Class = "config"
)

// Classified wraps an underlying error with its taxonomy class.
type Classified struct {
	class Class
	err   error
}

func (c *Classified) Error() string { return c.err.Error() }
func (c *Classified) Unwrap() error { return c.err }
func (c *Classified) Class() Class  { return c.class }

func newClassified(class Class, err error) *Classified {
	return &Classified{class: class, err: err}
}

// TransientNetwork wraps a timeout, 5xx, malformed response, or rate
// limit error from a chain adapter. Attempted up to 3 times in all by
// pacing.IfErr.
func TransientNetwork(err error) error {
	if err == nil {
		return nil
	}
	return newClassified(ClassTransientNetwork, err)
}

// TransientNetworkf formats a new transient-network error.
func TransientNetworkf(format string, args ...interface{}) error {
	return newClassified(ClassTransientNetwork, errors.Errorf(format, args...))
}

// MissingRemote marks a get_block(n) = None result that has exhausted
// pacing.IfNone and must now propagate as a domain error.
func MissingRemote(chain string, n uint64) error {
	return newClassified(ClassMissingRemote, errors.Errorf("get block returned None for chain %s at block %d", chain, n))
}

// Storage wraps any I/O failure from the storage layer. Surfaces
// identically to TransientNetwork to callers: caller-agnostic retry.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return newClassified(ClassStorage, err)
}

// Logic marks an invariant violation: a missing predecessor on a
// non-genesis block, an arithmetic overflow, a hash mismatch on the
// first-import pair. These are the only true "assertion failure" sites;
// everything else flows through the other classes.
func Logic(format string, args ...interface{}) error {
	return newClassified(ClassLogic, errors.Errorf(format, args...))
}

// Config marks a fatal startup error: missing RPC URL, unparseable
// config, unknown chain name. The caller exits non-zero before the job
// runner starts.
func Config(format string, args ...interface{}) error {
	return newClassified(ClassConfig, errors.Errorf(format, args...))
}

// ClassOf extracts the taxonomy class of err, defaulting to
// ClassTransientNetwork for unclassified errors (the safe default: retry
// rather than give up).
func ClassOf(err error) Class {
	var c *Classified
	if stderrors.As(err, &c) {
		return c.Class()
	}
	return ClassTransientNetwork
}

// Wrap adds a message to err while preserving its Class via Unwrap.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}
