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

// Package metrics records per-job-kind timing using go-metrics, the
// same library the teacher pulls in for its own node-level counters.
// There is no exporter wired up here (spec.md's Non-goals exclude a
// metrics surface); this just keeps in-process histograms an operator
// can dump via metrics.Snapshot for ad-hoc debugging.
package metrics

import gometrics "github.com/rcrowley/go-metrics"

var registry = gometrics.NewRegistry()

// Timer returns (creating if absent) the named timer.
func Timer(name string) gometrics.Timer {
	return gometrics.GetOrRegisterTimer(name, registry)
}

// Snapshot returns each registered timer's mean duration in
// milliseconds, keyed by name.
func Snapshot() map[string]float64 {
	out := make(map[string]float64)
	registry.Each(func(name string, metric interface{}) {
		if t, ok := metric.(gometrics.Timer); ok {
			out[name] = t.Mean() / 1e6
		}
	})
	return out
}
