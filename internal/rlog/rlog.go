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

// Package rlog is the process-wide log sink. It is initialized once in
// main and handed out as module-scoped Logger values, mirroring the
// teacher's log.NewModuleLogger/logger.Info("msg", "k", v, ...) idiom
// without pulling in a bespoke formatter: the key-value pairs are
// flattened into zap.Sugar fields.
package rlog

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base   *zap.SugaredLogger
	exitFn = func() { os.Exit(1) }
)

func init() {
	Init(false)
}

// Init (re)configures the global sink. verbose enables debug-level
// output; production deployments pass false.
func Init(verbose bool) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "module",
		MessageKey:     "msg",
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if !color.NoColor {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(colorable.NewColorableStdout()),
		level,
	)
	base = zap.New(core).Sugar()
}

// Logger is a module-scoped handle. Every method accepts a message and
// an even-length list of alternating key, value pairs, same calling
// convention as the teacher's logger.Info("msg", "k", v).
type Logger struct {
	module string
}

// New returns a logger tagged with module, used as the Name field of
// every record it emits.
func New(module string) Logger {
	return Logger{module: module}
}

func (l Logger) with(ctx []interface{}) *zap.SugaredLogger {
	s := base.Named(l.module)
	if len(ctx) > 0 {
		s = s.With(ctx...)
	}
	return s
}

func (l Logger) Trace(msg string, ctx ...interface{}) { l.with(ctx).Debug(msg) }
func (l Logger) Debug(msg string, ctx ...interface{}) { l.with(ctx).Debug(msg) }
func (l Logger) Info(msg string, ctx ...interface{})  { l.with(ctx).Info(msg) }
func (l Logger) Warn(msg string, ctx ...interface{})  { l.with(ctx).Warn(msg) }
func (l Logger) Error(msg string, ctx ...interface{}) { l.with(ctx).Error(msg) }

// Crit logs at error level and then terminates the process. Reserved
// for configuration failures discovered before the job runner starts;
// never called once the scheduler is live (spec: no error aborts the
// whole process after startup).
func (l Logger) Crit(msg string, ctx ...interface{}) {
	l.with(ctx).Error(msg)
	exitFn()
}

// SetExitFunc overrides the function Crit calls, so tests can assert a
// Crit happened without killing the test binary.
func SetExitFunc(f func()) { exitFn = f }

// Fields is a convenience for building a context slice without
// miscounting arguments, e.g. rlog.Fields("chain", id, "n", 10).
func Fields(kv ...interface{}) []interface{} { return kv }
