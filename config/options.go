// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the functional-options Options struct threaded
// through the normalizer, parser and analysis packages, grounded on
// parser/options.go's Option pattern, generalized from parser-only knobs
// to the full set of analysis-run settings.
package config

import "fmt"

// Options bundles every knob an analysis run accepts.
type Options struct {
	StripUseless        bool
	EntryPoints          []string
	ParallelParse        bool
	RecursionLimit       int
	LoopIterationLimit   int
	PackratCacheSize     int
	LogLevel             int
}

// Option mutates an Options value; invalid settings return an error
// instead of panicking so a malformed CLI flag surfaces cleanly.
type Option func(*Options) error

// Default returns the baseline configuration: useless-code stripping on,
// auto-detected entry points, serial parsing, a recursion bound of 500,
// a loop-iteration bound of 10000, a packrat cache capped at 4096
// entries, and logging at level 0.
func Default() *Options {
	return &Options{
		StripUseless:       true,
		ParallelParse:      false,
		RecursionLimit:     500,
		LoopIterationLimit: 10000,
		PackratCacheSize:   4096,
		LogLevel:           0,
	}
}

// New builds an Options from Default with opts applied in order.
func New(opts ...Option) (*Options, error) {
	o := Default()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithStripUseless toggles the useless-code stripping normalizer pass.
func WithStripUseless(strip bool) Option {
	return func(o *Options) error {
		o.StripUseless = strip
		return nil
	}
}

// WithEntryPoints overrides auto-detected entry points (AutoOpen,
// Document_Open, Workbook_Open, and so on) with an explicit list.
func WithEntryPoints(names ...string) Option {
	return func(o *Options) error {
		o.EntryPoints = append([]string(nil), names...)
		return nil
	}
}

// WithParallelParse enables parsing multiple modules concurrently before
// the (always single-threaded) emulation pass.
func WithParallelParse(parallel bool) Option {
	return func(o *Options) error {
		o.ParallelParse = parallel
		return nil
	}
}

// WithRecursionLimit bounds call-stack depth during emulation.
func WithRecursionLimit(limit int) Option {
	return func(o *Options) error {
		if limit < 0 {
			return fmt.Errorf("recursion limit must be >= 0: %d", limit)
		}
		o.RecursionLimit = limit
		return nil
	}
}

// WithLoopIterationLimit bounds iterations of any single loop during
// emulation, the guard against an adversarial `Do: Loop` with no exit.
func WithLoopIterationLimit(limit int) Option {
	return func(o *Options) error {
		if limit < 0 {
			return fmt.Errorf("loop iteration limit must be >= 0: %d", limit)
		}
		o.LoopIterationLimit = limit
		return nil
	}
}

// WithPackratCacheSize bounds the parser's memoization cache entry count.
func WithPackratCacheSize(size int) Option {
	return func(o *Options) error {
		if size < 0 {
			return fmt.Errorf("packrat cache size must be >= 0: %d", size)
		}
		o.PackratCacheSize = size
		return nil
	}
}

// WithLogLevel sets the glog verbosity threshold (0 quiet, 1 info, 2 trace).
func WithLogLevel(level int) Option {
	return func(o *Options) error {
		o.LogLevel = level
		return nil
	}
}
