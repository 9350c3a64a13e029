// Copyright 2018 Google LLC
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

// Package analysis is the top-level driver a caller (cmd/macrowalk, or
// any embedder) uses to turn a docctx.Context full of macro streams
// into an action.Log: normalize, parse every stream (optionally in
// parallel), then emulate every loaded module's entry points serially.
// Grounded on spec.md §9's instruction to reorganize what would
// otherwise be package-global state into a single value threaded
// through calls; AnalysisContext is that value.
package analysis

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/common"
	"github.com/macrowalk/macrowalk/config"
	"github.com/macrowalk/macrowalk/docctx"
	"github.com/macrowalk/macrowalk/interpreter"
)

// AnalysisContext bundles one run's configuration, artifact
// destination and document input. It carries no package-level mutable
// state; every method hangs off this value.
type AnalysisContext struct {
	Opts        *config.Options
	ArtifactDir string
	Doc         *docctx.Context
}

// New returns an AnalysisContext ready for Run. A nil opts falls back
// to config.Default().
func New(opts *config.Options, artifactDir string, doc *docctx.Context) *AnalysisContext {
	if opts == nil {
		opts = config.Default()
	}
	return &AnalysisContext{Opts: opts, ArtifactDir: artifactDir, Doc: doc}
}

// ParseFailure records one stream that failed to parse; per spec.md §7
// a ParseError aborts only that stream, so a ParseFailure never stops
// the rest of the run.
type ParseFailure struct {
	Stream docctx.Stream
	Errors *common.Errors
}

// Result is everything one Run produces: the action log, the entry
// points actually driven and what they returned, and any streams that
// could not be parsed.
type Result struct {
	Actions       []action.Action
	EntryResults  []interpreter.EntryResult
	ParseFailures []ParseFailure
	// Crashed lists modules whose emulation recovered from a panic
	// (spec.md §7's InternalError policy: that module's contribution
	// is dropped, every other module still runs).
	Crashed []string
}

// Run normalizes and parses every stream, loads every module that
// parsed cleanly into a single interpreter, and drives every selected
// entry point across all of them, sharing one action log and one
// global environment the way sibling modules in the same document
// share VBA's project-wide scope.
func (ac *AnalysisContext) Run(ctx context.Context) (*Result, error) {
	modules, failures := ac.parseStreams()

	artifacts, err := newFSArtifactWriter(ac.ArtifactDir)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	bctx := builtins.NewContext(action.NewLog(), artifacts, ac.Doc)
	it := interpreter.New(ac.Opts, bctx, ctx)

	res := &Result{ParseFailures: failures}
	for _, pm := range modules {
		if err := ac.loadModuleSafely(it, pm); err != nil {
			glog.Warningf("analysis: module %s crashed while loading: %v", pm.name, err)
			res.Crashed = append(res.Crashed, pm.name)
		}
	}

	res.EntryResults = ac.runSafely(it)
	res.Actions = bctx.Actions.Entries()
	return res, nil
}

// loadModuleSafely recovers a panic out of LoadModule so one malformed
// module can never take the rest of the document's streams down with
// it (spec.md §7's InternalError row: "recovered panic ... document's
// result becomes null for that module; next document proceeds").
func (ac *AnalysisContext) loadModuleSafely(it *interpreter.Interpreter, pm parsedModule) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return it.LoadModule(pm.mod)
}

// runSafely recovers a panic out of Run itself; a crash mid-emulation
// still yields whatever EntryResults were already produced plus
// whatever partial action log was recorded before the crash.
func (ac *AnalysisContext) runSafely(it *interpreter.Interpreter) (results []interpreter.EntryResult) {
	defer func() {
		if r := recover(); r != nil {
			glog.Warningf("analysis: emulation panicked: %v", r)
		}
	}()
	return it.Run()
}
