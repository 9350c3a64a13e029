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

package analysis

import (
	"fmt"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/common"
	"github.com/macrowalk/macrowalk/interpreter"
	"github.com/macrowalk/macrowalk/parser"
	"github.com/macrowalk/macrowalk/value"
)

// REPLSession holds one loaded interpreter an interactive session
// evaluates expressions against, grounded on the teacher's repl
// package pairing a long-lived evaluator with a line-at-a-time loop
// (repl/repl.go's NewEvaluator / eval.Evaluate).
type REPLSession struct {
	it   *interpreter.Interpreter
	bctx *builtins.Context
}

// NewREPLSession parses and loads every stream in ac.Doc, then returns
// a session ready for repeated Eval calls. Parse failures are reported
// but never fatal: a document with some broken streams still gives the
// analyst everything that did load.
func (ac *AnalysisContext) NewREPLSession() (*REPLSession, []ParseFailure) {
	modules, failures := ac.parseStreams()

	artifacts, _ := newFSArtifactWriter(ac.ArtifactDir)
	bctx := builtins.NewContext(action.NewLog(), artifacts, ac.Doc)
	it := interpreter.New(ac.Opts, bctx, nil)

	for _, pm := range modules {
		_ = it.LoadModule(pm.mod)
	}
	return &REPLSession{it: it, bctx: bctx}, failures
}

// Eval parses line as a single VBA expression and evaluates it against
// the session's loaded modules and global scope.
func (s *REPLSession) Eval(line string) (value.Val, error) {
	src := common.NewTextSource("<repl>", line)
	p := parser.New(src)
	expr := p.ParseExpr()
	if !p.Errors().Empty() {
		return nil, fmt.Errorf("%s", p.Errors().String())
	}
	return s.it.EvalExpr(expr)
}

// ActionDescriptions returns the human-readable description of every
// action logged so far in this session, in order.
func (s *REPLSession) ActionDescriptions() []string {
	entries := s.bctx.Actions.Entries()
	out := make([]string, len(entries))
	for i, a := range entries {
		out[i] = a.String()
	}
	return out
}
