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
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/docctx"
	"github.com/macrowalk/macrowalk/interpreter"
)

// ScanResult is one module's outcome from Scan: the expressions found
// pure and evaluable, alongside the module name they came from.
type ScanResult struct {
	Module      string
	Expressions []interpreter.ExpressionResult
}

// Scan runs the parser without ever emulating a statement: every
// stream is parsed exactly as Run would, but only side-effect-free
// constant expressions are evaluated (spec.md §6's expression-scan
// mode), useful for a REPL or a quick deobfuscation pass where driving
// an entry point end to end is unwanted or unsafe.
func (ac *AnalysisContext) Scan() ([]ScanResult, []ParseFailure) {
	modules, failures := ac.parseStreams()

	bctx := builtins.NewContext(nil, nil, ac.Doc)
	it := interpreter.New(ac.Opts, bctx, nil)

	var results []ScanResult
	for _, pm := range modules {
		if err := it.LoadModule(pm.mod); err != nil {
			continue
		}
		results = append(results, ScanResult{
			Module:      pm.name,
			Expressions: it.ScanExpressions(pm.mod),
		})
	}
	return results, failures
}
