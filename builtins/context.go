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

// Package builtins models the ~100-function VBA/host runtime library:
// string/numeric/date helpers, object stubs for the handful of COM
// automation objects malware samples reach for most (WScript.Shell,
// Scripting.FileSystemObject, MSXML2.XMLHTTP, ADODB.Stream,
// Shell.Application, Word.Application, Excel.Application) and the
// process/network/registry primitives that only ever get logged, never
// actually executed. Grounded on interpreter/functions/functions.go's
// case-folded-name Overload registry, generalized from CEL's typed
// overload resolution (VBA's Variant type makes arity, not argument
// type, the only dispatch key).
package builtins

import (
	"math/rand"
	"time"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/docctx"
	"github.com/macrowalk/macrowalk/value"
)

// Context is threaded through every builtin call: the action log to
// append to, the artifact directory builtins that model file creation
// write their payloads into, the document context Environ/doc-variable
// lookups read from, and a private RNG so Rnd is reproducible per run
// without reaching for the global math/rand state.
type Context struct {
	Actions   *action.Log
	Artifacts ArtifactWriter
	Doc       *docctx.Context
	Rng       *rand.Rand
	Now       func() time.Time
	Objects   *ObjectTable
}

// ArtifactWriter persists a builtin-modeled file write to the run's flat
// artifact directory; the analysis package supplies the concrete
// implementation backed by the real filesystem.
type ArtifactWriter interface {
	WriteArtifact(name string, data []byte) error
}

// NewContext returns a Context whose RNG is seeded with the fixed value
// 1 and whose clock is the wall clock; analysis callers needing a fully
// deterministic run replace Now after construction.
func NewContext(actions *action.Log, artifacts ArtifactWriter, doc *docctx.Context) *Context {
	return &Context{
		Actions:   actions,
		Artifacts: artifacts,
		Doc:       doc,
		Rng:       rand.New(rand.NewSource(1)),
		Now:       time.Now,
		Objects:   NewObjectTable(),
	}
}

// Func is the signature every modeled builtin implements.
type Func func(ctx *Context, args []value.Val) (value.Val, error)
