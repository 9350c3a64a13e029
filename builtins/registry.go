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

package builtins

import "github.com/macrowalk/macrowalk/value"

// Registry resolves a case-folded builtin name to its implementation,
// grounded on the teacher's function-name-keyed Dispatcher but dropping
// its reflection-based argument-type matching: every VBA builtin takes
// Variants, so arity (checked by each Func itself) is the only
// dispatch key that matters.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a Registry pre-populated with the standard
// library (Standard).
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.addAll(Standard())
	return r
}

func (r *Registry) addAll(m map[string]Func) {
	for name, fn := range m {
		r.funcs[value.CaseFold(name)] = fn
	}
}

// Lookup returns the Func bound to name, case-insensitively.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[value.CaseFold(name)]
	return fn, ok
}

// Register adds or replaces the implementation bound to name, letting a
// caller extend the standard library with host-specific stubs.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[value.CaseFold(name)] = fn
}
