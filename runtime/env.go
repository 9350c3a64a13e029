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

// Package runtime holds the scope chain the interpreter evaluates
// against: global environment, enclosing module, active procedure and
// any nested With-block, grounded on interpreter/activation.go's
// Activation/HierarchicalActivation pair, generalized from CEL's
// read-only name resolution to VBA's mutable, case-insensitive
// variable bindings.
package runtime

import "github.com/macrowalk/macrowalk/value"

// Env resolves identifiers to cells. Lookups are case-insensitive,
// matching VBA's case-folded identifier semantics.
type Env interface {
	// Lookup returns the cell bound to name in this environment or any
	// of its ancestors, or false if name is unbound anywhere in the chain.
	Lookup(name string) (value.Cell, bool)

	// Declare binds a fresh cell for name in this environment, shadowing
	// any binding of the same name in an ancestor. Re-declaring a name
	// that already exists in this (not an ancestor) environment replaces
	// the existing cell.
	Declare(name string, initial value.Val) value.Cell

	// Bind aliases name directly to an existing cell rather than copying
	// its value into a fresh one, the mechanism ByRef parameter passing
	// uses so writes inside the callee are visible to the caller without
	// needing a value.Ref wrapper at every read.
	Bind(name string, c value.Cell)

	// Parent returns the enclosing environment, or nil for the global
	// environment.
	Parent() Env
}

// cell is the concrete value.Cell implementation backing every binding.
type cell struct {
	name string
	val  value.Val
}

func (c *cell) Get() value.Val  { return c.val }
func (c *cell) Set(v value.Val) { c.val = v }
func (c *cell) Name() string    { return c.name }

var _ value.Cell = (*cell)(nil)

// mapEnv is a flat name-to-cell environment with an optional parent,
// grounded on MapActivation.
type mapEnv struct {
	parent Env
	cells  map[string]value.Cell
}

// NewGlobalEnv returns the root of an environment chain: it has no parent
// and holds Public module-level variables and constants shared across
// every module in an analysis run.
func NewGlobalEnv() Env {
	return &mapEnv{cells: make(map[string]value.Cell)}
}

// NewChildEnv returns a fresh environment nested under parent, used for
// module scope (parented to the global env), procedure scope (parented
// to module scope) and With-block scope (parented to procedure scope).
func NewChildEnv(parent Env) Env {
	return &mapEnv{parent: parent, cells: make(map[string]value.Cell)}
}

func (e *mapEnv) Parent() Env { return e.parent }

func (e *mapEnv) Declare(name string, initial value.Val) value.Cell {
	key := value.CaseFold(name)
	c := &cell{name: name, val: initial}
	e.cells[key] = c
	return c
}

func (e *mapEnv) Bind(name string, c value.Cell) {
	e.cells[value.CaseFold(name)] = c
}

func (e *mapEnv) Lookup(name string) (value.Cell, bool) {
	key := value.CaseFold(name)
	if c, ok := e.cells[key]; ok {
		return c, true
	}
	if e.parent != nil {
		return e.parent.Lookup(name)
	}
	return nil, false
}

// WithEnv resolves bare `.field` member expressions against an active
// With-block target instead of a declared variable; it wraps a child
// scope so ordinary identifiers still resolve normally through Parent.
type WithEnv struct {
	Env
	Target value.Val
}

// NewWithEnv pushes target as the active With-block receiver over parent.
func NewWithEnv(parent Env, target value.Val) *WithEnv {
	return &WithEnv{Env: NewChildEnv(parent), Target: target}
}

// ActiveWith walks up the chain to find the nearest enclosing With target,
// or nil if no With block is active.
func ActiveWith(e Env) value.Val {
	for cur := e; cur != nil; cur = cur.Parent() {
		if w, ok := cur.(*WithEnv); ok {
			return w.Target
		}
	}
	return nil
}
