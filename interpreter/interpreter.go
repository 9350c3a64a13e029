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

// Package interpreter tree-walks a parsed ast.Module and symbolically
// emulates it: every Sub/Function/Property is callable, every
// statement and expression from ast has an evaluator, and every
// observable side effect (Shell, file write, registry, network,
// object creation) is recorded to an action.Log instead of actually
// performed. Grounded on the teacher's deleted interpreter/dispatcher.go
// and interpreter/activation.go (the calling-convention and
// name-resolution shape survives; CEL's protobuf-typed expression
// graph does not).
package interpreter

import (
	"context"
	"strings"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/ast"
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/config"
	"github.com/macrowalk/macrowalk/runtime"
	"github.com/macrowalk/macrowalk/value"
)

// procKind distinguishes the three VBA procedure shapes, since Function
// and Property Get return a value through their own name while Sub and
// Property Let/Set never do.
type procKind int

const (
	procSub procKind = iota
	procFunction
	procPropertyGet
	procPropertyLet
	procExternal
)

// procEntry is a loaded, callable procedure: either a module-declared
// Sub/Function/Property or an external Declare stub that never has a
// body and always evaluates to Unresolved.
type procEntry struct {
	name       string
	kind       procKind
	params     []ast.Param
	body       []ast.Stmt
	moduleEnv  runtime.Env
	returnType string
	external   bool
}

// Interpreter owns the loaded procedure table and the shared global
// environment a whole analysis run (potentially several Document/
// Module streams) evaluates against.
type Interpreter struct {
	opts     *config.Options
	global   runtime.Env
	procs    map[string]*procEntry
	order    []string
	calls    *runtime.CallStack
	bctx     *builtins.Context
	registry *builtins.Registry
	files    *fileTable
	ctx      context.Context
}

// New returns an Interpreter ready to LoadModule and Run against,
// wired to the given action/artifact/document collaborators exactly
// the way builtins.NewContext expects. runCtx governs cooperative
// cancellation (spec.md §5: "cancellable between statements"); a nil
// runCtx behaves as context.Background().
func New(opts *config.Options, bctx *builtins.Context, runCtx context.Context) *Interpreter {
	if runCtx == nil {
		runCtx = context.Background()
	}
	return &Interpreter{
		opts:     opts,
		global:   runtime.NewGlobalEnv(),
		procs:    make(map[string]*procEntry),
		calls:    runtime.NewCallStack(opts.RecursionLimit),
		bctx:     bctx,
		registry: builtins.NewRegistry(),
		files:    newFileTable(),
		ctx:      runCtx,
	}
}

// EntryResult is the outcome of running one selected entry point.
type EntryResult struct {
	Name   string
	Result value.Val
	Err    error
}

// LoadModule registers every Sub/Function/Property/Declare in mod
// under a fresh module-scope environment parented to the shared
// global, and evaluates module-level Dim/Const/Enum declarations into
// that scope so procedure bodies see them as free variables.
func (it *Interpreter) LoadModule(mod *ast.Module) error {
	modEnv := runtime.NewChildEnv(it.global)
	initFrame := &runtime.Frame{ProcName: "<" + mod.Name + " module init>"}

	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.SubDecl:
			it.register(&procEntry{name: decl.Name, kind: procSub, params: decl.Params, body: decl.Body, moduleEnv: modEnv})
		case *ast.FunctionDecl:
			it.register(&procEntry{name: decl.Name, kind: procFunction, params: decl.Params, body: decl.Body, moduleEnv: modEnv, returnType: decl.ReturnType})
		case *ast.PropertyDecl:
			k := procPropertyLet
			if decl.Kind == ast.PropertyGet {
				k = procPropertyGet
			}
			it.register(&procEntry{name: decl.Name, kind: k, params: decl.Params, body: decl.Body, moduleEnv: modEnv, returnType: decl.ReturnType})
		case *ast.DeclareDecl:
			it.register(&procEntry{name: decl.Name, kind: procExternal, params: decl.Params, moduleEnv: modEnv, returnType: decl.ReturnType, external: true})
		case *ast.DimDecl:
			for _, v := range decl.Vars {
				modEnv.Declare(v.Name, it.zeroValueFor(v))
			}
		case *ast.ConstDecl:
			for _, v := range decl.Vars {
				cv, err := it.evalExpr(modEnv, initFrame, v.Value)
				if err != nil {
					return err
				}
				modEnv.Declare(v.Name, cv)
			}
		case *ast.EnumDecl:
			next := int64(0)
			for _, m := range decl.Members {
				if m.Value != nil {
					v, err := it.evalExpr(modEnv, initFrame, m.Value)
					if err != nil {
						return err
					}
					if f, ok := value.ToFloat(v); ok {
						next = int64(f)
					}
				}
				modEnv.Declare(m.Name, value.Int(next))
				next++
			}
		case *ast.TypeDecl:
			// User-defined types get no storage model beyond the
			// Dim/zero-value fallback: fields are never individually
			// tracked, and reads against them fall through to
			// Unresolved via evalMember's default case.
		}
	}
	return nil
}

func (it *Interpreter) register(p *procEntry) {
	key := value.CaseFold(p.name)
	it.procs[key] = p
	it.order = append(it.order, key)
}

// zeroValueFor returns the declaration-time value a Dim'd variable
// holds before any assignment: an empty *value.Array for an array
// dimension, otherwise the type's zero value (Variant defaults to
// Empty, matching uninitialized VBA variables).
func (it *Interpreter) zeroValueFor(v ast.DimVar) value.Val {
	if len(v.ArrayDims) > 0 {
		return value.NewArray(nil)
	}
	if v.Initializer != nil {
		// Initializers on Dim are only legal for As New; the object
		// itself is created lazily on first use, so this is recorded
		// as Empty here and left to evalIdent's auto-vivification.
		return value.EmptyValue
	}
	return zeroForType(v.Type)
}

func zeroForType(typeName string) value.Val {
	switch strings.ToLower(typeName) {
	case "integer", "long", "byte":
		return value.Int(0)
	case "double", "single", "currency":
		return value.Double(0)
	case "string":
		return value.NewString("")
	case "boolean":
		return value.Bool(false)
	case "date":
		return value.Date(0)
	default:
		return value.EmptyValue
	}
}

// selectEntryPoints returns the case-folded procedure names Run should
// drive, in declaration order and de-duplicated: opts.EntryPoints when
// given (filtered to names that actually resolve), otherwise every
// procedure isEntryPointName recognizes as an auto-run or event hook.
func (it *Interpreter) selectEntryPoints() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	if len(it.opts.EntryPoints) > 0 {
		wanted := make(map[string]bool)
		for _, name := range it.opts.EntryPoints {
			wanted[value.CaseFold(name)] = true
		}
		for _, key := range it.order {
			if entry, ok := it.procs[key]; ok && wanted[key] && !entry.external {
				add(key)
			}
		}
		return out
	}
	for _, key := range it.order {
		entry := it.procs[key]
		if entry.external {
			continue
		}
		if isEntryPointName(entry.name) {
			add(key)
		}
	}
	return out
}

func isEntryPointName(name string) bool {
	folded := value.CaseFold(name)
	switch folded {
	case "workbook_open", "document_open", "workbook_activate", "auto_open", "autoopen", "autoexec", "autoclose", "autoexit":
		return true
	}
	if strings.HasPrefix(folded, "auto") {
		return true
	}
	if strings.HasSuffix(folded, "_change") {
		return true
	}
	return false
}

// Run drives every selected entry point to completion (or to whatever
// control-flow/error abort cuts it short) and reports one EntryResult
// per entry point, in selection order.
func (it *Interpreter) Run() []EntryResult {
	var results []EntryResult
	for _, key := range it.selectEntryPoints() {
		entry := it.procs[key]
		res, err := it.callProc(entry, nil)
		results = append(results, EntryResult{Name: entry.name, Result: res, Err: err})
	}
	return results
}

// argSlot pairs an already-evaluated argument value with the caller's
// live cell when the argument expression was a bare identifier, so
// callProc can alias a ByRef parameter directly onto it rather than
// copying.
type argSlot struct {
	val  value.Val
	cell value.Cell
}

// callProc pushes a call frame, binds parameters (aliasing ByRef
// arguments that came from a bare identifier, copying everything
// else), executes the body, and returns the procedure's result value
// (Empty for a Sub). A recursion-limit hit is logged as an action and
// answered with a harmless Empty rather than aborting the caller.
func (it *Interpreter) callProc(entry *procEntry, args []argSlot) (value.Val, error) {
	if entry.external {
		return value.NewUnresolved(externalCallText(entry, args)), nil
	}

	calleeEnv := runtime.NewChildEnv(entry.moduleEnv)
	frame := &runtime.Frame{ProcName: entry.name, Env: calleeEnv}

	if entry.kind == procFunction || entry.kind == procPropertyGet {
		calleeEnv.Declare(entry.name, value.EmptyValue)
	}

	for i, p := range entry.params {
		switch {
		case i < len(args):
			if p.ByRef && args[i].cell != nil {
				calleeEnv.Bind(p.Name, args[i].cell)
			} else {
				calleeEnv.Declare(p.Name, args[i].val)
			}
		case p.Optional && p.Default != nil:
			dv, err := it.evalExpr(calleeEnv, frame, p.Default)
			if err != nil {
				return value.EmptyValue, err
			}
			calleeEnv.Declare(p.Name, dv)
		case p.Optional:
			calleeEnv.Declare(p.Name, value.MissingValue)
		default:
			calleeEnv.Declare(p.Name, value.EmptyValue)
		}
	}

	if err := it.calls.Push(frame); err != nil {
		it.bctx.Actions.Append(action.New(action.KindOther, "recursion limit reached calling "+entry.name, map[string]string{"proc": entry.name}))
		return value.EmptyValue, nil
	}
	defer it.calls.Pop()

	ec := execCtx{top: entry.body, isTop: true}
	if _, err := it.execStmts(calleeEnv, frame, entry.body, ec); err != nil {
		return value.EmptyValue, err
	}

	if entry.kind == procFunction || entry.kind == procPropertyGet {
		if c, ok := calleeEnv.Lookup(entry.name); ok {
			return c.Get(), nil
		}
	}
	return value.EmptyValue, nil
}

func externalCallText(entry *procEntry, args []argSlot) string {
	var b strings.Builder
	b.WriteString(entry.name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(value.ToDisplayString(a.val))
	}
	b.WriteByte(')')
	return b.String()
}
