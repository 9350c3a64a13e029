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

package interpreter

import (
	"github.com/macrowalk/macrowalk/ast"
	"github.com/macrowalk/macrowalk/runtime"
	"github.com/macrowalk/macrowalk/value"
)

// ExpressionResult pairs one scanned expression's printed source with
// its evaluated value, the unit of output for the expression-scan
// mode spec.md §6 describes: "runs the parser without emulation and
// evaluates only side-effect-free constant expressions".
type ExpressionResult struct {
	Source string
	Value  value.Val
}

// ScanExpressions walks every statement in mod looking for
// expressions built entirely from literals, identifiers and operators
// — never a procedure/builtin call, never an object member access —
// and evaluates each one against the module's Dim/Const scope. No
// statement is executed, no builtin is dispatched and no action is
// logged; it is safe to call without LoadModule/Run ever having run an
// entry point.
func (it *Interpreter) ScanExpressions(mod *ast.Module) []ExpressionResult {
	modEnv := runtime.NewChildEnv(it.global)
	frame := &runtime.Frame{ProcName: "<" + mod.Name + " expression scan>"}

	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.DimDecl:
			for _, v := range decl.Vars {
				modEnv.Declare(v.Name, it.zeroValueFor(v))
			}
		case *ast.ConstDecl:
			for _, v := range decl.Vars {
				if !isPureExpr(v.Value) {
					continue
				}
				if cv, err := it.evalExpr(modEnv, frame, v.Value); err == nil {
					modEnv.Declare(v.Name, cv)
				}
			}
		}
	}

	var results []ExpressionResult
	collect := func(e ast.Expr) {
		if e == nil || !isPureExpr(e) {
			return
		}
		v, err := it.evalExpr(modEnv, frame, e)
		if err != nil {
			return
		}
		results = append(results, ExpressionResult{Source: e.String(), Value: v})
	}

	var walkStmts func([]ast.Stmt)
	walkStmts = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch st := s.(type) {
			case *ast.AssignStmt:
				collect(st.Value)
			case *ast.ExprStmt:
				collect(st.X)
			case *ast.IfStmt:
				walkStmts(st.Then)
				for _, ei := range st.ElseIfs {
					walkStmts(ei.Body)
				}
				walkStmts(st.Else)
			case *ast.ForStmt:
				walkStmts(st.Body)
			case *ast.ForEachStmt:
				walkStmts(st.Body)
			case *ast.WhileStmt:
				walkStmts(st.Body)
			case *ast.DoStmt:
				walkStmts(st.Body)
			case *ast.WithStmt:
				walkStmts(st.Body)
			case *ast.SelectCaseStmt:
				for _, c := range st.Cases {
					walkStmts(c.Body)
				}
				walkStmts(st.Else)
			}
		}
	}

	for _, d := range mod.Decls {
		switch decl := d.(type) {
		case *ast.SubDecl:
			walkStmts(decl.Body)
		case *ast.FunctionDecl:
			walkStmts(decl.Body)
		case *ast.PropertyDecl:
			walkStmts(decl.Body)
		}
	}
	return results
}

// EvalExpr evaluates a single free-standing expression against the
// interpreter's global scope. Unlike ScanExpressions it is not
// restricted to pure expressions: builtins and loaded procedures may
// be called, the way cel-go's own repl evaluates an arbitrary
// expression against a live environment. Intended for cmd/macrowalk's
// interactive scan REPL, called once per line the analyst types.
func (it *Interpreter) EvalExpr(e ast.Expr) (value.Val, error) {
	frame := &runtime.Frame{ProcName: "<repl>"}
	return it.evalExpr(it.global, frame, e)
}

// isPureExpr reports whether e can never trigger a procedure call, a
// builtin dispatch or an object-method invocation, the precondition
// the expression-scan mode's "side-effect-free" guarantee rests on.
func isPureExpr(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.IntLit, *ast.DoubleLit, *ast.StringLit, *ast.BoolLit,
		*ast.DateLit, *ast.NullLit, *ast.EmptyLit, *ast.Ident:
		return true
	case *ast.Unary:
		return isPureExpr(x.Operand)
	case *ast.Binary:
		return (x.Left == nil || isPureExpr(x.Left)) && isPureExpr(x.Right)
	case *ast.ArrayLit:
		for _, el := range x.Elements {
			if !isPureExpr(el) {
				return false
			}
		}
		return true
	default:
		// *ast.CallOrIndex and *ast.Member are never pure: the first
		// is indistinguishable from a procedure/builtin call until
		// resolved, the second can reach a dispatched Object method.
		return false
	}
}
