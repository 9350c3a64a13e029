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

package ast

import (
	"fmt"

	"github.com/macrowalk/macrowalk/common"
)

// Literal variants, grounded on ast/constants.go's per-kind constant
// node style (Int64Constant, StringConstant, BoolConstant, ...).

type IntLit struct {
	BaseExpr
	Value int64
}

func NewIntLit(id int64, l common.Location, v int64) *IntLit {
	return &IntLit{BaseExpr{newBase(id, l)}, v}
}
func (e *IntLit) String() string { return ToDebugString(e) }
func (e *IntLit) writeDebugString(w *debugWriter) {
	w.appendFormat("%d", e.Value)
}

type DoubleLit struct {
	BaseExpr
	Value float64
}

func NewDoubleLit(id int64, l common.Location, v float64) *DoubleLit {
	return &DoubleLit{BaseExpr{newBase(id, l)}, v}
}
func (e *DoubleLit) String() string { return ToDebugString(e) }
func (e *DoubleLit) writeDebugString(w *debugWriter) {
	w.appendFormat("%v", e.Value)
}

type StringLit struct {
	BaseExpr
	Value string
}

func NewStringLit(id int64, l common.Location, v string) *StringLit {
	return &StringLit{BaseExpr{newBase(id, l)}, v}
}
func (e *StringLit) String() string { return ToDebugString(e) }
func (e *StringLit) writeDebugString(w *debugWriter) {
	w.append(`"`)
	w.append(e.Value)
	w.append(`"`)
}

type BoolLit struct {
	BaseExpr
	Value bool
}

func NewBoolLit(id int64, l common.Location, v bool) *BoolLit {
	return &BoolLit{BaseExpr{newBase(id, l)}, v}
}
func (e *BoolLit) String() string { return ToDebugString(e) }
func (e *BoolLit) writeDebugString(w *debugWriter) {
	if e.Value {
		w.append("True")
	} else {
		w.append("False")
	}
}

// DateLit is a `#...#` date literal.
type DateLit struct {
	BaseExpr
	Text string // verbatim text between the `#` delimiters
}

func NewDateLit(id int64, l common.Location, text string) *DateLit {
	return &DateLit{BaseExpr{newBase(id, l)}, text}
}
func (e *DateLit) String() string { return ToDebugString(e) }
func (e *DateLit) writeDebugString(w *debugWriter) {
	w.append("#")
	w.append(e.Text)
	w.append("#")
}

// NullLit and EmptyLit are the VBA nothing-ish keyword literals (Null,
// Empty is rarely spelled but Nothing for objects is modeled with
// NullLit since object handles do not otherwise need a distinct node).
// There is no literal node for Missing.
type NullLit struct{ BaseExpr }

func NewNullLit(id int64, l common.Location) *NullLit {
	return &NullLit{BaseExpr{newBase(id, l)}}
}
func (e *NullLit) String() string                 { return ToDebugString(e) }
func (e *NullLit) writeDebugString(w *debugWriter) { w.append("Null") }

type EmptyLit struct{ BaseExpr }

func NewEmptyLit(id int64, l common.Location) *EmptyLit {
	return &EmptyLit{BaseExpr{newBase(id, l)}}
}
func (e *EmptyLit) String() string                 { return ToDebugString(e) }
func (e *EmptyLit) writeDebugString(w *debugWriter) { w.append("Empty") }

// Ident is an identifier reference (spec.md §3 "identifier references").
type Ident struct {
	BaseExpr
	Name string
}

func NewIdent(id int64, l common.Location, name string) *Ident {
	return &Ident{BaseExpr{newBase(id, l)}, name}
}
func (e *Ident) String() string { return ToDebugString(e) }
func (e *Ident) writeDebugString(w *debugWriter) {
	w.append(e.Name)
}

// Member is `a.b` member access, grounded on ast/select.go's
// SelectExpression (Target/Field), renamed to fit VBA's With-block
// resolution story: a leading-dot member inside a With block has a nil
// Target, resolved against the active with-target at eval time.
type Member struct {
	BaseExpr
	Target Expr // nil when this is a bare `.field` inside a With block
	Field  string
}

func NewMember(id int64, l common.Location, target Expr, field string) *Member {
	return &Member{BaseExpr{newBase(id, l)}, target, field}
}
func (e *Member) String() string { return ToDebugString(e) }
func (e *Member) writeDebugString(w *debugWriter) {
	if e.Target != nil {
		w.appendExpr(e.Target)
	}
	w.append(".")
	w.append(e.Field)
}

// CallOrIndex is `f(args)`: spec.md §3 notes this is "indistinguishable
// from call at parse time" from an array index, so both parse to this
// one node; the interpreter decides at eval time based on what Callee
// resolves to. Grounded on ast/call.go's CallExpression.
type CallOrIndex struct {
	BaseExpr
	Callee Expr // Ident or Member naming the function/array/sub
	Args   []Expr
}

func NewCallOrIndex(id int64, l common.Location, callee Expr, args ...Expr) *CallOrIndex {
	return &CallOrIndex{BaseExpr{newBase(id, l)}, callee, args}
}
func (e *CallOrIndex) String() string { return ToDebugString(e) }
func (e *CallOrIndex) writeDebugString(w *debugWriter) {
	w.appendExpr(e.Callee)
	w.append("(")
	for i, a := range e.Args {
		if i > 0 {
			w.append(", ")
		}
		w.appendExpr(a)
	}
	w.append(")")
}

// Unary is a prefix operator: unary `-`, `Not`.
type Unary struct {
	BaseExpr
	Op      string
	Operand Expr
}

func NewUnary(id int64, l common.Location, op string, operand Expr) *Unary {
	return &Unary{BaseExpr{newBase(id, l)}, op, operand}
}
func (e *Unary) String() string { return ToDebugString(e) }
func (e *Unary) writeDebugString(w *debugWriter) {
	if e.Op == OpNeg {
		w.append("-")
	} else {
		w.append(e.Op)
		w.append(" ")
	}
	w.appendExpr(e.Operand)
}

// Binary is every binary operator in spec.md §3's precedence ladder:
// Imp, Eqv, Xor, Or, And, comparisons, `&`, `+ -`, `* /`, `\`, Mod, `^`,
// and `Like`.
type Binary struct {
	BaseExpr
	Op          string
	Left, Right Expr
}

func NewBinary(id int64, l common.Location, op string, left, right Expr) *Binary {
	return &Binary{BaseExpr{newBase(id, l)}, op, left, right}
}
func (e *Binary) String() string { return ToDebugString(e) }
func (e *Binary) writeDebugString(w *debugWriter) {
	w.appendExpr(e.Left)
	w.append(fmt.Sprintf(" %s ", e.Op))
	w.appendExpr(e.Right)
}

// ArrayLit is the `Array(...)` builtin literal, grounded on
// ast/list.go's CreateListExpression.
type ArrayLit struct {
	BaseExpr
	Elements []Expr
}

func NewArrayLit(id int64, l common.Location, elements ...Expr) *ArrayLit {
	return &ArrayLit{BaseExpr{newBase(id, l)}, elements}
}
func (e *ArrayLit) String() string { return ToDebugString(e) }
func (e *ArrayLit) writeDebugString(w *debugWriter) {
	w.append("Array(")
	for i, el := range e.Elements {
		if i > 0 {
			w.append(", ")
		}
		w.appendExpr(el)
	}
	w.append(")")
}

// ErrorExpr marks a sub-expression the parser could not recover, keeping
// the surrounding tree well-formed, grounded on ast/error.go.
type ErrorExpr struct{ BaseExpr }

func NewErrorExpr(id int64, l common.Location) *ErrorExpr {
	return &ErrorExpr{BaseExpr{newBase(id, l)}}
}
func (e *ErrorExpr) String() string                 { return ToDebugString(e) }
func (e *ErrorExpr) writeDebugString(w *debugWriter) { w.append("*!error!*") }
