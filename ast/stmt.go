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

import "github.com/macrowalk/macrowalk/common"

// AssignStmt covers both `Let x = ...` (the implicit default) and
// `Set x = ...`, distinguished by IsSet since object assignment is
// reference-semantics while scalar assignment is copy-on-assign
// (spec.md §3 "Lifecycles").
type AssignStmt struct {
	BaseStmt
	Target Expr
	Value  Expr
	IsSet  bool
}

func NewAssignStmt(id int64, l common.Location, target, value Expr, isSet bool) *AssignStmt {
	return &AssignStmt{BaseStmt{newBase(id, l)}, target, value, isSet}
}
func (s *AssignStmt) String() string { return ToDebugStringStmt(s) }
func (s *AssignStmt) writeDebugString(w *debugWriter) {
	if s.IsSet {
		w.append("Set ")
	}
	w.appendExpr(s.Target)
	w.append(" = ")
	w.appendExpr(s.Value)
}

// ElseIf is one `ElseIf cond Then` arm of an If statement.
type ElseIf struct {
	Cond Expr
	Body []Stmt
}

// IfStmt is `If ... Then ... ElseIf ... Else ... End If`.
type IfStmt struct {
	BaseStmt
	Cond    Expr
	Then    []Stmt
	ElseIfs []ElseIf
	Else    []Stmt
}

func NewIfStmt(id int64, l common.Location, cond Expr, then []Stmt, elseIfs []ElseIf, els []Stmt) *IfStmt {
	return &IfStmt{BaseStmt{newBase(id, l)}, cond, then, elseIfs, els}
}
func (s *IfStmt) String() string { return ToDebugStringStmt(s) }
func (s *IfStmt) writeDebugString(w *debugWriter) {
	w.append("If ")
	w.appendExpr(s.Cond)
	w.append(" Then")
}

// ForStmt is `For counter = from To to [Step step] ... Next`.
type ForStmt struct {
	BaseStmt
	Counter    string
	From, To   Expr
	Step       Expr // nil means the implicit Step 1
	Body       []Stmt
}

func NewForStmt(id int64, l common.Location, counter string, from, to, step Expr, body []Stmt) *ForStmt {
	return &ForStmt{BaseStmt{newBase(id, l)}, counter, from, to, step, body}
}
func (s *ForStmt) String() string { return ToDebugStringStmt(s) }
func (s *ForStmt) writeDebugString(w *debugWriter) {
	w.append("For ")
	w.append(s.Counter)
	w.append(" = ")
	w.appendExpr(s.From)
	w.append(" To ")
	w.appendExpr(s.To)
}

// ForEachStmt is `For Each elem In collection ... Next`.
type ForEachStmt struct {
	BaseStmt
	Var        string
	Collection Expr
	Body       []Stmt
}

func NewForEachStmt(id int64, l common.Location, v string, collection Expr, body []Stmt) *ForEachStmt {
	return &ForEachStmt{BaseStmt{newBase(id, l)}, v, collection, body}
}
func (s *ForEachStmt) String() string { return ToDebugStringStmt(s) }
func (s *ForEachStmt) writeDebugString(w *debugWriter) {
	w.append("For Each ")
	w.append(s.Var)
	w.append(" In ")
	w.appendExpr(s.Collection)
}

// WhileStmt is `While cond ... Wend`.
type WhileStmt struct {
	BaseStmt
	Cond Expr
	Body []Stmt
}

func NewWhileStmt(id int64, l common.Location, cond Expr, body []Stmt) *WhileStmt {
	return &WhileStmt{BaseStmt{newBase(id, l)}, cond, body}
}
func (s *WhileStmt) String() string { return ToDebugStringStmt(s) }
func (s *WhileStmt) writeDebugString(w *debugWriter) {
	w.append("While ")
	w.appendExpr(s.Cond)
}

// DoStmt covers all four spellings: Do [While|Until] cond ... Loop, and
// Do ... Loop [While|Until] cond. PreTest false means the condition is
// evaluated at the bottom (Loop While/Until).
type DoStmt struct {
	BaseStmt
	Cond    Expr // nil for a bare `Do ... Loop`
	Until   bool // true for Until, false for While
	PreTest bool
	Body    []Stmt
}

func NewDoStmt(id int64, l common.Location, cond Expr, until, preTest bool, body []Stmt) *DoStmt {
	return &DoStmt{BaseStmt{newBase(id, l)}, cond, until, preTest, body}
}
func (s *DoStmt) String() string { return ToDebugStringStmt(s) }
func (s *DoStmt) writeDebugString(w *debugWriter) {
	w.append("Do")
}

// WithStmt pushes Target onto the with-stack for the duration of Body.
type WithStmt struct {
	BaseStmt
	Target Expr
	Body   []Stmt
}

func NewWithStmt(id int64, l common.Location, target Expr, body []Stmt) *WithStmt {
	return &WithStmt{BaseStmt{newBase(id, l)}, target, body}
}
func (s *WithStmt) String() string { return ToDebugStringStmt(s) }
func (s *WithStmt) writeDebugString(w *debugWriter) {
	w.append("With ")
	w.appendExpr(s.Target)
}

// CaseClause is one `Case ...` arm of a Select Case; Values may contain
// range/relational expressions (Case 1 To 5, Case Is > 10) pre-desugared
// by the parser into Binary nodes the interpreter evaluates against the
// selector.
type CaseClause struct {
	Values []Expr
	Body   []Stmt
}

// SelectCaseStmt is `Select Case selector ... End Select`.
type SelectCaseStmt struct {
	BaseStmt
	Selector Expr
	Cases    []CaseClause
	Else     []Stmt
}

func NewSelectCaseStmt(id int64, l common.Location, selector Expr, cases []CaseClause, els []Stmt) *SelectCaseStmt {
	return &SelectCaseStmt{BaseStmt{newBase(id, l)}, selector, cases, els}
}
func (s *SelectCaseStmt) String() string { return ToDebugStringStmt(s) }
func (s *SelectCaseStmt) writeDebugString(w *debugWriter) {
	w.append("Select Case ")
	w.appendExpr(s.Selector)
}

// OnErrorMode distinguishes the three On Error spellings.
type OnErrorMode int

const (
	OnErrorGotoZero OnErrorMode = iota
	OnErrorResumeNext
	OnErrorGotoLabel
)

// OnErrorStmt is `On Error Resume Next` / `On Error Goto 0` /
// `On Error Goto LABEL`.
type OnErrorStmt struct {
	BaseStmt
	Mode  OnErrorMode
	Label string
}

func NewOnErrorStmt(id int64, l common.Location, mode OnErrorMode, label string) *OnErrorStmt {
	return &OnErrorStmt{BaseStmt{newBase(id, l)}, mode, label}
}
func (s *OnErrorStmt) String() string { return ToDebugStringStmt(s) }
func (s *OnErrorStmt) writeDebugString(w *debugWriter) {
	w.append("On Error")
}

// GotoStmt is `Goto LABEL`.
type GotoStmt struct {
	BaseStmt
	Label string
}

func NewGotoStmt(id int64, l common.Location, label string) *GotoStmt {
	return &GotoStmt{BaseStmt{newBase(id, l)}, label}
}
func (s *GotoStmt) String() string { return ToDebugStringStmt(s) }
func (s *GotoStmt) writeDebugString(w *debugWriter) {
	w.append("Goto ")
	w.append(s.Label)
}

// LabelStmt marks a jump target line, e.g. `MyLabel:`.
type LabelStmt struct {
	BaseStmt
	Name string
}

func NewLabelStmt(id int64, l common.Location, name string) *LabelStmt {
	return &LabelStmt{BaseStmt{newBase(id, l)}, name}
}
func (s *LabelStmt) String() string { return ToDebugStringStmt(s) }
func (s *LabelStmt) writeDebugString(w *debugWriter) {
	w.append(s.Name)
	w.append(":")
}

// ExitKind distinguishes the five `Exit ...` spellings.
type ExitKind int

const (
	ExitSub ExitKind = iota
	ExitFunction
	ExitProperty
	ExitFor
	ExitDo
)

// ExitStmt is `Exit Sub|Function|Property|For|Do`.
type ExitStmt struct {
	BaseStmt
	Kind ExitKind
}

func NewExitStmt(id int64, l common.Location, kind ExitKind) *ExitStmt {
	return &ExitStmt{BaseStmt{newBase(id, l)}, kind}
}
func (s *ExitStmt) String() string { return ToDebugStringStmt(s) }
func (s *ExitStmt) writeDebugString(w *debugWriter) {
	w.append("Exit")
}

// CallStmt wraps a `Call f(args)` or bareword `f args` statement.
type CallStmt struct {
	BaseStmt
	Call Expr // always a *CallOrIndex
}

func NewCallStmt(id int64, l common.Location, call Expr) *CallStmt {
	return &CallStmt{BaseStmt{newBase(id, l)}, call}
}
func (s *CallStmt) String() string { return ToDebugStringStmt(s) }
func (s *CallStmt) writeDebugString(w *debugWriter) {
	w.append("Call ")
	w.appendExpr(s.Call)
}

// ExprStmt is a bare expression used as a statement (e.g. a standalone
// `Cos(x)` call whose result is discarded — the useless-code stripper's
// target in spec.md §4.A step 4).
type ExprStmt struct {
	BaseStmt
	X Expr
}

func NewExprStmt(id int64, l common.Location, x Expr) *ExprStmt {
	return &ExprStmt{BaseStmt{newBase(id, l)}, x}
}
func (s *ExprStmt) String() string { return ToDebugStringStmt(s) }
func (s *ExprStmt) writeDebugString(w *debugWriter) { w.appendExpr(s.X) }

// DimVar is one `name [(dims)] [As type]` entry in a Dim/ReDim/Static list.
type DimVar struct {
	Name        string
	Type        string // "" when untyped (Variant)
	ArrayDims   []Expr // nil for a scalar
	Initializer Expr   // non-nil only for Const-like `Dim x = ...` extensions; normally nil
}

// DimStmt is `Dim`/`Static` with one or more comma-separated declarators.
type DimStmt struct {
	BaseStmt
	Vars     []DimVar
	IsStatic bool
}

func NewDimStmt(id int64, l common.Location, vars []DimVar, isStatic bool) *DimStmt {
	return &DimStmt{BaseStmt{newBase(id, l)}, vars, isStatic}
}
func (s *DimStmt) String() string { return ToDebugStringStmt(s) }
func (s *DimStmt) writeDebugString(w *debugWriter) {
	w.append("Dim ")
	for i, v := range s.Vars {
		if i > 0 {
			w.append(", ")
		}
		w.append(v.Name)
	}
}

// ReDimStmt is `ReDim [Preserve] name(dims) [As type]`.
type ReDimStmt struct {
	BaseStmt
	Preserve bool
	Vars     []DimVar
}

func NewReDimStmt(id int64, l common.Location, preserve bool, vars []DimVar) *ReDimStmt {
	return &ReDimStmt{BaseStmt{newBase(id, l)}, preserve, vars}
}
func (s *ReDimStmt) String() string { return ToDebugStringStmt(s) }
func (s *ReDimStmt) writeDebugString(w *debugWriter) {
	w.append("ReDim ")
	if s.Preserve {
		w.append("Preserve ")
	}
}

// EraseStmt is `Erase name1, name2`.
type EraseStmt struct {
	BaseStmt
	Targets []Expr
}

func NewEraseStmt(id int64, l common.Location, targets []Expr) *EraseStmt {
	return &EraseStmt{BaseStmt{newBase(id, l)}, targets}
}
func (s *EraseStmt) String() string { return ToDebugStringStmt(s) }
func (s *EraseStmt) writeDebugString(w *debugWriter) { w.append("Erase") }

// OpenStmt is `Open path For mode As #handle`.
type OpenStmt struct {
	BaseStmt
	Path   Expr
	Mode   string // "Input", "Output", "Append", "Binary", "Random"
	Handle Expr
}

func NewOpenStmt(id int64, l common.Location, path Expr, mode string, handle Expr) *OpenStmt {
	return &OpenStmt{BaseStmt{newBase(id, l)}, path, mode, handle}
}
func (s *OpenStmt) String() string { return ToDebugStringStmt(s) }
func (s *OpenStmt) writeDebugString(w *debugWriter) {
	w.append("Open ")
	w.appendExpr(s.Path)
}

// CloseStmt is `Close #1, #2` (or bare `Close` for all handles).
type CloseStmt struct {
	BaseStmt
	Handles []Expr
}

func NewCloseStmt(id int64, l common.Location, handles []Expr) *CloseStmt {
	return &CloseStmt{BaseStmt{newBase(id, l)}, handles}
}
func (s *CloseStmt) String() string { return ToDebugStringStmt(s) }
func (s *CloseStmt) writeDebugString(w *debugWriter) { w.append("Close") }

// PrintStmt is `Print #handle, args...`.
type PrintStmt struct {
	BaseStmt
	Handle Expr
	Args   []Expr
}

func NewPrintStmt(id int64, l common.Location, handle Expr, args []Expr) *PrintStmt {
	return &PrintStmt{BaseStmt{newBase(id, l)}, handle, args}
}
func (s *PrintStmt) String() string { return ToDebugStringStmt(s) }
func (s *PrintStmt) writeDebugString(w *debugWriter) { w.append("Print #") }

// WriteStmt is `Write #handle, args...`.
type WriteStmt struct {
	BaseStmt
	Handle Expr
	Args   []Expr
}

func NewWriteStmt(id int64, l common.Location, handle Expr, args []Expr) *WriteStmt {
	return &WriteStmt{BaseStmt{newBase(id, l)}, handle, args}
}
func (s *WriteStmt) String() string { return ToDebugStringStmt(s) }
func (s *WriteStmt) writeDebugString(w *debugWriter) { w.append("Write #") }

// LineInputStmt is `Line Input #handle, target`.
type LineInputStmt struct {
	BaseStmt
	Handle Expr
	Target Expr
}

func NewLineInputStmt(id int64, l common.Location, handle, target Expr) *LineInputStmt {
	return &LineInputStmt{BaseStmt{newBase(id, l)}, handle, target}
}
func (s *LineInputStmt) String() string { return ToDebugStringStmt(s) }
func (s *LineInputStmt) writeDebugString(w *debugWriter) { w.append("Line Input #") }

// RaiseStmt is `Err.Raise number[, source[, description]]`.
type RaiseStmt struct {
	BaseStmt
	Number      Expr
	Source      Expr
	Description Expr
}

func NewRaiseStmt(id int64, l common.Location, number, source, description Expr) *RaiseStmt {
	return &RaiseStmt{BaseStmt{newBase(id, l)}, number, source, description}
}
func (s *RaiseStmt) String() string { return ToDebugStringStmt(s) }
func (s *RaiseStmt) writeDebugString(w *debugWriter) { w.append("Raise") }

// ResumeMode distinguishes the three Resume spellings.
type ResumeMode int

const (
	ResumeBare ResumeMode = iota
	ResumeNextStmt
	ResumeLabel
)

// ResumeStmt is `Resume` / `Resume Next` / `Resume LABEL`.
type ResumeStmt struct {
	BaseStmt
	Mode  ResumeMode
	Label string
}

func NewResumeStmt(id int64, l common.Location, mode ResumeMode, label string) *ResumeStmt {
	return &ResumeStmt{BaseStmt{newBase(id, l)}, mode, label}
}
func (s *ResumeStmt) String() string { return ToDebugStringStmt(s) }
func (s *ResumeStmt) writeDebugString(w *debugWriter) { w.append("Resume") }
