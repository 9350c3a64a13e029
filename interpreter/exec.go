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
	"strings"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/ast"
	"github.com/macrowalk/macrowalk/runtime"
	"github.com/macrowalk/macrowalk/value"
)

// ctrlKind is the flavor of non-local control flow a statement
// executor hands back to its caller, threaded as a plain return value
// rather than a panic/recover so every intermediate frame gets a
// chance to clean up (Next ByRef writeback, With-scope pop, ...).
type ctrlKind int

const (
	ctrlNone ctrlKind = iota
	ctrlExitFor
	ctrlExitDo
	ctrlExitProc // Exit Sub / Exit Function / Exit Property
	ctrlGoto
	ctrlResume
	ctrlAbort // unhandled error with On Error GoTo 0: stop the procedure cleanly
)

// signal is the non-local control-flow value execStmt/execStmts
// propagate. label carries the Goto/Resume target name; resumeIdx
// carries the top-level statement index Resume (bare or Next) should
// jump back to.
type signal struct {
	kind      ctrlKind
	label     string
	resumeIdx int
}

var noSignal = signal{kind: ctrlNone}

// execCtx bundles the three pieces of positional state every nested
// statement executor needs but none of them owns: top is the
// procedure's flat top-level statement list (constant for the whole
// call, the list Goto/On-Error-GoTo-Label/Resume search for a
// target), topIdx is the index within top of the statement currently
// in flight (updated only by the literal top-level execStmts call and
// inherited unchanged through every nested block), and isTop marks
// that literal top-level invocation, since only it consumes a
// ctrlResume signal or is searched for a label.
//
// Resume therefore resumes at top-level-statement granularity rather
// than VBA's exact erroring line when the error originated inside a
// nested If/For/Do/With/Select block — a deliberate simplification,
// since topIdx is never updated below the top level.
type execCtx struct {
	top    []ast.Stmt
	topIdx int
	isTop  bool
}

func (it *Interpreter) execStmts(env runtime.Env, frame *runtime.Frame, stmts []ast.Stmt, ec execCtx) (signal, error) {
	i := 0
	for i < len(stmts) {
		if ec.isTop {
			select {
			case <-it.ctx.Done():
				it.bctx.Actions.Append(action.New(action.KindOther, "emulation cancelled", map[string]string{"proc": frame.ProcName}))
				return signal{kind: ctrlAbort}, nil
			default:
			}
		}
		cur := ec
		if ec.isTop {
			cur.topIdx = i
		}
		sig, err := it.execStmt(env, frame, stmts[i], cur)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case ctrlNone:
			i++
		case ctrlGoto:
			if ec.isTop {
				if idx, ok := findLabel(stmts, sig.label); ok {
					i = idx
					continue
				}
			}
			return sig, nil
		case ctrlResume:
			if ec.isTop {
				i = sig.resumeIdx
				continue
			}
			return sig, nil
		default:
			return sig, nil
		}
	}
	return noSignal, nil
}

func findLabel(stmts []ast.Stmt, label string) (int, bool) {
	for i, s := range stmts {
		if l, ok := s.(*ast.LabelStmt); ok && value.CaseFold(l.Name) == value.CaseFold(label) {
			return i, true
		}
	}
	return 0, false
}

func (it *Interpreter) execStmt(env runtime.Env, frame *runtime.Frame, st ast.Stmt, ec execCtx) (signal, error) {
	switch s := st.(type) {
	case *ast.LabelStmt:
		return noSignal, nil

	case *ast.DimStmt:
		for _, v := range s.Vars {
			env.Declare(v.Name, it.zeroValueFor(v))
		}
		return noSignal, nil

	case *ast.ReDimStmt:
		for _, v := range s.Vars {
			if len(v.ArrayDims) == 0 {
				continue
			}
			sizeExpr := v.ArrayDims[len(v.ArrayDims)-1]
			sv, err := it.evalExpr(env, frame, sizeExpr)
			if err != nil {
				return noSignal, err
			}
			f, _ := value.ToFloat(sv)
			ub := int(f)
			if c, ok := env.Lookup(v.Name); ok {
				if arr, ok := c.Get().(*value.Array); ok {
					arr.Redim(ub, s.Preserve)
					continue
				}
			}
			env.Declare(v.Name, value.NewArray(make([]value.Val, ub+1)))
		}
		return noSignal, nil

	case *ast.EraseStmt:
		for _, t := range s.Targets {
			if id, ok := t.(*ast.Ident); ok {
				if c, found := env.Lookup(id.Name); found {
					if arr, ok := c.Get().(*value.Array); ok {
						arr.Redim(-1, false)
						continue
					}
					c.Set(value.EmptyValue)
				}
			}
		}
		return noSignal, nil

	case *ast.ConstDecl:
		for _, v := range s.Vars {
			cv, err := it.evalExpr(env, frame, v.Value)
			if err != nil {
				return noSignal, err
			}
			env.Declare(v.Name, cv)
		}
		return noSignal, nil

	case *ast.AssignStmt:
		v, err := it.evalExpr(env, frame, s.Value)
		if err != nil {
			return noSignal, err
		}
		if ev, ok := v.(*value.ErrVal); ok {
			return it.handleRuntimeError(env, frame, ev, ec)
		}
		raised, err := it.assign(env, frame, s.Target, v)
		if err != nil {
			return noSignal, err
		}
		if raised != nil {
			return it.handleRuntimeError(env, frame, raised, ec)
		}
		return noSignal, nil

	case *ast.ExprStmt:
		v, err := it.evalExpr(env, frame, s.X)
		if err != nil {
			return noSignal, err
		}
		if ev, ok := v.(*value.ErrVal); ok {
			return it.handleRuntimeError(env, frame, ev, ec)
		}
		return noSignal, nil

	case *ast.CallStmt:
		v, err := it.evalExpr(env, frame, s.Call)
		if err != nil {
			return noSignal, err
		}
		if ev, ok := v.(*value.ErrVal); ok {
			return it.handleRuntimeError(env, frame, ev, ec)
		}
		return noSignal, nil

	case *ast.IfStmt:
		cv, err := it.evalExpr(env, frame, s.Cond)
		if err != nil {
			return noSignal, err
		}
		if ev, ok := cv.(*value.ErrVal); ok {
			return it.handleRuntimeError(env, frame, ev, ec)
		}
		if value.Truthy(cv) {
			return it.execStmts(env, frame, s.Then, nested(ec))
		}
		for _, elseIf := range s.ElseIfs {
			ev, err := it.evalExpr(env, frame, elseIf.Cond)
			if err != nil {
				return noSignal, err
			}
			if errv, ok := ev.(*value.ErrVal); ok {
				return it.handleRuntimeError(env, frame, errv, ec)
			}
			if value.Truthy(ev) {
				return it.execStmts(env, frame, elseIf.Body, nested(ec))
			}
		}
		if s.Else != nil {
			return it.execStmts(env, frame, s.Else, nested(ec))
		}
		return noSignal, nil

	case *ast.ForStmt:
		return it.execFor(env, frame, s, ec)

	case *ast.ForEachStmt:
		return it.execForEach(env, frame, s, ec)

	case *ast.WhileStmt:
		return it.execWhile(env, frame, s, ec)

	case *ast.DoStmt:
		return it.execDo(env, frame, s, ec)

	case *ast.WithStmt:
		tv, err := it.evalExpr(env, frame, s.Target)
		if err != nil {
			return noSignal, err
		}
		if ev, ok := tv.(*value.ErrVal); ok {
			return it.handleRuntimeError(env, frame, ev, ec)
		}
		withEnv := runtime.NewWithEnv(env, tv)
		return it.execStmts(withEnv, frame, s.Body, nested(ec))

	case *ast.SelectCaseStmt:
		return it.execSelectCase(env, frame, s, ec)

	case *ast.OnErrorStmt:
		switch s.Mode {
		case ast.OnErrorGotoZero:
			frame.ErrorMode = runtime.ErrorModeGotoZero
			frame.ErrorLabel = ""
		case ast.OnErrorResumeNext:
			frame.ErrorMode = runtime.ErrorModeResumeNext
		case ast.OnErrorGotoLabel:
			frame.ErrorMode = runtime.ErrorModeGotoLabel
			frame.ErrorLabel = s.Label
		}
		return noSignal, nil

	case *ast.GotoStmt:
		return signal{kind: ctrlGoto, label: s.Label}, nil

	case *ast.ResumeStmt:
		switch s.Mode {
		case ast.ResumeBare:
			return signal{kind: ctrlResume, resumeIdx: frame.ResumePoint}, nil
		case ast.ResumeNextStmt:
			return signal{kind: ctrlResume, resumeIdx: frame.ResumePoint + 1}, nil
		case ast.ResumeLabel:
			return signal{kind: ctrlGoto, label: s.Label}, nil
		}
		return noSignal, nil

	case *ast.ExitStmt:
		switch s.Kind {
		case ast.ExitFor:
			return signal{kind: ctrlExitFor}, nil
		case ast.ExitDo:
			return signal{kind: ctrlExitDo}, nil
		default:
			return signal{kind: ctrlExitProc}, nil
		}

	case *ast.RaiseStmt:
		code := 5
		if s.Number != nil {
			nv, err := it.evalExpr(env, frame, s.Number)
			if err != nil {
				return noSignal, err
			}
			if f, ok := value.ToFloat(nv); ok {
				code = int(f)
			}
		}
		msg := ""
		if s.Description != nil {
			dv, err := it.evalExpr(env, frame, s.Description)
			if err != nil {
				return noSignal, err
			}
			msg = value.ToDisplayString(dv)
		}
		return it.handleRuntimeError(env, frame, value.NewErrCode(code, "%s", msg), ec)

	case *ast.OpenStmt:
		return it.execOpen(env, frame, s, ec)

	case *ast.CloseStmt:
		return it.execClose(env, frame, s, ec)

	case *ast.PrintStmt:
		return it.execWrite(env, frame, s.Handle, s.Args, false, ec)

	case *ast.WriteStmt:
		return it.execWrite(env, frame, s.Handle, s.Args, true, ec)

	case *ast.LineInputStmt:
		return it.execLineInput(env, frame, s, ec)

	default:
		return noSignal, nil
	}
}

// nested returns ec unchanged except that isTop is always false: a
// nested block's own execStmts call never consumes Resume/label
// targets itself, it only bubbles them up to the top-level loop.
func nested(ec execCtx) execCtx {
	return execCtx{top: ec.top, topIdx: ec.topIdx, isTop: false}
}

// handleRuntimeError applies the active On Error mode to a VBA-level
// runtime error value: Resume Next swallows it and lets execution fall
// through to the next statement, On Error GoTo label jumps there via
// the ordinary Goto-bubbling mechanism, and the default mode (or an
// explicit On Error GoTo 0) logs the unhandled error and aborts the
// procedure cleanly rather than crashing the whole analysis run.
func (it *Interpreter) handleRuntimeError(env runtime.Env, frame *runtime.Frame, ev *value.ErrVal, ec execCtx) (signal, error) {
	frame.LastError = ev
	frame.ResumePoint = ec.topIdx
	switch frame.ErrorMode {
	case runtime.ErrorModeResumeNext:
		return noSignal, nil
	case runtime.ErrorModeGotoLabel:
		return signal{kind: ctrlGoto, label: frame.ErrorLabel}, nil
	default:
		it.bctx.Actions.Append(action.New(action.KindOther, "unhandled error in "+frame.ProcName+": "+ev.Message, map[string]string{
			"proc":    frame.ProcName,
			"code":    value.ToDisplayString(value.Int(int64(ev.Code))),
			"message": ev.Message,
		}))
		return signal{kind: ctrlAbort}, nil
	}
}

// assign resolves an AssignStmt/Set target and writes v into it: a
// bare identifier declares-or-overwrites its cell, a Member writes a
// field through the active With target or logs nothing further for an
// Object (field writes on COM stubs aren't modeled), and a
// CallOrIndex target is always array-element assignment (the only
// left-hand-side shape with args VBA allows). Returns a non-nil
// *value.ErrVal instead of a Go error for VBA-level failures like
// subscript-out-of-range, consistent with every other statement
// executor's error-value convention.
func (it *Interpreter) assign(env runtime.Env, frame *runtime.Frame, target ast.Expr, v value.Val) (*value.ErrVal, error) {
	switch t := target.(type) {
	case *ast.Ident:
		if c, ok := env.Lookup(t.Name); ok {
			c.Set(v)
		} else {
			env.Declare(t.Name, v)
		}
		return nil, nil

	case *ast.Member:
		if t.Target == nil {
			// Bare `.Field = v` inside a With block: no storage model
			// for object fields, so this is a documented no-op.
			return nil, nil
		}
		tv, err := it.evalExpr(env, frame, t.Target)
		if err != nil {
			return nil, err
		}
		if ev, ok := tv.(*value.ErrVal); ok {
			return ev, nil
		}
		// Field writes against a resolved Object/Unresolved value have
		// no storage model; the write is acknowledged and dropped.
		return nil, nil

	case *ast.CallOrIndex:
		id, ok := t.Callee.(*ast.Ident)
		if !ok {
			return nil, nil
		}
		c, ok := env.Lookup(id.Name)
		if !ok {
			return nil, nil
		}
		arr, ok := c.Get().(*value.Array)
		if !ok || len(t.Args) == 0 {
			return nil, nil
		}
		iv, err := it.evalExpr(env, frame, t.Args[0])
		if err != nil {
			return nil, err
		}
		if ev, ok := iv.(*value.ErrVal); ok {
			return ev, nil
		}
		f, _ := value.ToFloat(iv)
		idx := int(f) - arr.LBound
		if idx < 0 || idx >= len(arr.Elements) {
			return value.NewErrCode(9, "subscript out of range"), nil
		}
		arr.Elements[idx] = v
		return nil, nil

	default:
		return nil, nil
	}
}

func (it *Interpreter) execFor(env runtime.Env, frame *runtime.Frame, s *ast.ForStmt, ec execCtx) (signal, error) {
	fromV, err := it.evalExpr(env, frame, s.From)
	if err != nil {
		return noSignal, err
	}
	toV, err := it.evalExpr(env, frame, s.To)
	if err != nil {
		return noSignal, err
	}
	step := 1.0
	if s.Step != nil {
		sv, err := it.evalExpr(env, frame, s.Step)
		if err != nil {
			return noSignal, err
		}
		if f, ok := value.ToFloat(sv); ok {
			step = f
		}
	}
	if step == 0 {
		it.bctx.Actions.Append(action.New(action.KindOther, "For loop with Step 0 truncated", map[string]string{"counter": s.Counter}))
		return noSignal, nil
	}
	from, _ := value.ToFloat(fromV)
	to, _ := value.ToFloat(toV)

	cell := env.Declare(s.Counter, value.Double(from))
	iterations := 0
	for (step > 0 && from <= to) || (step < 0 && from >= to) {
		iterations++
		if iterations > it.opts.LoopIterationLimit {
			it.bctx.Actions.Append(action.New(action.KindOther, "loop iteration limit reached", map[string]string{"counter": s.Counter}))
			break
		}
		sig, err := it.execStmts(env, frame, s.Body, nested(ec))
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case ctrlExitFor:
			return noSignal, nil
		case ctrlNone:
		default:
			return sig, nil
		}
		from += step
		cell.Set(value.Double(from))
	}
	return noSignal, nil
}

func (it *Interpreter) execForEach(env runtime.Env, frame *runtime.Frame, s *ast.ForEachStmt, ec execCtx) (signal, error) {
	cv, err := it.evalExpr(env, frame, s.Collection)
	if err != nil {
		return noSignal, err
	}
	arr, ok := cv.(*value.Array)
	if !ok {
		return noSignal, nil
	}
	cell := env.Declare(s.Var, value.EmptyValue)
	iterations := 0
	for _, el := range arr.Elements {
		iterations++
		if iterations > it.opts.LoopIterationLimit {
			it.bctx.Actions.Append(action.New(action.KindOther, "loop iteration limit reached", map[string]string{"var": s.Var}))
			break
		}
		cell.Set(el)
		sig, err := it.execStmts(env, frame, s.Body, nested(ec))
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case ctrlExitFor:
			return noSignal, nil
		case ctrlNone:
		default:
			return sig, nil
		}
	}
	return noSignal, nil
}

func (it *Interpreter) execWhile(env runtime.Env, frame *runtime.Frame, s *ast.WhileStmt, ec execCtx) (signal, error) {
	iterations := 0
	for {
		cv, err := it.evalExpr(env, frame, s.Cond)
		if err != nil {
			return noSignal, err
		}
		if !value.Truthy(cv) {
			return noSignal, nil
		}
		iterations++
		if iterations > it.opts.LoopIterationLimit {
			it.bctx.Actions.Append(action.New(action.KindOther, "loop iteration limit reached", nil))
			return noSignal, nil
		}
		sig, err := it.execStmts(env, frame, s.Body, nested(ec))
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case ctrlExitDo:
			return noSignal, nil
		case ctrlNone:
		default:
			return sig, nil
		}
	}
}

func (it *Interpreter) execDo(env runtime.Env, frame *runtime.Frame, s *ast.DoStmt, ec execCtx) (signal, error) {
	iterations := 0
	test := func() (bool, error) {
		if s.Cond == nil {
			return true, nil
		}
		cv, err := it.evalExpr(env, frame, s.Cond)
		if err != nil {
			return false, err
		}
		truthy := value.Truthy(cv)
		if s.Until {
			return !truthy, nil
		}
		return truthy, nil
	}
	for {
		if s.PreTest {
			ok, err := test()
			if err != nil {
				return noSignal, err
			}
			if !ok {
				return noSignal, nil
			}
		}
		iterations++
		if iterations > it.opts.LoopIterationLimit {
			it.bctx.Actions.Append(action.New(action.KindOther, "loop iteration limit reached", nil))
			return noSignal, nil
		}
		sig, err := it.execStmts(env, frame, s.Body, nested(ec))
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case ctrlExitDo:
			return noSignal, nil
		case ctrlNone:
		default:
			return sig, nil
		}
		if !s.PreTest {
			ok, err := test()
			if err != nil {
				return noSignal, err
			}
			if !ok {
				return noSignal, nil
			}
		}
	}
}

func (it *Interpreter) execSelectCase(env runtime.Env, frame *runtime.Frame, s *ast.SelectCaseStmt, ec execCtx) (signal, error) {
	sel, err := it.evalExpr(env, frame, s.Selector)
	if err != nil {
		return noSignal, err
	}
	if ev, ok := sel.(*value.ErrVal); ok {
		return it.handleRuntimeError(env, frame, ev, ec)
	}
	for _, c := range s.Cases {
		for _, valExpr := range c.Values {
			matched, err := it.matchesCase(env, frame, sel, valExpr)
			if err != nil {
				return noSignal, err
			}
			if matched {
				return it.execStmts(env, frame, c.Body, nested(ec))
			}
		}
	}
	if s.Else != nil {
		return it.execStmts(env, frame, s.Else, nested(ec))
	}
	return noSignal, nil
}

// matchesCase evaluates one Case value expression against the
// selector, special-casing the two synthetic Binary shapes
// parser.parseCaseValues desugars `Case Is op x` and `Case a To b`
// into: a Binary with Left == nil means "apply Op between the
// selector and Right", and a Binary with Op == "To" means "selector
// falls between Left and Right inclusive". Anything else is an
// ordinary expression compared to the selector for equality.
func (it *Interpreter) matchesCase(env runtime.Env, frame *runtime.Frame, sel value.Val, valExpr ast.Expr) (bool, error) {
	if b, ok := valExpr.(*ast.Binary); ok {
		if b.Left == nil {
			rv, err := it.evalExpr(env, frame, b.Right)
			if err != nil {
				return false, err
			}
			return value.Truthy(applyComparison(b.Op, sel, rv)), nil
		}
		if b.Op == "To" {
			lo, err := it.evalExpr(env, frame, b.Left)
			if err != nil {
				return false, err
			}
			hi, err := it.evalExpr(env, frame, b.Right)
			if err != nil {
				return false, err
			}
			geLo := applyComparison(ast.OpGe, sel, lo)
			leHi := applyComparison(ast.OpLe, sel, hi)
			return value.Truthy(geLo) && value.Truthy(leHi), nil
		}
	}
	v, err := it.evalExpr(env, frame, valExpr)
	if err != nil {
		return false, err
	}
	return value.Truthy(applyComparison(ast.OpEq, sel, v)), nil
}

func (it *Interpreter) execOpen(env runtime.Env, frame *runtime.Frame, s *ast.OpenStmt, ec execCtx) (signal, error) {
	pv, err := it.evalExpr(env, frame, s.Path)
	if err != nil {
		return noSignal, err
	}
	if ev, ok := pv.(*value.ErrVal); ok {
		return it.handleRuntimeError(env, frame, ev, ec)
	}
	hv, err := it.evalExpr(env, frame, s.Handle)
	if err != nil {
		return noSignal, err
	}
	f, _ := value.ToFloat(hv)
	it.files.open(int(f), value.ToDisplayString(pv), s.Mode)
	return noSignal, nil
}

func (it *Interpreter) execClose(env runtime.Env, frame *runtime.Frame, s *ast.CloseStmt, ec execCtx) (signal, error) {
	if len(s.Handles) == 0 {
		it.files.closeAll(it.bctx)
		return noSignal, nil
	}
	for _, h := range s.Handles {
		hv, err := it.evalExpr(env, frame, h)
		if err != nil {
			return noSignal, err
		}
		f, _ := value.ToFloat(hv)
		it.files.close(it.bctx, int(f))
	}
	return noSignal, nil
}

func (it *Interpreter) execWrite(env runtime.Env, frame *runtime.Frame, handle ast.Expr, args []ast.Expr, quoteStrings bool, ec execCtx) (signal, error) {
	if handle == nil {
		// Print/Write with no # clause targets the immediate window,
		// which has no observable effect on the analysis output.
		return noSignal, nil
	}
	hv, err := it.evalExpr(env, frame, handle)
	if err != nil {
		return noSignal, err
	}
	f, _ := value.ToFloat(hv)
	h, ok := it.files.get(int(f))
	if !ok {
		return it.handleRuntimeError(env, frame, value.NewErrCode(52, "bad file name or number"), ec)
	}
	parts := make([]string, 0, len(args))
	for _, a := range args {
		v, err := it.evalExpr(env, frame, a)
		if err != nil {
			return noSignal, err
		}
		if ev, ok := v.(*value.ErrVal); ok {
			return it.handleRuntimeError(env, frame, ev, ec)
		}
		if quoteStrings {
			if sv, ok := v.(value.String); ok {
				parts = append(parts, `"`+sv.Text()+`"`)
				continue
			}
		}
		parts = append(parts, v.String())
	}
	sep := " "
	if quoteStrings {
		sep = ","
	}
	h.buf.WriteString(strings.Join(parts, sep))
	h.buf.WriteString("\r\n")
	return noSignal, nil
}

func (it *Interpreter) execLineInput(env runtime.Env, frame *runtime.Frame, s *ast.LineInputStmt, ec execCtx) (signal, error) {
	hv, err := it.evalExpr(env, frame, s.Handle)
	if err != nil {
		return noSignal, err
	}
	f, _ := value.ToFloat(hv)
	n := int(f)
	h, ok := it.files.get(n)

	var text value.Val
	switch {
	case ok && h.lineIdx < len(h.lines):
		text = value.NewString(h.lines[h.lineIdx])
		h.lineIdx++
	case ok:
		return it.handleRuntimeError(env, frame, value.NewErrCode(62, "input past end of file"), ec)
	default:
		text = value.NewUnresolved("LineInput(#" + value.ToDisplayString(value.Int(int64(n))) + ")")
	}

	raised, err := it.assign(env, frame, s.Target, text)
	if err != nil {
		return noSignal, err
	}
	if raised != nil {
		return it.handleRuntimeError(env, frame, raised, ec)
	}
	return noSignal, nil
}
