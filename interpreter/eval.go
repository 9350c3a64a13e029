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
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/macrowalk/macrowalk/ast"
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/runtime"
	"github.com/macrowalk/macrowalk/value"
)

// evalExpr is the full expression evaluator: every ast.Expr concrete
// type dispatches here, mirroring execStmt's statement-side switch.
// A VBA-level runtime error is returned as a *value.ErrVal with a nil
// Go error, consistent with builtins.Func's convention; a Go error
// return is reserved for interpreter-internal failures (recursion,
// future cancellation support).
func (it *Interpreter) evalExpr(env runtime.Env, frame *runtime.Frame, e ast.Expr) (value.Val, error) {
	switch x := e.(type) {
	case *ast.IntLit:
		return value.Int(x.Value), nil
	case *ast.DoubleLit:
		return value.Double(x.Value), nil
	case *ast.StringLit:
		return value.NewString(x.Value), nil
	case *ast.BoolLit:
		return value.Bool(x.Value), nil
	case *ast.NullLit:
		return value.NullValue, nil
	case *ast.EmptyLit:
		return value.EmptyValue, nil
	case *ast.DateLit:
		return evalDateLit(x.Text), nil
	case *ast.Ident:
		return it.evalIdent(env, frame, x), nil
	case *ast.Member:
		return it.evalMember(env, frame, x)
	case *ast.CallOrIndex:
		return it.evalCallOrIndex(env, frame, x)
	case *ast.Unary:
		return it.evalUnary(env, frame, x)
	case *ast.Binary:
		return it.evalBinary(env, frame, x)
	case *ast.ArrayLit:
		return it.evalArrayLit(env, frame, x)
	case *ast.ErrorExpr:
		return value.NewUnresolved("<parse error>"), nil
	default:
		return value.NewUnresolved(e.String()), nil
	}
}

// evalIdent special-cases the bare name "Err" to the active error
// object's view and otherwise auto-vivifies: reading an undeclared
// name (common for implicitly-typed loop counters and module-level
// globals the parser never saw a Dim for) yields Empty and declares
// it, rather than failing.
func (it *Interpreter) evalIdent(env runtime.Env, frame *runtime.Frame, id *ast.Ident) value.Val {
	if value.CaseFold(id.Name) == "err" {
		if frame.LastError != nil {
			return frame.LastError
		}
		return value.NewErrCode(0, "")
	}
	if c, ok := env.Lookup(id.Name); ok {
		return c.Get()
	}
	env.Declare(id.Name, value.EmptyValue)
	return value.EmptyValue
}

// evalMember resolves a.b against a With target (a == nil), the Err
// object's Number/Description/Source properties, a dispatched Object
// method/property, or — for anything else, including Unresolved
// receivers — an Unresolved placeholder naming the access.
func (it *Interpreter) evalMember(env runtime.Env, frame *runtime.Frame, m *ast.Member) (value.Val, error) {
	if id, ok := m.Target.(*ast.Ident); ok && value.CaseFold(id.Name) == "err" {
		errv := frame.LastError
		if errv == nil {
			errv = value.NewErrCode(0, "")
		}
		switch value.CaseFold(m.Field) {
		case "number":
			return value.Int(int64(errv.Code)), nil
		case "description":
			return value.NewString(errv.Message), nil
		case "source":
			return value.NewString(frame.ProcName), nil
		}
	}

	var targetVal value.Val
	if m.Target == nil {
		targetVal = runtime.ActiveWith(env)
		if targetVal == nil {
			return value.NewUnresolved("." + m.Field), nil
		}
	} else {
		tv, err := it.evalExpr(env, frame, m.Target)
		if err != nil {
			return nil, err
		}
		targetVal = tv
	}
	if ev, ok := targetVal.(*value.ErrVal); ok {
		return ev, nil
	}

	switch tv := targetVal.(type) {
	case value.Object:
		return builtins.DispatchObjectMethod(it.bctx, tv, m.Field, nil)
	case *value.Unresolved:
		return value.NewUnresolved(tv.Expr + "." + m.Field), nil
	default:
		return value.NewUnresolved(fmt.Sprintf("%s.%s", value.ToDisplayString(tv), m.Field)), nil
	}
}

// argSlotsFor evaluates argument expressions left to right, capturing
// the caller's live cell for any argument that is a bare identifier so
// ByRef parameters can alias directly onto it.
func (it *Interpreter) argSlotsFor(env runtime.Env, frame *runtime.Frame, exprs []ast.Expr) ([]argSlot, error) {
	out := make([]argSlot, len(exprs))
	for i, e := range exprs {
		v, err := it.evalExpr(env, frame, e)
		if err != nil {
			return nil, err
		}
		slot := argSlot{val: v}
		if id, ok := e.(*ast.Ident); ok {
			if c, found := env.Lookup(id.Name); found {
				slot.cell = c
			}
		}
		out[i] = slot
	}
	return out, nil
}

func argSlotVals(slots []argSlot) []value.Val {
	out := make([]value.Val, len(slots))
	for i, s := range slots {
		out[i] = s.val
	}
	return out
}

// evalCallOrIndex disambiguates the parser's single CallOrIndex node
// (array indexing and procedure calls are syntactically identical in
// VBA) by checking, for an Ident callee, whether the name already
// holds a *value.Array; otherwise it tries a user procedure, then a
// builtin, then falls back to Unresolved for anything unrecognized —
// the concrete mechanism behind "unmodeled call propagates as
// Unresolved". A Member callee always means an object method call
// (or Err.Raise/Err.Clear, special-cased here since they mutate frame
// state Err's synthetic Member can't reach from evalMember).
func (it *Interpreter) evalCallOrIndex(env runtime.Env, frame *runtime.Frame, c *ast.CallOrIndex) (value.Val, error) {
	if m, ok := c.Callee.(*ast.Member); ok {
		if id, ok := m.Target.(*ast.Ident); ok && value.CaseFold(id.Name) == "err" {
			switch value.CaseFold(m.Field) {
			case "raise":
				args, err := it.argSlotsFor(env, frame, c.Args)
				if err != nil {
					return nil, err
				}
				vals := argSlotVals(args)
				code := 5
				if len(vals) > 0 {
					if f, ok := value.ToFloat(vals[0]); ok {
						code = int(f)
					}
				}
				msg := ""
				if len(vals) > 2 {
					msg = value.ToDisplayString(vals[2])
				}
				errv := value.NewErrCode(code, "%s", msg)
				frame.LastError = errv
				return errv, nil
			case "clear":
				frame.LastError = nil
				return value.EmptyValue, nil
			}
		}
		return it.evalMemberCall(env, frame, m, c.Args)
	}

	id, ok := c.Callee.(*ast.Ident)
	if !ok {
		return value.NewUnresolved(c.String()), nil
	}

	if cell, ok := env.Lookup(id.Name); ok {
		if arr, ok := cell.Get().(*value.Array); ok {
			return it.indexArray(env, frame, arr, c.Args)
		}
	}

	args, err := it.argSlotsFor(env, frame, c.Args)
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		if ev, ok := a.val.(*value.ErrVal); ok {
			return ev, nil
		}
	}

	key := value.CaseFold(id.Name)
	if entry, ok := it.procs[key]; ok {
		return it.callProc(entry, args)
	}
	if fn, ok := it.registry.Lookup(id.Name); ok {
		return fn(it.bctx, argSlotVals(args))
	}
	return value.NewUnresolved(printCall(id.Name, argSlotVals(args))), nil
}

func (it *Interpreter) indexArray(env runtime.Env, frame *runtime.Frame, arr *value.Array, argExprs []ast.Expr) (value.Val, error) {
	if len(argExprs) == 0 {
		return arr, nil
	}
	iv, err := it.evalExpr(env, frame, argExprs[0])
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
	return arr.Elements[idx], nil
}

func (it *Interpreter) evalMemberCall(env runtime.Env, frame *runtime.Frame, m *ast.Member, argExprs []ast.Expr) (value.Val, error) {
	var targetVal value.Val
	if m.Target == nil {
		targetVal = runtime.ActiveWith(env)
		if targetVal == nil {
			targetVal = value.NewUnresolved("." + m.Field)
		}
	} else {
		tv, err := it.evalExpr(env, frame, m.Target)
		if err != nil {
			return nil, err
		}
		targetVal = tv
	}
	if ev, ok := targetVal.(*value.ErrVal); ok {
		return ev, nil
	}

	args, err := it.argSlotsFor(env, frame, argExprs)
	if err != nil {
		return nil, err
	}
	vals := argSlotVals(args)
	for _, v := range vals {
		if ev, ok := v.(*value.ErrVal); ok {
			return ev, nil
		}
	}

	switch tv := targetVal.(type) {
	case value.Object:
		return builtins.DispatchObjectMethod(it.bctx, tv, m.Field, vals)
	case *value.Unresolved:
		return value.NewUnresolved(tv.Expr + "." + printCall(m.Field, vals)), nil
	default:
		return value.NewUnresolved(fmt.Sprintf("%s.%s", value.ToDisplayString(tv), printCall(m.Field, vals))), nil
	}
}

func printCall(name string, vals []value.Val) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(value.ToDisplayString(v))
	}
	b.WriteByte(')')
	return b.String()
}

func (it *Interpreter) evalUnary(env runtime.Env, frame *runtime.Frame, u *ast.Unary) (value.Val, error) {
	v, err := it.evalExpr(env, frame, u.Operand)
	if err != nil {
		return nil, err
	}
	if ev, ok := v.(*value.ErrVal); ok {
		return ev, nil
	}
	switch u.Op {
	case ast.OpNeg:
		if n, ok := v.(value.Negator); ok {
			return n.Negate(), nil
		}
		return value.NewErr("type mismatch in unary '-'"), nil
	case ast.OpNot:
		return value.Bool(!value.Truthy(v)), nil
	default:
		return value.NewUnresolved(u.Op + value.ToDisplayString(v)), nil
	}
}

func (it *Interpreter) evalBinary(env runtime.Env, frame *runtime.Frame, b *ast.Binary) (value.Val, error) {
	lv, err := it.evalExpr(env, frame, b.Left)
	if err != nil {
		return nil, err
	}
	if ev, ok := lv.(*value.ErrVal); ok {
		return ev, nil
	}
	rv, err := it.evalExpr(env, frame, b.Right)
	if err != nil {
		return nil, err
	}
	if ev, ok := rv.(*value.ErrVal); ok {
		return ev, nil
	}
	return applyBinary(b.Op, lv, rv), nil
}

// applyBinary dispatches every ast/operators.go constant to its
// value-domain trait or, for the logical/identity/pattern operators
// value has no trait for (And/Or/Xor/Eqv/Imp/Is/Like), a direct
// implementation here.
func applyBinary(op string, l, r value.Val) value.Val {
	switch op {
	case ast.OpAdd:
		if a, ok := l.(value.Adder); ok {
			return a.Add(r)
		}
		return value.NewErr("type mismatch in '+'")
	case ast.OpSub:
		if a, ok := l.(value.Subtractor); ok {
			return a.Subtract(r)
		}
		return value.NewErr("type mismatch in '-'")
	case ast.OpMul:
		if a, ok := l.(value.Multiplier); ok {
			return a.Multiply(r)
		}
		return value.NewErr("type mismatch in '*'")
	case ast.OpDiv:
		if a, ok := l.(value.Divider); ok {
			return a.Divide(r)
		}
		return value.NewErr("type mismatch in '/'")
	case ast.OpIntDiv:
		if a, ok := l.(value.IntDivider); ok {
			return a.IntDivide(r)
		}
		return value.NewErr("type mismatch in '\\'")
	case ast.OpMod:
		if a, ok := l.(value.Modder); ok {
			return a.Mod(r)
		}
		return value.NewErr("type mismatch in 'Mod'")
	case ast.OpPow:
		lf, ok1 := value.ToFloat(l)
		rf, ok2 := value.ToFloat(r)
		if !ok1 || !ok2 {
			return value.NewErr("type mismatch in '^'")
		}
		return value.Double(math.Pow(lf, rf))
	case ast.OpConcat:
		if c, ok := l.(value.Concatenator); ok {
			return c.Concat(r)
		}
		return value.NewString(value.ToDisplayString(l) + value.ToDisplayString(r))
	case ast.OpAnd:
		return value.Bool(value.Truthy(l) && value.Truthy(r))
	case ast.OpOr:
		return value.Bool(value.Truthy(l) || value.Truthy(r))
	case ast.OpXor:
		return value.Bool(value.Truthy(l) != value.Truthy(r))
	case ast.OpEqv:
		return value.Bool(value.Truthy(l) == value.Truthy(r))
	case ast.OpImp:
		return value.Bool(!value.Truthy(l) || value.Truthy(r))
	case ast.OpIs:
		lo, lok := l.(value.Object)
		ro, rok := r.(value.Object)
		if lok && rok {
			return value.Bool(lo.ID == ro.ID)
		}
		return value.Bool(false)
	case ast.OpLike:
		ls, ok := l.(value.String)
		if !ok {
			return value.NewErr("type mismatch in 'Like'")
		}
		return value.Bool(ls.Like(value.ToDisplayString(r)))
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return applyComparison(op, l, r)
	default:
		return value.NewUnresolved(fmt.Sprintf("%s %s %s", value.ToDisplayString(l), op, value.ToDisplayString(r)))
	}
}

// applyComparison centralizes the Comparer-trait dispatch so both
// evalBinary and execSelectCase's Select-Case matching (Is/To clauses)
// share one comparison implementation.
func applyComparison(op string, l, r value.Val) value.Val {
	cmp, ok := l.(value.Comparer)
	if !ok {
		return value.NewErr("type mismatch in comparison")
	}
	res := cmp.Compare(r)
	if ev, ok := res.(*value.ErrVal); ok {
		return ev
	}
	if _, isNull := res.(value.Null); isNull {
		return value.NullValue
	}
	n, ok := res.(value.Int)
	if !ok {
		return value.NewErr("type mismatch in comparison")
	}
	switch op {
	case ast.OpEq:
		return value.Bool(n == 0)
	case ast.OpNe:
		return value.Bool(n != 0)
	case ast.OpLt:
		return value.Bool(n < 0)
	case ast.OpLe:
		return value.Bool(n <= 0)
	case ast.OpGt:
		return value.Bool(n > 0)
	case ast.OpGe:
		return value.Bool(n >= 0)
	default:
		return value.NewErr("unknown comparison operator " + op)
	}
}

func (it *Interpreter) evalArrayLit(env runtime.Env, frame *runtime.Frame, a *ast.ArrayLit) (value.Val, error) {
	elems := make([]value.Val, len(a.Elements))
	for i, e := range a.Elements {
		v, err := it.evalExpr(env, frame, e)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewArray(elems), nil
}

// evalDateLit parses the handful of date/time layouts VBA's #...#
// literal commonly spells out; anything it doesn't recognize falls
// back to an Unresolved value carrying the original text rather than
// failing the whole expression.
func evalDateLit(text string) value.Val {
	text = strings.TrimSpace(text)
	layouts := []string{
		"1/2/2006",
		"1/2/2006 3:04:05 PM",
		"1/2/2006 15:04:05",
		"2006-01-02",
		"3:04:05 PM",
		"15:04:05",
		"1/2/06",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return value.NewDate(t)
		}
	}
	return value.NewUnresolved("#" + text + "#")
}
