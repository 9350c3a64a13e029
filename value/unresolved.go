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

package value

// Unresolved is the first-class symbolic-unknown variant described in
// spec.md §9: rather than aborting on an undefined identifier or an
// unmodeled builtin, macrowalk carries the expression's printed form
// forward so obfuscated macros that merely read uninitialized globals or
// call unmodeled APIs still surface observable evidence in the action log
// and in any derived string.
type Unresolved struct {
	// Expr is the printed source form of the expression that could not be
	// resolved, e.g. "Environ(\"USERPROFILE\")" or "SomeUndeclaredGlobal".
	Expr string
}

func (u *Unresolved) Kind() Kind     { return KindUnresolved }
func (u *Unresolved) String() string { return u.Expr }

// NewUnresolved wraps a printed expression as a symbolic-unknown value.
func NewUnresolved(expr string) *Unresolved {
	return &Unresolved{Expr: expr}
}

// Arithmetic and concatenation on an Unresolved never fails: it widens the
// symbolic text instead, which is how an obfuscated
// `Environ("USERPROFILE") & "\a.exe"` ends up as the single symbolic
// string `%USERPROFILE%\a.exe` by the time Environ (in builtins) has
// already rendered its own printed form.

func (u *Unresolved) Add(other Val) Val {
	return NewUnresolved(u.Expr + " + " + ToDisplayString(other))
}

func (u *Unresolved) Subtract(other Val) Val {
	return NewUnresolved(u.Expr + " - " + ToDisplayString(other))
}

func (u *Unresolved) Multiply(other Val) Val {
	return NewUnresolved(u.Expr + " * " + ToDisplayString(other))
}

func (u *Unresolved) Divide(other Val) Val {
	return NewUnresolved(u.Expr + " / " + ToDisplayString(other))
}

func (u *Unresolved) Concat(other Val) Val {
	return NewUnresolved(u.Expr + ToDisplayString(other))
}

func (u *Unresolved) Negate() Val {
	return NewUnresolved("-" + u.Expr)
}

func (u *Unresolved) Compare(other Val) Val {
	return NullValue
}
