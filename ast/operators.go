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

// Operator names, grounded on the small self-contained operators.go the
// teacher keeps alongside its AST package, generalized from CEL's
// operator set to spec.md §3's VBA expression grammar.
const (
	OpAdd    = "+"
	OpSub    = "-"
	OpMul    = "*"
	OpDiv    = "/"
	OpIntDiv = "\\"
	OpMod    = "Mod"
	OpPow    = "^"
	OpConcat = "&"

	OpAnd = "And"
	OpOr  = "Or"
	OpNot = "Not"
	OpXor = "Xor"
	OpEqv = "Eqv"
	OpImp = "Imp"

	OpEq   = "="
	OpNe   = "<>"
	OpLt   = "<"
	OpLe   = "<="
	OpGt   = ">"
	OpGe   = ">="
	OpIs   = "Is"
	OpLike = "Like"

	OpNeg = "unary-"
)

// IsComparison reports whether op is one of the comparison operators.
func IsComparison(op string) bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpIs, OpLike:
		return true
	}
	return false
}
