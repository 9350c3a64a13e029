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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrowalk/macrowalk/common"
)

func TestIsComparisonRecognizesEveryComparisonOperatorOnly(t *testing.T) {
	for _, op := range []string{OpEq, OpNe, OpLt, OpLe, OpGt, OpGe, OpIs, OpLike} {
		assert.True(t, IsComparison(op), "%q should be a comparison operator", op)
	}
	for _, op := range []string{OpAdd, OpSub, OpAnd, OpConcat, OpNeg} {
		assert.False(t, IsComparison(op), "%q should not be a comparison operator", op)
	}
}

func TestToDebugStringRendersBinaryExprTree(t *testing.T) {
	loc := common.NoLocation
	left := NewIntLit(1, loc, 1)
	right := NewIntLit(2, loc, 2)
	bin := NewBinary(3, loc, OpAdd, left, right)

	s := ToDebugString(bin)
	assert.Contains(t, s, "+")
	assert.Contains(t, s, "1")
	assert.Contains(t, s, "2")
}

func TestToDebugStringStmtRendersAssignment(t *testing.T) {
	loc := common.NoLocation
	target := NewIdent(1, loc, "x")
	value := NewIntLit(2, loc, 42)
	assign := NewAssignStmt(3, loc, target, value, false)

	s := ToDebugStringStmt(assign)
	assert.Contains(t, s, "x")
	assert.Contains(t, s, "42")
}
