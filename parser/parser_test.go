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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrowalk/macrowalk/ast"
	"github.com/macrowalk/macrowalk/common"
)

func TestParseExprRespectsOperatorPrecedence(t *testing.T) {
	p := New(common.NewTextSource("<test>", "1 + 2 * 3"))
	e := p.ParseExpr()
	assert.True(t, p.Errors().Empty())

	bin, ok := e.(*ast.Binary)
	if !assert.True(t, ok, "expected a Binary at the top of 1 + 2 * 3") {
		return
	}
	assert.Equal(t, "+", bin.Op)
	_, rightIsMul := bin.Right.(*ast.Binary)
	assert.True(t, rightIsMul, "multiplication must bind tighter than addition")
}

func TestParseModuleCollectsSubsAndFunctions(t *testing.T) {
	mod, errs := Parse(common.NewTextSource("Module1", `
Sub AutoOpen()
    Dim x As Long
    x = 1
End Sub

Function Add(a As Long, b As Long) As Long
    Add = a + b
End Function
`), "Module1")
	assert.True(t, errs.Empty())

	var subs, funcs int
	for _, d := range mod.Decls {
		switch d.(type) {
		case *ast.SubDecl:
			subs++
		case *ast.FunctionDecl:
			funcs++
		}
	}
	assert.Equal(t, 1, subs)
	assert.Equal(t, 1, funcs)
}

func TestParseReportsErrorOnMalformedTopLevelText(t *testing.T) {
	_, errs := Parse(common.NewTextSource("Broken", "42 + not a declaration"), "Broken")
	assert.False(t, errs.Empty())
}

func TestParseRecoversAfterOneMalformedStatementAndKeepsParsingRestOfStream(t *testing.T) {
	mod, errs := Parse(common.NewTextSource("Module1", `
Sub First()
End Sub

99 bogus top level text

Sub Second()
End Sub
`), "Module1")
	assert.False(t, errs.Empty())

	var names []string
	for _, d := range mod.Decls {
		if s, ok := d.(*ast.SubDecl); ok {
			names = append(names, s.Name)
		}
	}
	assert.Equal(t, []string{"First", "Second"}, names)
}

func TestMaxRecursionDepthStopsRunawayExpressionNesting(t *testing.T) {
	deeplyNested := ""
	for i := 0; i < 50; i++ {
		deeplyNested += "("
	}
	deeplyNested += "1"
	for i := 0; i < 50; i++ {
		deeplyNested += ")"
	}

	p := New(common.NewTextSource("<test>", deeplyNested), MaxRecursionDepth(5))
	p.ParseExpr()
	assert.False(t, p.Errors().Empty(), "nesting past the configured depth must be reported, not overflow the Go stack")
}

func TestResetCacheClearsMemoizationBetweenParses(t *testing.T) {
	p := New(common.NewTextSource("<test>", "1 + 2"))
	_ = p.ParseExpr()
	p.ResetCache()
	// ResetCache must leave the parser usable for a fresh pass over the
	// same token stream without panicking or resurrecting stale entries.
	p.pos = 0
	e := p.ParseExpr()
	assert.True(t, p.Errors().Empty())
	assert.NotNil(t, e)
}
