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

package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinuationCollapse(t *testing.T) {
	in := "x = \"a\" & _\n \"b\""
	out := Normalize(in, false)
	assert.Equal(t, `x = "a" &  "b"`, out)
}

func TestContinuationSkipsUnderscoreInsideUnterminatedString(t *testing.T) {
	// A trailing "_" whose preceding odd quote count puts it inside an
	// (unterminated) string is never treated as a continuation marker.
	in := "x = \"_\ny = 1"
	out := Normalize(in, true)
	assert.Contains(t, out, "x = \"_")
	assert.Contains(t, out, "y = 1")
}

func TestConditionalCompilationPicksLargestArm(t *testing.T) {
	in := strings.Join([]string{
		"#If A Then",
		"x = 1",
		"y = 2",
		"#Else",
		"a = 1",
		"b = 2",
		"c = 3",
		"d = 4",
		"e = 5",
		"#End If",
	}, "\n")
	out := Normalize(in, true)
	assert.NotContains(t, out, "#If")
	assert.NotContains(t, out, "#Else")
	assert.NotContains(t, out, "#End If")
	assert.NotContains(t, out, "x = 1", "the shorter arm must not survive")
	assert.Contains(t, out, "a = 1")
	assert.Contains(t, out, "e = 5")
}

func TestConditionalCompilationTiesPickEarliestArm(t *testing.T) {
	in := strings.Join([]string{
		"#If A Then",
		"x = 1",
		"#Else",
		"y = 1",
		"#End If",
	}, "\n")
	out := Normalize(in, true)
	assert.Contains(t, out, "x = 1")
	assert.NotContains(t, out, "y = 1")
}

func TestUnmatchedEndIfRepairedToEndFunction(t *testing.T) {
	in := strings.Join([]string{
		"Function F()",
		"x = 1",
		"End If",
		"End Function",
	}, "\n")
	out := Normalize(in, true)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "End Function", strings.TrimSpace(lines[2]), "the dangling End If becomes End Function")
}

func TestAttributeStripping(t *testing.T) {
	in := "Attribute VB_Name = \"Module1\"\nSub S()\nEnd Sub"
	out := Normalize(in, true)
	assert.NotContains(t, out, "Attribute VB_Name")
	assert.Contains(t, out, "Sub S()")
}

func TestStripUselessRemovesUnreadAssignment(t *testing.T) {
	in := strings.Join([]string{
		"Sub S()",
		"unused = 42",
		"End Sub",
	}, "\n")
	out := Normalize(in, true)
	assert.Contains(t, out, "' unused = 42", "an assignment never read elsewhere is commented out")
}

func TestStripUselessKeepsProtectedCallChain(t *testing.T) {
	// Concrete scenario 5: CreateObject followed by a dotted call on the
	// same variable must survive stripping even though `s` itself is
	// never read by name elsewhere.
	in := strings.Join([]string{
		"Sub S()",
		`s = CreateObject("WScript.Shell")`,
		`s.Run "notepad"`,
		"End Sub",
	}, "\n")
	out := Normalize(in, true)
	assert.Contains(t, out, `s = CreateObject("WScript.Shell")`)
	assert.Contains(t, out, `s.Run "notepad"`)
	assert.NotContains(t, out, "' s = ")
}

func TestStripUselessOffKeepsEverything(t *testing.T) {
	in := strings.Join([]string{
		"Sub S()",
		"unused = 42",
		"End Sub",
	}, "\n")
	out := Normalize(in, false)
	assert.NotContains(t, out, "' unused")
}

func TestStripUselessKeepsCoercionDims(t *testing.T) {
	in := strings.Join([]string{
		"Sub S()",
		"Dim b As Byte",
		"Dim o As Object",
		"End Sub",
	}, "\n")
	out := Normalize(in, true)
	assert.Contains(t, out, "Dim b As Byte", "Byte/Integer/Long dims carry coercion semantics and must survive")
	assert.Contains(t, out, "' Dim o As Object", "a non-coercing Dim with no initializer is strippable noise")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"x = \"a\" & _\n\"b\"",
		"#If A Then\nx = 1\n#Else\ny = 2\n#End If",
		"Attribute VB_Name = \"M\"\nSub S()\nunused = 1\nEnd Sub",
	}
	for _, in := range inputs {
		once := Normalize(in, true)
		twice := Normalize(once, true)
		assert.Equal(t, once, twice, "normalize must be idempotent for input %q", in)
	}
}
