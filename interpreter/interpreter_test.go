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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/common"
	"github.com/macrowalk/macrowalk/config"
	"github.com/macrowalk/macrowalk/normalizer"
	"github.com/macrowalk/macrowalk/parser"
	"github.com/macrowalk/macrowalk/value"
)

// loadSource normalizes and parses src, loads it into a fresh
// Interpreter built from opts (Default() if nil), and returns both the
// interpreter and the builtins.Context its actions/artifacts land in,
// failing the test immediately on a parse error since every fixture
// below is expected to be well-formed VBA.
func loadSource(t *testing.T, opts *config.Options, src string) (*Interpreter, *builtins.Context) {
	t.Helper()
	if opts == nil {
		opts = config.Default()
	}
	text := normalizer.Normalize(src, opts.StripUseless)
	mod, errs := parser.Parse(common.NewTextSource("Module1", text), "Module1")
	if !assert.True(t, errs.Empty(), "unexpected parse errors: %s", errs.String()) {
		t.FailNow()
	}

	bctx := builtins.NewContext(action.NewLog(), nil, nil)
	it := New(opts, bctx, nil)
	assert.NoError(t, it.LoadModule(mod))
	return it, bctx
}

func TestEnvironStaysSymbolic(t *testing.T) {
	it, _ := loadSource(t, nil, `
Function GetPath() As String
    GetPath = Environ("APPDATA")
End Function
`)
	res, err := it.callProc(it.procs["getpath"], nil)
	assert.NoError(t, err)
	assert.Equal(t, "%APPDATA%", res.String())
}

func TestShellCallLogsAction(t *testing.T) {
	it, bctx := loadSource(t, nil, `
Sub Run()
    Shell "cmd.exe /c calc.exe", vbHide
End Sub
`)
	_, err := it.callProc(it.procs["run"], nil)
	assert.NoError(t, err)

	entries := bctx.Actions.Entries()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, action.KindShellExec, entries[0].Kind)
	assert.Contains(t, entries[0].Params["command"], "calc.exe")
}

func TestOnErrorResumeNextSwallowsDivideByZero(t *testing.T) {
	it, _ := loadSource(t, nil, `
Function Divide() As Long
    On Error Resume Next
    Dim x As Long
    x = 1 / 0
    Divide = 42
End Function
`)
	res, err := it.callProc(it.procs["divide"], nil)
	assert.NoError(t, err)
	assert.Equal(t, value.Int(42), res)
}

func TestForLoopStepZeroIsTruncated(t *testing.T) {
	it, bctx := loadSource(t, nil, `
Sub Loopy()
    Dim i As Long
    For i = 1 To 10 Step 0
        Shell "echo " & i
    Next i
End Sub
`)
	_, err := it.callProc(it.procs["loopy"], nil)
	assert.NoError(t, err)

	found := false
	for _, e := range bctx.Actions.Entries() {
		if e.Kind == action.KindOther && e.Description == "For loop with Step 0 truncated" {
			found = true
		}
	}
	assert.True(t, found, "expected a truncation action for Step 0")
}

func TestRecursionLimitStopsRunawayRecursionWithoutCrashing(t *testing.T) {
	opts, err := config.New(config.WithRecursionLimit(5))
	assert.NoError(t, err)

	it, bctx := loadSource(t, opts, `
Sub Recurse()
    Recurse
End Sub
`)
	_, err = it.callProc(it.procs["recurse"], nil)
	assert.NoError(t, err, "hitting the recursion limit must not surface as a Go error")

	hitLimit := false
	for _, e := range bctx.Actions.Entries() {
		if e.Kind == action.KindOther && e.Params["proc"] == "Recurse" {
			hitLimit = true
		}
	}
	assert.True(t, hitLimit, "expected a recursion-limit action once the call stack bottoms out")
}

func TestByRefParameterAliasesCallerVariable(t *testing.T) {
	it, _ := loadSource(t, nil, `
Sub Bump(ByRef n As Long)
    n = n + 1
End Sub

Function Caller() As Long
    Dim x As Long
    x = 10
    Bump x
    Caller = x
End Function
`)
	res, err := it.callProc(it.procs["caller"], nil)
	assert.NoError(t, err)
	assert.Equal(t, "11", res.String())
}

func TestSelectCaseIsAndToDesugaring(t *testing.T) {
	it, _ := loadSource(t, nil, `
Function Classify(n As Long) As String
    Select Case n
        Case Is < 0
            Classify = "negative"
        Case 0
            Classify = "zero"
        Case 1 To 9
            Classify = "digit"
        Case Else
            Classify = "big"
    End Select
End Function
`)
	cases := map[int64]string{-5: "negative", 0: "zero", 5: "digit", 100: "big"}
	for n, want := range cases {
		t.Run(want, func(t *testing.T) {
			res, err := it.callProc(it.procs["classify"], []argSlot{{val: value.Int(n)}})
			assert.NoError(t, err)
			assert.Equal(t, want, res.String())
		})
	}
}
