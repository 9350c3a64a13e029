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

package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/builtins"
	"github.com/macrowalk/macrowalk/docctx"
	"github.com/macrowalk/macrowalk/interpreter"
)

func TestRunDrivesAutoOpenAndLogsShellAction(t *testing.T) {
	doc := docctx.New()
	doc.AddStream("vbaProject.bin", "VBA/Module1", "Module1", `
Sub AutoOpen()
    Shell "cmd.exe /c whoami"
End Sub
`)

	ac := New(nil, "", doc)
	res, err := ac.Run(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, res.ParseFailures)
	assert.Empty(t, res.Crashed)
	assert.Equal(t, 1, len(res.EntryResults))
	assert.Equal(t, "AutoOpen", res.EntryResults[0].Name)

	assert.Equal(t, 1, len(res.Actions))
	assert.Equal(t, action.KindShellExec, res.Actions[0].Kind)
}

func TestRunIsolatesParseFailureFromOtherStreams(t *testing.T) {
	doc := docctx.New()
	doc.AddStream("vbaProject.bin", "VBA/Broken", "Broken", `
42 + this is not a declaration
`)
	doc.AddStream("vbaProject.bin", "VBA/Module1", "Module1", `
Sub AutoOpen()
    Shell "calc.exe"
End Sub
`)

	ac := New(nil, "", doc)
	res, err := ac.Run(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 1, len(res.ParseFailures))
	assert.Equal(t, "Broken", res.ParseFailures[0].Stream.VBAFilename)

	assert.Equal(t, 1, len(res.EntryResults))
	assert.Equal(t, "AutoOpen", res.EntryResults[0].Name)
}

func TestLoadModuleSafelyRecoversPanicAndReportsCrashedModule(t *testing.T) {
	doc := docctx.New()
	ac := New(nil, "", doc)

	bctx := builtins.NewContext(action.NewLog(), nil, doc)
	it := interpreter.New(ac.Opts, bctx, nil)
	err := ac.loadModuleSafely(it, parsedModule{name: "Nil", mod: nil})
	assert.Error(t, err, "loading a nil module must recover its panic as an error, not crash the test")
}

func TestScanReturnsPureExpressionsWithoutSideEffects(t *testing.T) {
	doc := docctx.New()
	doc.AddStream("vbaProject.bin", "VBA/Module1", "Module1", `
Sub Dummy()
    Dim x As Long
    x = 1 + 2
    Shell "should never run during scan"
End Sub
`)

	ac := New(nil, "", doc)
	results, failures := ac.Scan()
	assert.Empty(t, failures)
	assert.Equal(t, 1, len(results))
	assert.NotEmpty(t, results[0].Expressions)
}

func TestArtifactWriterDisambiguatesRepeatBasenames(t *testing.T) {
	dir := t.TempDir()
	w, err := newFSArtifactWriter(dir)
	assert.NoError(t, err)

	assert.NoError(t, w.WriteArtifact(`C:\drop\out.bin`, []byte("first")))
	assert.NoError(t, w.WriteArtifact(`D:\other\out.bin`, []byte("second")))

	first, err := os.ReadFile(filepath.Join(dir, "out.bin"))
	assert.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := os.ReadFile(filepath.Join(dir, "out-1.bin"))
	assert.NoError(t, err)
	assert.Equal(t, "second", string(second))
}

func TestArtifactWriterWithEmptyDirIsANoOp(t *testing.T) {
	w, err := newFSArtifactWriter("")
	assert.NoError(t, err)
	assert.NoError(t, w.WriteArtifact("anything.txt", []byte("data")))
}

func TestREPLSessionEvaluatesExpressionsAgainstLoadedModules(t *testing.T) {
	doc := docctx.New()
	doc.AddStream("vbaProject.bin", "VBA/Module1", "Module1", `
Function Double(n As Long) As Long
    Double = n * 2
End Function
`)

	ac := New(nil, "", doc)
	session, failures := ac.NewREPLSession()
	assert.Empty(t, failures)

	v, err := session.Eval("Double(21)")
	assert.NoError(t, err)
	assert.Equal(t, "42", v.String())
}

func TestREPLSessionActionDescriptionsReflectLoggedCalls(t *testing.T) {
	doc := docctx.New()
	ac := New(nil, "", doc)
	session, _ := ac.NewREPLSession()

	assert.Empty(t, session.ActionDescriptions())

	_, err := session.Eval(`Shell("calc.exe")`)
	assert.NoError(t, err)

	descs := session.ActionDescriptions()
	assert.Equal(t, 1, len(descs))
	assert.Contains(t, descs[0], "ShellExec")
}
