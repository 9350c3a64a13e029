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

package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/value"
)

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"UCase", "ucase", "UCASE"} {
		fn, ok := r.Lookup(name)
		assert.True(t, ok, "lookup of %q should resolve", name)
		assert.NotNil(t, fn)
	}
	_, ok := r.Lookup("NotARealFunction")
	assert.False(t, ok)
}

func TestRegistryRegisterOverridesExisting(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register("Shell", func(ctx *Context, args []value.Val) (value.Val, error) {
		called = true
		return value.Int(42), nil
	})
	fn, ok := r.Lookup("shell")
	assert.True(t, ok)
	v, err := fn(nil, nil)
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, value.Int(42), v)
}

func newTestContext() *Context {
	return NewContext(action.NewLog(), nil, nil)
}

func TestEnvironReturnsLiteralUnexpanded(t *testing.T) {
	ctx := newTestContext()
	v, err := ioEnviron(ctx, []value.Val{value.NewString("TEMP")})
	assert.NoError(t, err)
	assert.Equal(t, "%TEMP%", v.String())
}

func TestShellLogsActionAndKeepsCommandSymbolic(t *testing.T) {
	ctx := newTestContext()
	v, err := ioShell(ctx, []value.Val{value.NewString("cmd /c whoami")})
	assert.NoError(t, err)
	assert.Equal(t, value.Int(1), v)

	entries := ctx.Actions.Entries()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, action.KindShellExec, entries[0].Kind)
	assert.Equal(t, "cmd /c whoami", entries[0].Params["command"])
}

func TestCreateObjectDispatchesKnownStubByProgID(t *testing.T) {
	ctx := newTestContext()
	v, err := objCreateObject(ctx, []value.Val{value.NewString("WScript.Shell")})
	assert.NoError(t, err)

	obj, ok := v.(value.Object)
	assert.True(t, ok)
	_, isShellStub := obj.Impl.(wshShellStub)
	assert.True(t, isShellStub)
	assert.Equal(t, 1, obj.ID)

	entries := ctx.Actions.Entries()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, action.KindCreateObject, entries[0].Kind)
}

func TestCreateObjectUnknownProgIDFallsBackToGenericStub(t *testing.T) {
	ctx := newTestContext()
	v, err := objCreateObject(ctx, []value.Val{value.NewString("Some.Bogus.Thing")})
	assert.NoError(t, err)

	obj := v.(value.Object)
	_, isGeneric := obj.Impl.(genericStub)
	assert.True(t, isGeneric)
}

func TestObjectTableAllocatesSequentialIDs(t *testing.T) {
	ctx := newTestContext()
	v1, _ := objCreateObject(ctx, []value.Val{value.NewString("WScript.Shell")})
	v2, _ := objCreateObject(ctx, []value.Val{value.NewString("WScript.Shell")})
	assert.Equal(t, 1, v1.(value.Object).ID)
	assert.Equal(t, 2, v2.(value.Object).ID)
}

func TestDispatchObjectMethodWshShellRunLogsShellExec(t *testing.T) {
	ctx := newTestContext()
	obj := value.Object{ID: 1, Impl: wshShellStub{progID: "WScript.Shell"}}

	_, err := DispatchObjectMethod(ctx, obj, "Run", []value.Val{value.NewString("calc.exe")})
	assert.NoError(t, err)

	entries := ctx.Actions.Entries()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, action.KindShellExec, entries[0].Kind)
	assert.Equal(t, "calc.exe", entries[0].Params["command"])
}

func TestDispatchObjectMethodAdoStreamSaveToFileWritesArtifact(t *testing.T) {
	written := map[string][]byte{}
	fw := fakeArtifactWriter{written: written}
	ctx := NewContext(action.NewLog(), fw, nil)

	stream := &adoStreamStub{progID: "ADODB.Stream"}
	stream.buf.WriteString("payload-bytes")
	obj := value.Object{ID: 1, Impl: stream}

	_, err := DispatchObjectMethod(ctx, obj, "SaveToFile", []value.Val{value.NewString(`C:\out.bin`)})
	assert.NoError(t, err)

	entries := ctx.Actions.Entries()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, action.KindFileWrite, entries[0].Kind)
	assert.Equal(t, "payload-bytes", string(written[`C:\out.bin`]))
}

func TestDispatchObjectMethodOnNilImplReturnsErrValNotPanic(t *testing.T) {
	ctx := newTestContext()
	obj := value.Object{ID: 1, Impl: nil}

	v, err := DispatchObjectMethod(ctx, obj, "Run", nil)
	assert.NoError(t, err)
	_, ok := v.(*value.ErrVal)
	assert.True(t, ok)
}

func TestFsoCreateTextFileReturnsTextStreamStub(t *testing.T) {
	fso := fsoStub{progID: "Scripting.FileSystemObject"}
	v, err := fso.Invoke("CreateTextFile", []value.Val{value.NewString(`C:\a.txt`)})
	assert.NoError(t, err)

	obj := v.(value.Object)
	ts, ok := obj.Impl.(*textStreamStub)
	assert.True(t, ok)
	assert.Equal(t, `C:\a.txt`, ts.path)
}

func TestTextStreamWriteLineAccumulatesCRLF(t *testing.T) {
	ts := &textStreamStub{path: `C:\a.txt`}
	_, _ = ts.Invoke("WriteLine", []value.Val{value.NewString("hello")})
	_, _ = ts.Invoke("Write", []value.Val{value.NewString("world")})

	v, err := ts.Invoke("ReadAll", nil)
	assert.NoError(t, err)
	assert.Equal(t, "hello\r\nworld", v.String())
}

type fakeArtifactWriter struct {
	written map[string][]byte
}

func (f fakeArtifactWriter) WriteArtifact(name string, data []byte) error {
	f.written[name] = data
	return nil
}
