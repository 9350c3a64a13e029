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
	"strings"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/value"
)

// ObjectTable hands out the sequential IDs value.Object handles carry,
// so two CreateObject calls against the same ProgID are distinguishable
// in the action log even though both stubs behave identically.
type ObjectTable struct {
	nextID int
}

// NewObjectTable returns an empty table; IDs start at 1.
func NewObjectTable() *ObjectTable {
	return &ObjectTable{nextID: 1}
}

func (t *ObjectTable) alloc() int {
	id := t.nextID
	t.nextID++
	return id
}

// newStub resolves progID to a modeled implementation, falling back to
// genericStub for anything the library doesn't model by name — malware
// samples invent ProgIDs that don't exist on a real machine too, and the
// interpreter still needs an object to hand back.
func newStub(progID string) value.ObjectImpl {
	switch strings.ToLower(progID) {
	case "wscript.shell":
		return wshShellStub{progID: progID}
	case "scripting.filesystemobject":
		return fsoStub{progID: progID}
	case "msxml2.xmlhttp", "msxml2.serverxmlhttp", "microsoft.xmlhttp":
		return &xmlHTTPStub{progID: progID}
	case "adodb.stream":
		return &adoStreamStub{progID: progID}
	case "shell.application":
		return shellAppStub{progID: progID}
	case "word.application":
		return officeAppStub{progID: progID, app: "Word"}
	case "excel.application":
		return officeAppStub{progID: progID, app: "Excel"}
	default:
		return genericStub{progID: progID}
	}
}

func objCreateObject(ctx *Context, args []value.Val) (value.Val, error) {
	progID := argStr(args, 0)
	id := ctx.Objects.alloc()
	ctx.Actions.Append(action.New(action.KindCreateObject, progID, map[string]string{"progID": progID}))
	return value.Object{ID: id, Impl: newStub(progID)}, nil
}

func objGetObject(ctx *Context, args []value.Val) (value.Val, error) {
	path := argStr(args, 0)
	progID := path
	if len(args) > 1 && argStr(args, 1) != "" {
		progID = argStr(args, 1)
	}
	id := ctx.Objects.alloc()
	ctx.Actions.Append(action.New(action.KindCreateObject, progID, map[string]string{
		"progID": progID,
		"path":   path,
	}))
	return value.Object{ID: id, Impl: newStub(progID)}, nil
}

// DispatchObjectMethod dispatches a Member/CallOrIndex against an Object
// value. The interpreter calls this rather than Registry.Lookup when a
// call's receiver resolves to an Object, so that the action-log entries
// the individual stub types can't append themselves (their fixed
// Invoke(method, args) signature has no *Context) get appended here,
// around the delegated call into obj.Impl.Invoke.
func DispatchObjectMethod(ctx *Context, obj value.Object, method string, args []value.Val) (value.Val, error) {
	if obj.Impl == nil {
		return value.NewErr("object has no implementation"), nil
	}
	lowerMethod := strings.ToLower(method)
	switch impl := obj.Impl.(type) {
	case wshShellStub:
		switch lowerMethod {
		case "run", "exec":
			cmd := argStr(args, 0)
			ctx.Actions.Append(action.New(action.KindShellExec, cmd, map[string]string{"command": cmd}))
		case "regwrite":
			key := argStr(args, 0)
			ctx.Actions.Append(action.New(action.KindRegistry, key, map[string]string{
				"key":   key,
				"value": argStr(args, 1),
			}))
		case "regread":
			key := argStr(args, 0)
			ctx.Actions.Append(action.New(action.KindRegistry, key, map[string]string{"key": key}))
		}
	case *xmlHTTPStub:
		if lowerMethod == "send" {
			ctx.Actions.Append(action.New(action.KindNetworkFetch, impl.url, map[string]string{
				"url":    impl.url,
				"method": impl.method,
			}))
		}
	case *adoStreamStub:
		if lowerMethod == "savetofile" {
			name := argStr(args, 0)
			ctx.Actions.Append(action.New(action.KindFileWrite, name, map[string]string{"path": name}))
			if ctx.Artifacts != nil {
				_ = ctx.Artifacts.WriteArtifact(name, []byte(impl.buf.String()))
			}
		}
	case *textStreamStub:
		if lowerMethod == "close" && impl.path != "" {
			ctx.Actions.Append(action.New(action.KindFileWrite, impl.path, map[string]string{"path": impl.path}))
			if ctx.Artifacts != nil {
				_ = ctx.Artifacts.WriteArtifact(impl.path, []byte(impl.buf.String()))
			}
		}
	case shellAppStub:
		if lowerMethod == "shellexecute" {
			cmd := argStr(args, 0)
			ctx.Actions.Append(action.New(action.KindProcessStart, cmd, map[string]string{
				"command":   cmd,
				"arguments": argStr(args, 1),
			}))
		}
	}
	return obj.Impl.Invoke(method, args)
}

// wshShellStub models WScript.Shell: Run/Exec log a ShellExec action,
// ExpandEnvironmentStrings returns the literal unexpanded string (same
// reasoning as Environ — see io.go), RegWrite/RegRead log Registry
// actions without touching an actual registry.
type wshShellStub struct{ progID string }

func (s wshShellStub) ProgID() string { return s.progID }

func (s wshShellStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "run", "exec":
		// The ShellExec action itself is appended by
		// DispatchObjectMethod, which holds the *Context this stub's
		// fixed Invoke signature doesn't have access to.
		return value.Int(0), nil
	case "expandenvironmentstrings":
		return value.NewString(argStr(args, 0)), nil
	case "regwrite":
		return value.EmptyValue, nil
	case "regread":
		return value.NewString(""), nil
	case "specialfolders":
		return value.NewString(""), nil
	default:
		return value.EmptyValue, nil
	}
}

// fsoStub models Scripting.FileSystemObject: CreateTextFile/OpenTextFile
// return a textStreamStub whose Write/WriteLine accumulate into a
// buffer the analysis layer can persist as an artifact; file-system
// query methods answer plausibly without touching the real filesystem.
type fsoStub struct{ progID string }

func (s fsoStub) ProgID() string { return s.progID }

func (s fsoStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "createtextfile", "opentextfile":
		return value.Object{Impl: &textStreamStub{path: argStr(args, 0)}}, nil
	case "fileexists", "folderexists":
		return value.Bool(false), nil
	case "getfile", "getfolder":
		return value.Object{Impl: genericStub{progID: "Scripting.File"}}, nil
	case "deletefile", "deletefolder", "copyfile", "movefile", "createfolder":
		return value.EmptyValue, nil
	case "getspecialfolder":
		return value.NewString(`C:\Windows\Temp`), nil
	case "buildpath":
		return value.NewString(argStr(args, 0) + `\` + argStr(args, 1)), nil
	case "gettempname":
		return value.NewString("radA0000.tmp"), nil
	default:
		return value.EmptyValue, nil
	}
}

// textStreamStub accumulates Write/WriteLine payloads; DispatchObjectMethod
// persists them as an artifact when Close is called.
type textStreamStub struct {
	path string
	buf  strings.Builder
}

func (s *textStreamStub) ProgID() string { return "Scripting.TextStream" }

func (s *textStreamStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "write":
		s.buf.WriteString(argStr(args, 0))
		return value.EmptyValue, nil
	case "writeline":
		s.buf.WriteString(argStr(args, 0))
		s.buf.WriteString("\r\n")
		return value.EmptyValue, nil
	case "readall", "readline", "read":
		return value.NewString(s.buf.String()), nil
	case "close":
		return value.EmptyValue, nil
	default:
		return value.EmptyValue, nil
	}
}

// xmlHTTPStub models MSXML2.XMLHTTP: Open records the request line,
// Send is where the actual NetworkFetch action belongs (appended by
// DispatchObjectMethod, since Invoke has no *Context) and
// responseText answers with an empty string and Status with 200, since
// no network call is ever made.
type xmlHTTPStub struct {
	progID string
	method string
	url    string
}

func (s xmlHTTPStub) ProgID() string { return s.progID }

func (s *xmlHTTPStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "open":
		s.method = argStr(args, 0)
		s.url = argStr(args, 1)
		return value.EmptyValue, nil
	case "send":
		return value.EmptyValue, nil
	case "status":
		return value.Int(200), nil
	case "responsetext", "responsebody":
		return value.NewString(""), nil
	case "setrequestheader":
		return value.EmptyValue, nil
	default:
		return value.EmptyValue, nil
	}
}

// adoStreamStub models ADODB.Stream: Open/Type/Write accumulate a byte
// payload, SaveToFile is where DispatchObjectMethod hands the buffer to
// the run's ArtifactWriter.
type adoStreamStub struct {
	progID string
	buf    strings.Builder
}

func (s *adoStreamStub) ProgID() string { return s.progID }

func (s *adoStreamStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "open", "close", "settype", "position":
		return value.EmptyValue, nil
	case "write", "writetext":
		s.buf.WriteString(argStr(args, 0))
		return value.EmptyValue, nil
	case "savetofile":
		return value.EmptyValue, nil
	case "readtext", "read":
		return value.NewString(s.buf.String()), nil
	default:
		return value.EmptyValue, nil
	}
}

// shellAppStub models Shell.Application, whose ShellExecute is another
// entry point malware uses to launch a dropped payload.
type shellAppStub struct{ progID string }

func (s shellAppStub) ProgID() string { return s.progID }

func (s shellAppStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "shellexecute":
		return value.EmptyValue, nil
	case "namespace":
		return value.Object{Impl: genericStub{progID: "Shell.Folder"}}, nil
	default:
		return value.EmptyValue, nil
	}
}

// officeAppStub models Word.Application/Excel.Application, reached for
// when a macro document spawns a sibling Office process (often to run
// a second payload document headless).
type officeAppStub struct {
	progID string
	app    string
}

func (s officeAppStub) ProgID() string { return s.progID }

func (s officeAppStub) Invoke(method string, args []value.Val) (value.Val, error) {
	switch strings.ToLower(method) {
	case "documents", "workbooks":
		return value.Object{Impl: genericStub{progID: s.app + ".Documents"}}, nil
	case "quit":
		return value.EmptyValue, nil
	default:
		return value.EmptyValue, nil
	}
}

// genericStub answers every method call with Empty, standing in for any
// ProgID the library doesn't specifically model and for sub-objects
// (Documents, Folders, ...) returned from a modeled object's own
// methods.
type genericStub struct{ progID string }

func (s genericStub) ProgID() string { return s.progID }

func (s genericStub) Invoke(method string, _ []value.Val) (value.Val, error) {
	return value.EmptyValue, nil
}

