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
	"fmt"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/value"
)

// ioEnviron returns the literal "%name%" rather than a resolved
// environment value, preserving whatever obfuscation clue the sample's
// choice of variable name carries (spec.md §4.E).
func ioEnviron(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString("%" + argStr(args, 0) + "%"), nil
}

func ioShell(ctx *Context, args []value.Val) (value.Val, error) {
	cmd := argStr(args, 0)
	ctx.Actions.Append(action.New(action.KindShellExec, cmd, map[string]string{"command": cmd}))
	return value.Int(1), nil // a plausible process id
}

func ioWinExec(ctx *Context, args []value.Val) (value.Val, error) {
	cmd := argStr(args, 0)
	ctx.Actions.Append(action.New(action.KindProcessStart, cmd, map[string]string{"command": cmd}))
	return value.Int(32), nil // WinExec's ">31 means success" sentinel
}

func ioCreateProcess(ctx *Context, args []value.Val) (value.Val, error) {
	appName := argStr(args, 0)
	cmdLine := argStr(args, 1)
	desc := fmt.Sprintf("%s %s", appName, cmdLine)
	ctx.Actions.Append(action.New(action.KindProcessStart, desc, map[string]string{
		"application": appName,
		"commandLine": cmdLine,
	}))
	return value.Bool(true), nil
}

func ioURLDownloadToFile(ctx *Context, args []value.Val) (value.Val, error) {
	url := argStr(args, 1)
	dest := argStr(args, 2)
	ctx.Actions.Append(action.New(action.KindNetworkFetch, url, map[string]string{
		"url":         url,
		"destination": dest,
	}))
	return value.Int(0), nil // S_OK
}
