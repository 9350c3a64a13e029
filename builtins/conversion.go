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

import "github.com/macrowalk/macrowalk/value"

func cvCStr(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(value.ToDisplayString(arg(args, 0))), nil
}

func cvCLng(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.TruncateLong(value.Int(int64(f))), nil
}

func cvCInt(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.TruncateInteger(value.Int(int64(f))), nil
}

func cvCByte(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.TruncateByte(value.Int(int64(f))), nil
}

func cvCDbl(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.Double(f), nil
}

func cvCBool(_ *Context, args []value.Val) (value.Val, error) {
	return value.Bool(value.Truthy(arg(args, 0))), nil
}

func cvCVar(_ *Context, args []value.Val) (value.Val, error) {
	return arg(args, 0), nil
}

func cvCDate(ctx *Context, args []value.Val) (value.Val, error) {
	v := arg(args, 0)
	if d, ok := v.(value.Date); ok {
		return d, nil
	}
	f, ok := value.ToFloat(v)
	if !ok {
		return value.NewErr("invalid date conversion"), nil
	}
	return value.Date(f), nil
}

func cvVal(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.Double(f), nil
}

func cvIsNumeric(_ *Context, args []value.Val) (value.Val, error) {
	_, ok := value.ToFloat(arg(args, 0))
	return value.Bool(ok), nil
}

func cvIsEmpty(_ *Context, args []value.Val) (value.Val, error) {
	_, ok := arg(args, 0).(value.Empty)
	return value.Bool(ok), nil
}

func cvIsNull(_ *Context, args []value.Val) (value.Val, error) {
	_, ok := arg(args, 0).(value.Null)
	return value.Bool(ok), nil
}

func cvIsObject(_ *Context, args []value.Val) (value.Val, error) {
	_, ok := arg(args, 0).(value.Object)
	return value.Bool(ok), nil
}

func cvIsArray(_ *Context, args []value.Val) (value.Val, error) {
	_, ok := arg(args, 0).(*value.Array)
	return value.Bool(ok), nil
}

func cvTypeName(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(value.TypeName(arg(args, 0))), nil
}

func cvVarType(_ *Context, args []value.Val) (value.Val, error) {
	return value.Int(value.VarType(arg(args, 0))), nil
}
