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

func arrArray(_ *Context, args []value.Val) (value.Val, error) {
	elems := make([]value.Val, len(args))
	copy(elems, args)
	return value.NewArray(elems), nil
}

func arrUBound(_ *Context, args []value.Val) (value.Val, error) {
	arr, ok := arg(args, 0).(*value.Array)
	if !ok {
		return value.NewErr("UBound of a non-array"), nil
	}
	ub, ok := arr.UBound()
	if !ok {
		return value.NewErrCode(9, "subscript out of range"), nil
	}
	return value.Int(ub), nil
}

func arrLBound(_ *Context, args []value.Val) (value.Val, error) {
	arr, ok := arg(args, 0).(*value.Array)
	if !ok {
		return value.NewErr("LBound of a non-array"), nil
	}
	return value.Int(arr.LBound), nil
}
