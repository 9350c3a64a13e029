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
	"math"

	"github.com/macrowalk/macrowalk/value"
)

func numAbs(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	if f < 0 {
		f = -f
	}
	if _, isInt := arg(args, 0).(value.Int); isInt {
		return value.Int(int64(f)), nil
	}
	return value.Double(f), nil
}

func numInt(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.Int(int64(math.Floor(f))), nil
}

func numFix(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.Int(int64(math.Trunc(f))), nil
}

func numSgn(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	switch {
	case f > 0:
		return value.Int(1), nil
	case f < 0:
		return value.Int(-1), nil
	default:
		return value.Int(0), nil
	}
}

func numRnd(ctx *Context, _ []value.Val) (value.Val, error) {
	return value.Double(ctx.Rng.Float64()), nil
}

func numTimer(ctx *Context, _ []value.Val) (value.Val, error) {
	now := ctx.Now()
	secs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	return value.Double(float64(secs)), nil
}
