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

package value

import "strconv"

// Double is a VBA Single/Double; macrowalk does not distinguish the two
// since spec.md's non-goals exclude bit-exact float semantics.
type Double float64

func (d Double) Kind() Kind     { return KindDouble }
func (d Double) String() string { return strconv.FormatFloat(float64(d), 'g', -1, 64) }

func (d Double) Add(other Val) Val {
	f, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '+'")
	}
	return d + Double(f)
}

func (d Double) Subtract(other Val) Val {
	f, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '-'")
	}
	return d - Double(f)
}

func (d Double) Multiply(other Val) Val {
	f, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '*'")
	}
	return d * Double(f)
}

func (d Double) Divide(other Val) Val {
	f, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '/'")
	}
	if f == 0 {
		return NewErr("division by zero")
	}
	return d / Double(f)
}

func (d Double) Negate() Val { return -d }

func (d Double) Compare(other Val) Val {
	f, ok := ToFloat(other)
	if !ok {
		if _, isNull := other.(Null); isNull {
			return NullValue
		}
		return NewErr("type mismatch in comparison")
	}
	switch {
	case float64(d) < f:
		return IntNegOne
	case float64(d) > f:
		return IntOne
	default:
		return IntZero
	}
}

func (d Double) Concat(other Val) Val {
	return String{text: d.String() + ToDisplayString(other)}
}
