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

// Int is a VBA Byte/Integer/Long, represented with 64-bit range internally.
// Neither this type nor the runtime cell applies declared-width truncation
// on assignment; the TruncateByte/TruncateInteger/TruncateLong helpers are
// applied only by the CByte/CInt/CLng builtins.
type Int int64

var (
	IntZero   = Int(0)
	IntOne    = Int(1)
	IntNegOne = Int(-1)
)

func (i Int) Kind() Kind     { return KindInt }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

func (i Int) Add(other Val) Val {
	switch o := other.(type) {
	case Int:
		return i + o
	case Double:
		return Double(i) + o
	}
	return NewErr("type mismatch in '+'")
}

func (i Int) Subtract(other Val) Val {
	switch o := other.(type) {
	case Int:
		return i - o
	case Double:
		return Double(i) - o
	}
	return NewErr("type mismatch in '-'")
}

func (i Int) Multiply(other Val) Val {
	switch o := other.(type) {
	case Int:
		return i * o
	case Double:
		return Double(i) * o
	}
	return NewErr("type mismatch in '*'")
}

func (i Int) Divide(other Val) Val {
	d, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '/'")
	}
	if d == 0 {
		return NewErr("division by zero")
	}
	return Double(float64(i) / d)
}

func (i Int) IntDivide(other Val) Val {
	o, ok := other.(Int)
	if !ok {
		d, ok2 := ToFloat(other)
		if !ok2 {
			return NewErr("type mismatch in '\\\\'")
		}
		o = Int(roundHalfEven(d))
	}
	if o == 0 {
		return NewErr("division by zero")
	}
	return Int(roundHalfEven(float64(i)) / o)
}

func (i Int) Mod(other Val) Val {
	o, ok := other.(Int)
	if !ok {
		d, ok2 := ToFloat(other)
		if !ok2 {
			return NewErr("type mismatch in 'Mod'")
		}
		o = Int(roundHalfEven(d))
	}
	if o == 0 {
		return NewErr("division by zero")
	}
	return i % o
}

func (i Int) Negate() Val { return -i }

func (i Int) Compare(other Val) Val {
	switch o := other.(type) {
	case Int:
		switch {
		case i < o:
			return IntNegOne
		case i > o:
			return IntOne
		default:
			return IntZero
		}
	case Double:
		return Double(i).Compare(o)
	case Null:
		return NullValue
	}
	return NewErr("type mismatch in comparison")
}

func (i Int) Concat(other Val) Val {
	return String{text: i.String() + ToDisplayString(other)}
}

// roundHalfEven rounds to the nearest integer, ties to even, matching
// VBA's behavior for `\` and Mod operand rounding.
func roundHalfEven(f float64) int64 {
	floor := int64(f)
	frac := f - float64(floor)
	switch {
	case frac < 0.5 && frac > -0.5:
		return floor
	case frac == 0.5:
		if floor%2 == 0 {
			return floor
		}
		return floor + 1
	case frac == -0.5:
		if floor%2 == 0 {
			return floor
		}
		return floor - 1
	case frac >= 0.5:
		return floor + 1
	default:
		return floor - 1
	}
}
