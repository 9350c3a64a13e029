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

// Bool implements VBA's True == -1 / False == 0 convention.
type Bool bool

const (
	False = Bool(false)
	True  = Bool(true)
)

func (b Bool) Kind() Kind { return KindBool }

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

// AsInt returns the VBA integer representation of b (-1 or 0).
func (b Bool) AsInt() Int {
	if b {
		return IntNegOne
	}
	return IntZero
}

func (b Bool) Compare(other Val) Val {
	ob, ok := other.(Bool)
	if !ok {
		if oi, isInt := other.(Int); isInt {
			return b.AsInt().Compare(oi)
		}
		return NewErr("type mismatch in comparison")
	}
	return b.AsInt().Compare(ob.AsInt())
}

func (b Bool) Negate() Val { return !b }

func (b Bool) Concat(other Val) Val {
	return String{text: b.String() + ToDisplayString(other)}
}
