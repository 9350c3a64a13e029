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

// Package value implements the tagged-union value domain macros are
// symbolically emulated over: Int, Double, Bool, String, ByteArray, Date,
// Null, Empty, Missing, Error, Object, Ref and Unresolved.
//
// Each concrete type implements Val and whichever operator traits apply to
// it, grounded on the common/types per-kind-file convention (int.go,
// string.go, bool.go, ...) and the trait-interface split of
// common/types/traits, collapsed here into this package since macrowalk has
// no protobuf/reflect native-conversion surface to support.
package value

// Kind tags a Val's variant.
type Kind int

const (
	KindInt Kind = iota
	KindDouble
	KindBool
	KindString
	KindByteArray
	KindDate
	KindNull
	KindEmpty
	KindMissing
	KindError
	KindObject
	KindRef
	KindUnresolved
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Integer"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Boolean"
	case KindString:
		return "String"
	case KindByteArray:
		return "Byte()"
	case KindDate:
		return "Date"
	case KindNull:
		return "Null"
	case KindEmpty:
		return "Empty"
	case KindMissing:
		return "Missing"
	case KindError:
		return "Error"
	case KindObject:
		return "Object"
	case KindRef:
		return "Ref"
	case KindUnresolved:
		return "Unresolved"
	default:
		return "Unknown"
	}
}

// Val is the interface every value-domain member implements.
type Val interface {
	// Kind reports which variant this value is.
	Kind() Kind

	// String is the human-readable form used for CStr, concatenation
	// display and action-log descriptions.
	String() string
}

// Adder is implemented by values usable on either side of `+`.
type Adder interface {
	Val
	Add(other Val) Val
}

// Subtractor is implemented by values usable with binary `-`.
type Subtractor interface {
	Val
	Subtract(other Val) Val
}

// Multiplier is implemented by values usable with `*`.
type Multiplier interface {
	Val
	Multiply(other Val) Val
}

// Divider is implemented by values usable with `/` (always yields Double).
type Divider interface {
	Val
	Divide(other Val) Val
}

// IntDivider is implemented by values usable with `\`.
type IntDivider interface {
	Val
	IntDivide(other Val) Val
}

// Modder is implemented by values usable with Mod.
type Modder interface {
	Val
	Mod(other Val) Val
}

// Negator is implemented by values usable with unary `-`.
type Negator interface {
	Val
	Negate() Val
}

// Comparer orders two values, returning Int(-1|0|1), Null, or an Error.
type Comparer interface {
	Val
	Compare(other Val) Val
}

// Concatenator implements `&`, which always succeeds by coercing both
// operands to string.
type Concatenator interface {
	Val
	Concat(other Val) Val
}

// Truthy reports whether v is considered True in a boolean context,
// per spec.md's "non-zero numeric -> True" coercion rule.
func Truthy(v Val) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Int:
		return t != 0
	case Double:
		return t != 0
	case String:
		return t.Text() != ""
	case Null, Empty, Missing:
		return false
	case *Unresolved:
		return true
	default:
		return true
	}
}

// IsError reports whether v is the Error variant.
func IsError(v Val) bool {
	_, ok := v.(*ErrVal)
	return ok
}

// IsUnresolved reports whether v is the Unresolved variant.
func IsUnresolved(v Val) bool {
	_, ok := v.(*Unresolved)
	return ok
}
