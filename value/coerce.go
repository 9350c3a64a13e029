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

import (
	"strconv"
	"strings"
)

// ToFloat implements spec.md §4.D's String->Number and Bool->Number
// coercions. Double, Date, String and Empty arithmetic and Int's Divide,
// IntDivide and Mod use it to accept a non-exact-type operand; Int's Add,
// Subtract and Multiply do not, and accept only Int and Double operands.
func ToFloat(v Val) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Double:
		return float64(t), true
	case Bool:
		return float64(t.AsInt()), true
	case Date:
		return float64(t), true
	case String:
		return parseVBANumber(t.Text())
	case Empty:
		return 0, true
	default:
		return 0, false
	}
}

// parseVBANumber applies VBA's String->Number parse rules: recognize
// &H/&O radix prefixes, skip leading spaces, truncate at the first
// trailing non-numeric rune, and treat an empty string as 0 (the soft
// warning is logged by the caller, not here).
func parseVBANumber(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return 0, true
	}
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "&H") {
		end := 2
		for end < len(s) && isHexDigit(s[end]) {
			end++
		}
		if end == 2 {
			return 0, false
		}
		n, err := strconv.ParseInt(s[2:end], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	if strings.HasPrefix(upper, "&O") {
		end := 2
		for end < len(s) && s[end] >= '0' && s[end] <= '7' {
			end++
		}
		if end == 2 {
			return 0, false
		}
		n, err := strconv.ParseInt(s[2:end], 8, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	end := 0
	seenDigit := false
	seenDot := false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			seenDigit = true
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if !seenDigit {
		return 0, false
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ToDisplayString implements spec.md §4.D's Number->String coercion
// (integers render without a decimal point, doubles use the shortest
// round-trippable form) and is the routine every Concat/& implementation
// above funnels its non-string operand through.
func ToDisplayString(v Val) string {
	return v.String()
}

// ToBool implements the Bool coercion rule table: True<=>-1, False<=>0,
// any non-zero numeric is True in a boolean context.
func ToBool(v Val) bool {
	return Truthy(v)
}

// TruncateByte implements "Byte assignment truncates mod 256".
func TruncateByte(i Int) Int {
	return Int(uint8(int64(i)))
}

// TruncateInteger implements "Integer mod 2^16", two's-complement.
func TruncateInteger(i Int) Int {
	return Int(int16(int64(i)))
}

// TruncateLong implements "Long mod 2^32", two's-complement.
func TruncateLong(i Int) Int {
	return Int(int32(int64(i)))
}

// TypeName implements the VBA TypeName() builtin.
func TypeName(v Val) string {
	switch v.(type) {
	case Int:
		return "Long"
	case Double:
		return "Double"
	case Bool:
		return "Boolean"
	case String:
		return "String"
	case ByteArray:
		return "Byte()"
	case Date:
		return "Date"
	case Null:
		return "Null"
	case Empty:
		return "Empty"
	case Missing:
		return "Empty"
	case *ErrVal:
		return "Error"
	case Object:
		return "Object"
	case Ref:
		return "Variant"
	case *Unresolved:
		return "Variant"
	default:
		return "Variant"
	}
}

// VarType implements the VBA VarType() builtin's numeric type codes.
func VarType(v Val) int {
	switch v.(type) {
	case Empty:
		return 0
	case Null:
		return 1
	case Int:
		return 3 // vbLong
	case Double:
		return 5 // vbDouble
	case String:
		return 8 // vbString
	case Object:
		return 9 // vbObject
	case Bool:
		return 11 // vbBoolean
	case *ErrVal:
		return 10 // vbError
	case Date:
		return 7 // vbDate
	case ByteArray:
		return 17 // vbByte
	default:
		return 12 // vbVariant
	}
}
