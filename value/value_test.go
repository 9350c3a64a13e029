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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntArithmetic(t *testing.T) {
	assert.Equal(t, Int(7), Int(3).Add(Int(4)))
	assert.Equal(t, Double(7.5), Int(3).Add(Double(4.5)))
	assert.Equal(t, Int(-1), Int(3).Subtract(Int(4)))
	assert.Equal(t, Int(12), Int(3).Multiply(Int(4)))
}

func TestIntDivideByZero(t *testing.T) {
	result := Int(1).Divide(Int(0))
	errVal, ok := result.(*ErrVal)
	assert.True(t, ok, "dividing by zero must produce an ErrVal, not panic")
	if ok {
		assert.Contains(t, errVal.String(), "division by zero")
	}
}

func TestIntAddTypeMismatch(t *testing.T) {
	result := Int(1).Add(NewString("x"))
	_, ok := result.(*ErrVal)
	assert.True(t, ok, "Int+String with a non-numeric string must produce an ErrVal")
}

func TestStringConcatCoercesNumbers(t *testing.T) {
	s := NewString("n=")
	result := s.Concat(Int(42))
	str, ok := result.(String)
	assert.True(t, ok)
	assert.Equal(t, "n=42", str.Text())
}

func TestStringCompare(t *testing.T) {
	assert.Equal(t, IntNegOne, NewString("a").Compare(NewString("b")))
	assert.Equal(t, IntZero, NewString("a").Compare(NewString("a")))
	assert.Equal(t, IntOne, NewString("b").Compare(NewString("a")))
}

func TestStringLikeWildcards(t *testing.T) {
	cases := []struct {
		text, pattern string
		want          bool
	}{
		{"hello.exe", "*.exe", true},
		{"hello.dll", "*.exe", false},
		{"a1", "a#", true},
		{"ab", "a#", false},
		{"ax", "a?", true},
	}
	for _, c := range cases {
		t.Run(c.text+"~"+c.pattern, func(t *testing.T) {
			s := NewString(c.text)
			assert.Equal(t, c.want, s.Like(c.pattern))
		})
	}
}

func TestCaseFold(t *testing.T) {
	assert.Equal(t, "workbook_open", CaseFold("Workbook_Open"))
	assert.Equal(t, CaseFold("X"), CaseFold("x"))
}

func TestToFloatCoercions(t *testing.T) {
	cases := []struct {
		name string
		v    Val
		want float64
		ok   bool
	}{
		{"int", Int(5), 5, true},
		{"double", Double(2.5), 2.5, true},
		{"bool true", Bool(true), -1, true},
		{"bool false", Bool(false), 0, true},
		{"numeric string", NewString("3.5"), 3.5, true},
		{"non numeric string", NewString("abc"), 0, false},
		{"empty", EmptyValue, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ToFloat(c.v)
			assert.Equal(t, c.ok, ok)
			if ok {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestToDisplayString(t *testing.T) {
	assert.Equal(t, "42", ToDisplayString(Int(42)))
	assert.Equal(t, "True", ToDisplayString(Bool(true)))
}

func TestNewErrCodeFormatsSafely(t *testing.T) {
	// A VBA-source-controlled string containing a stray "%" must never
	// be interpreted as a format verb; callers pass it as an argument to
	// "%s", never as the format string itself.
	msg := "100% broken"
	e := NewErrCode(5, "%s", msg)
	assert.Equal(t, msg, e.Message)
	assert.Equal(t, 5, e.Code)
}
