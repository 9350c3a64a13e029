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
	"fmt"
	"strings"
)

// Array is VBA's array value: reference semantics (spec's "share-on-
// assign for objects and arrays"), a single dimension whose lower bound
// is held in LBound. Every array built in this module starts at 0;
// `Option Base 1` is not honored.
type Array struct {
	Elements []Val
	LBound   int
}

// NewArray wraps elements with the default (0) lower bound, as produced
// by Array(...) and Split.
func NewArray(elements []Val) *Array {
	return &Array{Elements: elements}
}

func (a *Array) Kind() Kind { return KindObject }

func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = ToDisplayString(e)
	}
	return fmt.Sprintf("Array(%s)", strings.Join(parts, ", "))
}

// UBound returns the highest valid index, or false if the array is
// empty (matching VBA's "subscript out of range" on Ubound of Erase'd
// dynamic array).
func (a *Array) UBound() (int, bool) {
	if len(a.Elements) == 0 {
		return 0, false
	}
	return a.LBound + len(a.Elements) - 1, true
}

// Redim grows or shrinks the backing slice. When preserve is true,
// existing overlapping elements are kept; shrinking truncates, growing
// pads with Empty.
func (a *Array) Redim(newUBound int, preserve bool) {
	newLen := newUBound - a.LBound + 1
	if newLen < 0 {
		newLen = 0
	}
	if !preserve {
		a.Elements = make([]Val, newLen)
		for i := range a.Elements {
			a.Elements[i] = EmptyValue
		}
		return
	}
	next := make([]Val, newLen)
	for i := range next {
		next[i] = EmptyValue
	}
	copy(next, a.Elements)
	a.Elements = next
}
