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

// Null is VBA's Null: propagates through comparisons (spec.md §4.D).
type Null struct{}

var NullValue = Null{}

func (n Null) Kind() Kind     { return KindNull }
func (n Null) String() string { return "Null" }
func (n Null) Compare(Val) Val { return NullValue }

// Empty is VBA's Empty: the default value of an uninitialized Variant.
type Empty struct{}

var EmptyValue = Empty{}

func (e Empty) Kind() Kind     { return KindEmpty }
func (e Empty) String() string { return "" }

func (e Empty) Add(other Val) Val {
	if n, ok := ToFloat(other); ok {
		return Double(n)
	}
	return other
}

// Missing is VBA's IsMissing sentinel for an omitted optional parameter.
type Missing struct{}

var MissingValue = Missing{}

func (m Missing) Kind() Kind     { return KindMissing }
func (m Missing) String() string { return "" }
