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

import "fmt"

// Cell is the narrow interface a runtime environment slot exposes back to
// the value domain, letting Ref resolve without value importing runtime
// (runtime imports value; not the other way around).
type Cell interface {
	Get() Val
	Set(Val)
	Name() string
}

// Ref is a reference to a live environment cell, used for ByRef parameter
// passing. Invariant (i) in spec.md §3: every Ref resolves to a live cell
// in some enclosing scope for the lifetime of the frame that created it.
type Ref struct {
	Cell Cell
}

func (r Ref) Kind() Kind { return KindRef }

func (r Ref) String() string {
	if r.Cell == nil {
		return "Ref(<nil>)"
	}
	return fmt.Sprintf("Ref(%s)", r.Cell.Name())
}

// Deref returns the value currently held by the referenced cell, or
// Empty if the Ref is dangling.
func (r Ref) Deref() Val {
	if r.Cell == nil {
		return EmptyValue
	}
	return r.Cell.Get()
}
