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

package common

import (
	"fmt"
	"strings"
)

// Error represents a diagnostic tied to a location within a Source.
type Error struct {
	Source   Source
	Location Location
	Message  string
}

// ToDisplayString renders the error with a caret pointing at the offending
// column, preceded by the offending source line when available.
func (e *Error) ToDisplayString() string {
	name := "<input>"
	if e.Source != nil {
		name = e.Source.Name()
	}
	result := fmt.Sprintf("ERROR: %s:%d:%d: %s", name, e.Location.Line(), e.Location.Column(), e.Message)
	if e.Source == nil {
		return result
	}
	if snippet, found := e.Source.Snippet(e.Location.Line()); found {
		result += "\n | " + snippet
		result += "\n | " + strings.Repeat(".", nonNegative(e.Location.Column()-1)) + "^"
	}
	return result
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
