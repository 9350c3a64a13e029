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

import "fmt"

// Errors is an accumulator for diagnostics raised against one Source.
type Errors struct {
	source Source
	errors []Error
}

// NewErrors returns an empty Errors accumulator bound to source.
func NewErrors(source Source) *Errors {
	return &Errors{source: source, errors: []Error{}}
}

// ReportError records a diagnostic at the given location.
func (e *Errors) ReportError(l Location, format string, args ...interface{}) {
	e.errors = append(e.errors, Error{
		Source:   e.source,
		Location: l,
		Message:  fmt.Sprintf(format, args...),
	})
}

// GetErrors returns every diagnostic reported so far.
func (e *Errors) GetErrors() []Error {
	return e.errors[:]
}

// Empty reports whether no diagnostic has been recorded.
func (e *Errors) Empty() bool {
	return len(e.errors) == 0
}

func (e *Errors) String() string {
	result := ""
	for i, err := range e.errors {
		if i > 0 {
			result += "\n"
		}
		result += err.ToDisplayString()
	}
	return result
}
