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

// Package common defines types shared by the normalizer, parser and
// interpreter: source locations and accumulated diagnostics.
package common

// Location is a position within a Source.
type Location interface {
	Description() string
	Line() int   // 1-based line number within source.
	Column() int // 1-based column number within source.
}

// SourceLocation is a concrete Location.
type SourceLocation struct {
	description string
	line        int
	column      int
}

var (
	_ Location = &SourceLocation{}
	// NoLocation is used for synthesized nodes that have no source position.
	NoLocation Location = &SourceLocation{line: 0, column: 0}
)

// NewLocation builds a Location for the given 1-based line/column.
func NewLocation(description string, line, column int) Location {
	return &SourceLocation{description: description, line: line, column: column}
}

func (l *SourceLocation) Description() string { return l.description }
func (l *SourceLocation) Line() int            { return l.line }
func (l *SourceLocation) Column() int          { return l.column }
