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
	"regexp"
	"strings"
)

var lineRegexp = regexp.MustCompile("(?m)^")

// Source is a named body of VBA source text, addressable by 1-based line.
type Source interface {
	Name() string
	Snippet(line int) (string, bool)
	Contents() string
}

// TextSource is a Source backed by an in-memory string, typically one
// macro stream's normalized text.
type TextSource struct {
	name     string
	contents string
}

var _ Source = &TextSource{}

// NewTextSource returns a TextSource over contents, named for diagnostics.
func NewTextSource(name string, contents string) Source {
	return &TextSource{name: name, contents: contents}
}

func (s *TextSource) Name() string     { return s.name }
func (s *TextSource) Contents() string { return s.contents }

func (s *TextSource) Snippet(line int) (string, bool) {
	if s.contents == "" {
		return "", false
	}
	start := -1
	end := -1
	for i, m := range lineRegexp.FindAllStringIndex(s.contents, -1) {
		if i+1 == line {
			start = m[0]
			continue
		}
		if i == line {
			end = m[0]
			break
		}
	}
	if start == -1 {
		return "", false
	}
	if end == -1 {
		end = len(s.contents)
	}
	return strings.TrimRight(s.contents[start:end], "\r\n"), true
}
