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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSourceSnippetExtractsRequestedLine(t *testing.T) {
	src := NewTextSource("Module1", "Dim x As Long\r\nx = 1\r\nEnd Sub")

	snippet, ok := src.Snippet(2)
	assert.True(t, ok)
	assert.Equal(t, "x = 1", snippet)
}

func TestTextSourceSnippetOnLastLineStopsAtEOF(t *testing.T) {
	src := NewTextSource("Module1", "Dim x As Long\nEnd Sub")

	snippet, ok := src.Snippet(2)
	assert.True(t, ok)
	assert.Equal(t, "End Sub", snippet)
}

func TestTextSourceSnippetOutOfRangeReturnsFalse(t *testing.T) {
	src := NewTextSource("Module1", "Dim x As Long")
	_, ok := src.Snippet(99)
	assert.False(t, ok)
}

func TestErrorsAccumulatesInReportOrder(t *testing.T) {
	src := NewTextSource("Module1", "Dim x\nEnd Sub")
	errs := NewErrors(src)
	assert.True(t, errs.Empty())

	errs.ReportError(NewLocation("Module1", 1, 5), "unexpected %s", "token")
	errs.ReportError(NewLocation("Module1", 2, 1), "missing End Function")

	assert.False(t, errs.Empty())
	assert.Equal(t, 2, len(errs.GetErrors()))

	s := errs.String()
	assert.Contains(t, s, "unexpected token")
	assert.Contains(t, s, "missing End Function")
	assert.Contains(t, s, "Module1:1:5")
}

func TestErrorToDisplayStringPointsCaretAtColumn(t *testing.T) {
	src := NewTextSource("Module1", "x = 1 +")
	e := &Error{Source: src, Location: NewLocation("Module1", 1, 8), Message: "unexpected end of expression"}

	s := e.ToDisplayString()
	assert.Contains(t, s, "ERROR: Module1:1:8: unexpected end of expression")
	assert.Contains(t, s, "x = 1 +")
	assert.Contains(t, s, "^")
}
