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

package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// debugWriter accumulates the pretty-printed form of a node tree; the
// same writer threads through nested writeDebugString calls so that
// indentation is tracked once, grounded on the original ast/debug.go.
type debugWriter struct {
	buffer    bytes.Buffer
	indent    int
	lineStart bool
}

func newDebugWriter() *debugWriter {
	return &debugWriter{lineStart: true}
}

func (w *debugWriter) append(s string) {
	w.doIndent()
	w.buffer.WriteString(s)
}

func (w *debugWriter) appendFormat(f string, args ...interface{}) {
	w.append(fmt.Sprintf(f, args...))
}

func (w *debugWriter) doIndent() {
	if w.lineStart {
		w.lineStart = false
		w.buffer.WriteString(strings.Repeat("  ", w.indent))
	}
}

func (w *debugWriter) appendExpr(e Expr) {
	if e == nil {
		w.append("<nil>")
		return
	}
	e.writeDebugString(w)
}

func (w *debugWriter) appendStmt(s Stmt) {
	if s == nil {
		return
	}
	s.writeDebugString(w)
}

func (w *debugWriter) appendLine() {
	w.buffer.WriteString("\n")
	w.lineStart = true
}

func (w *debugWriter) addIndent()    { w.indent++ }
func (w *debugWriter) removeIndent() { w.indent-- }

func (w *debugWriter) String() string { return w.buffer.String() }

// ToDebugString renders an expression's stable printable form, used to
// build an Unresolved value's symbolic text and action-log descriptions.
func ToDebugString(e Expr) string {
	w := newDebugWriter()
	e.writeDebugString(w)
	return w.String()
}

// ToDebugStringStmt renders a statement's stable printable form.
func ToDebugStringStmt(s Stmt) string {
	w := newDebugWriter()
	s.writeDebugString(w)
	return w.String()
}
