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

package interpreter

import (
	"path/filepath"
	"strings"

	"github.com/macrowalk/macrowalk/action"
	"github.com/macrowalk/macrowalk/builtins"
)

// fileHandle is a symbolic view of one Open'd file number: writes
// (Print #, Write #) accumulate into buf rather than touching a real
// file, and Close is where the accumulated content is handed to the
// run's ArtifactWriter. lines/lineIdx support Line Input # against an
// Input-mode handle whose path happens to match a document stream
// text the caller seeded via seedLines; unseeded handles answer Line
// Input with an "input past end of file" error, same as a real empty
// file opened for Input.
type fileHandle struct {
	path    string
	mode    string
	buf     strings.Builder
	lines   []string
	lineIdx int
}

// fileTable is the per-run registry of open handles, keyed by the
// VBA file number from Open ... As #N.
type fileTable struct {
	handles map[int]*fileHandle
}

func newFileTable() *fileTable {
	return &fileTable{handles: make(map[int]*fileHandle)}
}

func (t *fileTable) open(n int, path, mode string) {
	t.handles[n] = &fileHandle{path: path, mode: mode}
}

func (t *fileTable) get(n int) (*fileHandle, bool) {
	h, ok := t.handles[n]
	return h, ok
}

// seedLines lets a caller preload Line Input # content for a handle,
// used when the document context happens to carry an inline text
// resource matching the Open'd path; unused unless the analysis layer
// wires it in.
func (t *fileTable) seedLines(n int, lines []string) {
	if h, ok := t.handles[n]; ok {
		h.lines = lines
	}
}

// close persists h's accumulated buffer as an artifact if it was ever
// written to, logs the write, and removes the handle.
func (t *fileTable) close(ctx *builtins.Context, n int) {
	h, ok := t.handles[n]
	if !ok {
		return
	}
	t.flush(ctx, h)
	delete(t.handles, n)
}

func (t *fileTable) closeAll(ctx *builtins.Context) {
	for n, h := range t.handles {
		t.flush(ctx, h)
		delete(t.handles, n)
	}
}

func (t *fileTable) flush(ctx *builtins.Context, h *fileHandle) {
	if h.buf.Len() == 0 {
		return
	}
	name := filepath.Base(h.path)
	if name == "" || name == "." {
		name = "artifact"
	}
	ctx.Actions.Append(action.New(action.KindFileWrite, h.path, map[string]string{
		"path": h.path,
		"mode": h.mode,
	}))
	if ctx.Artifacts != nil {
		_ = ctx.Artifacts.WriteArtifact(name, []byte(h.buf.String()))
	}
}
