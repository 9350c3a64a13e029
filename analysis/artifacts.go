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

package analysis

import (
	"os"
	"path/filepath"
	"strconv"
)

// fsArtifactWriter is the concrete builtins.ArtifactWriter a real Run
// uses: every builtin-modeled file write lands flat under one
// directory per spec.md §6 ("artifacts are written flat, one file per
// write, to <basename>_artifacts/"). A name collision (two writes to
// files that share a basename) is disambiguated with a numeric suffix
// rather than overwriting the earlier artifact.
type fsArtifactWriter struct {
	dir  string
	seen map[string]int
}

func newFSArtifactWriter(dir string) (*fsArtifactWriter, error) {
	if dir == "" {
		return &fsArtifactWriter{seen: make(map[string]int)}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fsArtifactWriter{dir: dir, seen: make(map[string]int)}, nil
}

// WriteArtifact persists data under name, deduplicating repeat writes
// to the same basename within a run by appending "-N" before the
// extension.
func (w *fsArtifactWriter) WriteArtifact(name string, data []byte) error {
	if w.dir == "" {
		return nil
	}
	base := filepath.Base(name)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "artifact"
	}
	n := w.seen[base]
	w.seen[base] = n + 1
	if n > 0 {
		ext := filepath.Ext(base)
		stem := base[:len(base)-len(ext)]
		base = stem + "-" + strconv.Itoa(n) + ext
	}
	return os.WriteFile(filepath.Join(w.dir, base), data, 0o644)
}
