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

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/macrowalk/macrowalk/docctx"
)

// loadSingleStreamDoc reads one VBA source file off disk and wraps it
// as a one-stream docctx.Context. Container extraction (OLE/ZIP/MHT,
// multiple streams per document, document variables, form controls)
// is the external collaborator's job per spec.md §6; this CLI only
// ever sees an already-extracted macro source.
func loadSingleStreamDoc(path string) (*docctx.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	doc := docctx.New()
	doc.AddStream(name, name, strings.TrimSuffix(name, filepath.Ext(name)), string(data))
	return doc, nil
}

// defaultArtifactDir mirrors spec.md §6's "./<basename>_artifacts/"
// convention when --artifact-dir was not given explicitly.
func defaultArtifactDir(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_artifacts"
}
