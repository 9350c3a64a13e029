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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultArtifactDirStripsExtension(t *testing.T) {
	assert.Equal(t, "invoice_artifacts", defaultArtifactDir(`/tmp/samples/invoice.vba`))
	assert.Equal(t, "macro1_artifacts", defaultArtifactDir("macro1.bas"))
}

func TestLoadSingleStreamDocWrapsFileAsOneStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Module1.bas")
	assert.NoError(t, os.WriteFile(path, []byte("Sub AutoOpen()\nEnd Sub"), 0o644))

	doc, err := loadSingleStreamDoc(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(doc.Streams))
	assert.Equal(t, "Module1", doc.Streams[0].VBAFilename)
	assert.Contains(t, doc.Streams[0].Source, "AutoOpen")
}

func TestBuildOptionsReflectsBoundFlags(t *testing.T) {
	stripUseless = false
	entryPoints = []string{"AutoOpen"}
	parallelParse = true
	recursionLimit = 42
	loopIterationLimit = 99
	packratCacheSize = 128
	logLevel = 1

	opts, err := buildOptions()
	assert.NoError(t, err)
	assert.False(t, opts.StripUseless)
	assert.Equal(t, []string{"AutoOpen"}, opts.EntryPoints)
	assert.True(t, opts.ParallelParse)
	assert.Equal(t, 42, opts.RecursionLimit)
	assert.Equal(t, 99, opts.LoopIterationLimit)
	assert.Equal(t, 128, opts.PackratCacheSize)
	assert.Equal(t, 1, opts.LogLevel)
}
