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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := Default()
	assert.True(t, o.StripUseless)
	assert.False(t, o.ParallelParse)
	assert.Equal(t, 500, o.RecursionLimit)
	assert.Equal(t, 10000, o.LoopIterationLimit)
	assert.Equal(t, 4096, o.PackratCacheSize)
	assert.Nil(t, o.EntryPoints)
}

func TestNewAppliesOptionsInOrder(t *testing.T) {
	o, err := New(
		WithStripUseless(false),
		WithEntryPoints("AutoOpen", "Workbook_Open"),
		WithParallelParse(true),
		WithRecursionLimit(100),
		WithLoopIterationLimit(50),
		WithPackratCacheSize(128),
		WithLogLevel(2),
	)
	assert.NoError(t, err)
	assert.False(t, o.StripUseless)
	assert.Equal(t, []string{"AutoOpen", "Workbook_Open"}, o.EntryPoints)
	assert.True(t, o.ParallelParse)
	assert.Equal(t, 100, o.RecursionLimit)
	assert.Equal(t, 50, o.LoopIterationLimit)
	assert.Equal(t, 128, o.PackratCacheSize)
	assert.Equal(t, 2, o.LogLevel)
}

func TestNegativeBoundsRejected(t *testing.T) {
	cases := []Option{
		WithRecursionLimit(-1),
		WithLoopIterationLimit(-1),
		WithPackratCacheSize(-1),
	}
	for _, opt := range cases {
		_, err := New(opt)
		assert.Error(t, err)
	}
}

func TestNilOptionIgnored(t *testing.T) {
	o, err := New(nil, WithRecursionLimit(7))
	assert.NoError(t, err)
	assert.Equal(t, 7, o.RecursionLimit)
}
