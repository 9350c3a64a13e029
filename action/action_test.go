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

package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogPreservesOrder(t *testing.T) {
	log := NewLog()
	log.Append(New(KindShellExec, "whoami", nil))
	log.Append(New(KindFileWrite, "out.txt", map[string]string{"path": "out.txt"}))
	log.Append(New(KindNetworkFetch, "http://example.com", nil))

	entries := log.Entries()
	assert.Equal(t, 3, log.Len())
	assert.Equal(t, KindShellExec, entries[0].Kind)
	assert.Equal(t, KindFileWrite, entries[1].Kind)
	assert.Equal(t, KindNetworkFetch, entries[2].Kind)
}

func TestNewDefaultsNilParams(t *testing.T) {
	a := New(KindOther, "desc", nil)
	assert.NotNil(t, a.Params)
	assert.Empty(t, a.Params)
}

func TestActionString(t *testing.T) {
	a := New(KindShellExec, "cmd /c whoami", map[string]string{"command": "cmd /c whoami"})
	assert.Equal(t, "ShellExec: cmd /c whoami", a.String())
}
