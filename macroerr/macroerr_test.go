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

package macroerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindWrapsSentinel(t *testing.T) {
	k := Parse("line %d: unexpected token", 3)
	assert.True(t, errors.Is(k, ErrParse))
	assert.False(t, errors.Is(k, ErrRuntime))
	assert.Equal(t, "parse failed: line 3: unexpected token", k.Error())
}

func TestKindWithoutDetail(t *testing.T) {
	k := &Kind{sentinel: ErrTimeout}
	assert.Equal(t, ErrTimeout.Error(), k.Error())
}

func TestEveryConstructorWrapsItsSentinel(t *testing.T) {
	cases := []struct {
		name     string
		build    func(string, ...interface{}) *Kind
		sentinel error
	}{
		{"Normalize", Normalize, ErrNormalize},
		{"Parse", Parse, ErrParse},
		{"Recursion", Recursion, ErrRecursion},
		{"LoopBound", LoopBound, ErrLoopBound},
		{"Unresolved", Unresolved, ErrUnresolved},
		{"Runtime", Runtime, ErrRuntime},
		{"TypeMismatch", TypeMismatch, ErrTypeMismatch},
		{"NotFound", NotFound, ErrNotFound},
		{"Timeout", Timeout, ErrTimeout},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			k := c.build("detail")
			assert.True(t, errors.Is(k, c.sentinel))
		})
	}
}
