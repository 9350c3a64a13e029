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

package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macrowalk/macrowalk/value"
)

func TestCaseInsensitiveLookup(t *testing.T) {
	env := NewGlobalEnv()
	env.Declare("MyVar", value.Int(1))

	for _, name := range []string{"myvar", "MYVAR", "MyVar", "mYvAr"} {
		c, ok := env.Lookup(name)
		assert.True(t, ok, "lookup of %q should resolve", name)
		assert.Equal(t, value.Int(1), c.Get())
	}
}

func TestChildEnvShadowsParent(t *testing.T) {
	parent := NewGlobalEnv()
	parent.Declare("x", value.Int(1))

	child := NewChildEnv(parent)
	child.Declare("x", value.Int(2))

	c, ok := child.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int(2), c.Get())

	pc, ok := parent.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, value.Int(1), pc.Get(), "shadowing in the child must not mutate the parent's cell")
}

func TestChildEnvFallsThroughToParent(t *testing.T) {
	parent := NewGlobalEnv()
	parent.Declare("shared", value.NewString("hi"))
	child := NewChildEnv(parent)

	c, ok := child.Lookup("shared")
	assert.True(t, ok)
	assert.Equal(t, "hi", c.Get().String())
}

func TestBindAliasesCallerCell(t *testing.T) {
	caller := NewGlobalEnv()
	callerCell := caller.Declare("arg", value.Int(5))

	callee := NewChildEnv(caller)
	callee.Bind("param", callerCell)

	calleeCell, ok := callee.Lookup("param")
	assert.True(t, ok)
	calleeCell.Set(value.Int(99))

	assert.Equal(t, value.Int(99), callerCell.Get(), "a ByRef bind must alias the same cell, not copy it")
}

func TestActiveWithResolvesNearestTarget(t *testing.T) {
	base := NewGlobalEnv()
	assert.Nil(t, ActiveWith(base))

	outer := NewWithEnv(base, value.NewString("outer"))
	assert.Equal(t, value.NewString("outer"), ActiveWith(outer))

	inner := NewWithEnv(outer, value.NewString("inner"))
	assert.Equal(t, value.NewString("inner"), ActiveWith(inner))

	plainChild := NewChildEnv(inner)
	assert.Equal(t, value.NewString("inner"), ActiveWith(plainChild), "a non-With child still resolves through its nearest With ancestor")
}
