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

package docctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddStreamAppendsInOrder(t *testing.T) {
	c := New()
	c.AddStream("vbaProject.bin", "VBA/Module1", "Module1", "Sub Foo()\nEnd Sub")
	c.AddStream("vbaProject.bin", "VBA/ThisDocument", "ThisDocument", "Sub AutoOpen()\nEnd Sub")

	assert.Equal(t, 2, len(c.Streams))
	assert.Equal(t, "Module1", c.Streams[0].VBAFilename)
	assert.Equal(t, "ThisDocument", c.Streams[1].VBAFilename)
}

func TestDocumentVariableLookupIsCaseInsensitive(t *testing.T) {
	c := New()
	c.SetDocumentVariable("payload_url", "http://example.com/a")

	v, ok := c.LookupDocumentVariable("PAYLOAD_URL")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a", v)

	v, ok = c.LookupDocumentVariable("PayloadUrl")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/a", v)
}

func TestDocumentVariableLookupMissingReturnsFalse(t *testing.T) {
	c := New()
	_, ok := c.LookupDocumentVariable("NoSuchVar")
	assert.False(t, ok)
}

func TestCustomPropertyLookupIsCaseInsensitive(t *testing.T) {
	c := New()
	c.SetCustomProperty("Company Name", "Acme")

	v, ok := c.LookupCustomProperty("company name")
	assert.True(t, ok)
	assert.Equal(t, "Acme", v)
}

func TestAddFormControlIndexesByBareAndQualifiedName(t *testing.T) {
	c := New()
	fc := FormControl{Name: "TextBox1", Caption: "hello"}
	c.AddFormControl("VBA/UserForm1", fc)

	bare, ok := c.FormControls["TextBox1"]
	assert.True(t, ok)
	assert.Equal(t, "hello", bare.Caption)

	qualified, ok := c.FormControls["VBA/UserForm1!TextBox1"]
	assert.True(t, ok)
	assert.Equal(t, "hello", qualified.Caption)
}

func TestNewContextInitializesEmptyMaps(t *testing.T) {
	c := New()
	assert.NotNil(t, c.DocumentVariables)
	assert.NotNil(t, c.CustomProperties)
	assert.NotNil(t, c.FormControls)
	assert.Empty(t, c.Streams)
}
