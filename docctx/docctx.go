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

// Package docctx models the read-only input supplied by the external
// container-extraction collaborator: macro streams, document variables,
// custom document properties, flattened document text and form-control
// records. The core never reaches into an OLE/ZIP/MHT container itself;
// it only consumes whatever shape this package describes.
package docctx

import (
	"strings"

	strcase "github.com/stoewer/go-strcase"
)

// Stream is one extracted macro source: subfilename/stream_path locate
// it inside the container, vba_filename is its logical module name, and
// Source is the raw (pre-normalization) text.
type Stream struct {
	SubFilename string
	StreamPath  string
	VBAFilename string
	Source      string
}

// FormControl is one UserForm control's harvested properties, keyed by
// both its short name and its stream-qualified name so lookups work
// whether or not the macro qualifies the reference.
type FormControl struct {
	Name          string
	Tag           string
	Caption       string
	Value         string
	Text          string
	ControlTipText string
}

// Context bundles everything the global environment is seeded from
// before emulation begins.
type Context struct {
	Streams           []Stream
	DocumentVariables map[string]string
	CustomProperties  map[string]string
	DocumentText      string
	FormControls      map[string]FormControl // keyed by stream_path + "!" + qualified name
}

// New builds an empty Context ready to be populated by the collaborator.
func New() *Context {
	return &Context{
		DocumentVariables: make(map[string]string),
		CustomProperties:  make(map[string]string),
		FormControls:      make(map[string]FormControl),
	}
}

// AddStream appends one macro stream tuple.
func (c *Context) AddStream(subfilename, streamPath, vbaFilename, source string) {
	c.Streams = append(c.Streams, Stream{
		SubFilename: subfilename,
		StreamPath:  streamPath,
		VBAFilename: vbaFilename,
		Source:      source,
	})
}

// SetDocumentVariable records one (name, value) document-variable pair.
// Names are normalized (snake_case and PascalCase spellings unified via
// UpperCamelCase, then lower-cased) so lookups are forgiving of the
// heuristic extractor's casing noise.
func (c *Context) SetDocumentVariable(name, value string) {
	c.DocumentVariables[normalizeKey(name)] = value
}

// SetCustomProperty records one (name, value) custom-document-property
// pair.
func (c *Context) SetCustomProperty(name, value string) {
	c.CustomProperties[normalizeKey(name)] = value
}

// AddFormControl records one form-control record under both its bare
// and stream-qualified keys.
func (c *Context) AddFormControl(streamPath string, fc FormControl) {
	c.FormControls[fc.Name] = fc
	c.FormControls[streamPath+"!"+fc.Name] = fc
}

// LookupDocumentVariable performs a case-insensitive lookup.
func (c *Context) LookupDocumentVariable(name string) (string, bool) {
	v, ok := c.DocumentVariables[normalizeKey(name)]
	return v, ok
}

// LookupCustomProperty performs a case-insensitive lookup.
func (c *Context) LookupCustomProperty(name string) (string, bool) {
	v, ok := c.CustomProperties[normalizeKey(name)]
	return v, ok
}

func normalizeKey(name string) string {
	return strings.ToLower(strcase.UpperCamelCase(name))
}
