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

// Package action records the ordered log of observable effects an
// emulation run produces: every builtin call that reaches outside the
// symbolic value model (file writes, shell invocations, network
// requests, registry access) appends one entry here rather than
// actually performing the effect.
package action

import "fmt"

// Kind names the category of an observed action.
type Kind string

const (
	KindShellExec    Kind = "ShellExec"
	KindFileWrite    Kind = "FileWrite"
	KindFileRead     Kind = "FileRead"
	KindNetworkFetch Kind = "NetworkFetch"
	KindRegistry     Kind = "Registry"
	KindCreateObject Kind = "CreateObject"
	KindProcessStart Kind = "ProcessStart"
	KindEnvironment  Kind = "Environment"
	KindOther        Kind = "Other"
)

// Action is one ordered entry in the log.
type Action struct {
	Kind        Kind
	Params      map[string]string
	Description string
}

func New(kind Kind, description string, params map[string]string) Action {
	if params == nil {
		params = map[string]string{}
	}
	return Action{Kind: kind, Params: params, Description: description}
}

func (a Action) String() string {
	return fmt.Sprintf("%s: %s", a.Kind, a.Description)
}

// Log is the append-only, ordered sequence of actions a single analysis
// run produces.
type Log struct {
	entries []Action
}

func NewLog() *Log { return &Log{} }

func (l *Log) Append(a Action) { l.entries = append(l.entries, a) }

func (l *Log) Entries() []Action { return l.entries }

func (l *Log) Len() int { return len(l.entries) }
