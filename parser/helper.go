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

package parser

import "github.com/macrowalk/macrowalk/common"

// parserHelper assigns stable, increasing node ids as the parser builds
// the tree, grounded on the teacher's own parserHelper/id() bookkeeping,
// stripped of its protobuf Expr construction (there is no checked
// AST to serialize into here; nodes are built directly by the caller).
type parserHelper struct {
	source common.Source
	nextID int64
}

func newParserHelper(source common.Source) *parserHelper {
	return &parserHelper{source: source, nextID: 1}
}

// id returns a fresh node identifier.
func (p *parserHelper) id() int64 {
	id := p.nextID
	p.nextID++
	return id
}

// loc builds a common.Location from a scanned token's position.
func (p *parserHelper) loc(tok Token) common.Location {
	return common.NewLocation(p.source.Name(), tok.Line, tok.Column)
}
