// Copyright 2021 Google LLC
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

import "github.com/macrowalk/macrowalk/ast"

// ruleID names one memoizable parse rule; expression parsing in VBA is
// Pratt-style (precedence climbing) rather than PEG-rule-per-level.
// ParseExpr memoizes under ruleExpr; ruleUnary and rulePostfix are
// declared but no rule currently stores entries under them.
type ruleID int

const (
	ruleExpr ruleID = iota
	ruleUnary
	rulePostfix
)

type packratKey struct {
	rule   ruleID
	offset int
}

type packratEntry struct {
	expr    ast.Expr
	nextPos int
	ok      bool
}

// packratCache is a bounded memoization table keyed on (rule, token
// index), one per parser instance; instances are never shared across
// the worker pool that parses a document's streams concurrently; each
// worker owns its own parser and therefore its own cache.
type packratCache struct {
	entries map[packratKey]packratEntry
	limit   int
}

func newPackratCache(limit int) *packratCache {
	return &packratCache{entries: make(map[packratKey]packratEntry), limit: limit}
}

func (c *packratCache) get(rule ruleID, offset int) (packratEntry, bool) {
	e, ok := c.entries[packratKey{rule, offset}]
	return e, ok
}

func (c *packratCache) put(rule ruleID, offset int, e packratEntry) {
	if c.limit > 0 && len(c.entries) >= c.limit {
		return
	}
	c.entries[packratKey{rule, offset}] = e
}

// Reset discards all memoized entries, run after each parse to cap
// memory growth across a large number of streams.
func (c *packratCache) Reset() {
	c.entries = make(map[packratKey]packratEntry)
}
