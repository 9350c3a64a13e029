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

// TokenKind enumerates the lexical categories the hand-written scanner
// produces; VBA keywords are recognized as a sub-kind of Ident so the
// scanner stays a single table-free switch, matching the informal,
// no-grammar-generator style spec.md §3 requires.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokKeyword
	TokInt
	TokDouble
	TokString
	TokDate
	TokOp
	TokLParen
	TokRParen
	TokComma
	TokDot
	TokColon
	TokNewline
	TokHash // leading `#` before a line number or compiler directive
)

// Token is one scanned lexeme with its source position (1-based line
// and column, matching common.Location).
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

// keywords lists every reserved word the parser treats specially; every
// other identifier, however it is cased, is a plain TokIdent. Lookup is
// case-insensitive as VBA requires.
var keywords = map[string]bool{
	"and": true, "as": true, "boolean": true, "byref": true, "byte": true,
	"byval": true, "call": true, "case": true, "close": true, "const": true,
	"currency": true, "declare": true, "dim": true, "do": true, "double": true,
	"each": true, "else": true, "elseif": true, "empty": true, "end": true,
	"enum": true, "eqv": true, "erase": true, "error": true, "exit": true,
	"false": true, "for": true, "function": true, "get": true, "global": true,
	"goto": true, "if": true, "imp": true, "in": true, "input": true,
	"integer": true, "is": true, "let": true, "lib": true, "like": true,
	"line": true, "long": true, "loop": true, "mod": true, "next": true,
	"not": true, "nothing": true, "null": true, "on": true, "open": true,
	"optional": true, "or": true, "output": true, "paramarray": true,
	"preserve": true, "print": true, "private": true, "property": true,
	"public": true, "redim": true, "resume": true, "select": true, "set": true,
	"single": true, "static": true, "step": true, "string": true, "sub": true,
	"then": true, "to": true, "true": true, "type": true, "until": true,
	"variant": true, "wend": true, "while": true, "with": true, "write": true,
	"xor": true, "alias": true, "binary": true, "random": true, "append": true,
	"attribute": true, "raise": true, "number": true, "description": true,
	"source": true,
}

func isKeyword(lower string) bool { return keywords[lower] }
