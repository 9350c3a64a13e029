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

package value

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// String is a VBA string: a code-page-aware byte sequence that decodes
// lazily to UTF-8 for display, comparison and concatenation, per spec.md
// §3's "String(bytes with code-page awareness)". Document text harvested
// from an OLE stream by the external container reader is frequently
// CP1252 or another Windows code page; carrying the raw bytes alongside a
// decode lets macrowalk round-trip obfuscated literals without losing
// fidelity to a premature UTF-8 conversion.
type String struct {
	raw     []byte
	page    *charmap.Charmap
	text    string
	decoded bool
}

func (s String) Kind() Kind { return KindString }

// NewString builds a String from a Go string already known to be UTF-8
// (the common case: literals read out of a parsed token).
func NewString(s string) String {
	return String{text: s, decoded: true}
}

// NewCodePageString builds a String from raw document bytes tagged with a
// Windows code page, decoding lazily on first use.
func NewCodePageString(raw []byte, page *charmap.Charmap) String {
	return String{raw: raw, page: page}
}

// Text returns the decoded UTF-8 form, decoding from the code page on
// every call; the decoded text is not cached.
func (s String) Text() string {
	if s.decoded {
		return s.text
	}
	if s.page == nil {
		return string(s.raw)
	}
	decoded, err := s.page.NewDecoder().String(string(s.raw))
	if err != nil {
		return string(s.raw)
	}
	return decoded
}

// Bytes returns the original undecoded bytes, or the UTF-8 bytes of a
// string constructed directly from Go source text.
func (s String) Bytes() []byte {
	if s.raw != nil {
		return s.raw
	}
	return []byte(s.text)
}

func (s String) String() string { return s.Text() }

func (s String) Add(other Val) Val {
	if os, ok := other.(String); ok {
		return NewString(s.Text() + os.Text())
	}
	// "+" concatenates only when the other side is also a string;
	// otherwise it is a numeric add attempted via coercion.
	if n, ok := ToFloat(other); ok {
		if selfNum, ok2 := ToFloat(s); ok2 {
			return Double(selfNum + n)
		}
	}
	return NewErr("type mismatch in '+'")
}

func (s String) Concat(other Val) Val {
	return NewString(s.Text() + ToDisplayString(other))
}

func (s String) Compare(other Val) Val {
	os, ok := other.(String)
	if !ok {
		if _, isNull := other.(Null); isNull {
			return NullValue
		}
		return NewErr("type mismatch in comparison")
	}
	switch {
	case s.Text() < os.Text():
		return IntNegOne
	case s.Text() > os.Text():
		return IntOne
	default:
		return IntZero
	}
}

// Len is the VBA Len() builtin's result: character count, not byte count.
func (s String) Len() int { return len([]rune(s.Text())) }

// Like implements the VBA `Like` operator's simplified wildcard matching
// (`*` any run, `?` any one character, `#` any digit).
func (s String) Like(pattern string) bool {
	return likeMatch(s.Text(), pattern)
}

func likeMatch(text, pattern string) bool {
	if pattern == "" {
		return text == ""
	}
	p := []rune(pattern)
	switch p[0] {
	case '*':
		rest := string(p[1:])
		for i := 0; i <= len(text); i++ {
			if likeMatch(text[i:], rest) {
				return true
			}
		}
		return false
	case '?':
		if text == "" {
			return false
		}
		t := []rune(text)
		return likeMatch(string(t[1:]), string(p[1:]))
	case '#':
		t := []rune(text)
		if len(t) == 0 || t[0] < '0' || t[0] > '9' {
			return false
		}
		return likeMatch(string(t[1:]), string(p[1:]))
	default:
		t := []rune(text)
		if len(t) == 0 || t[0] != p[0] {
			return false
		}
		return likeMatch(string(t[1:]), string(p[1:]))
	}
}

// CaseFold returns the ASCII-lowercased form used for identifier equality
// throughout the runtime (spec.md invariant (v)).
func CaseFold(s string) string {
	return strings.ToLower(s)
}
