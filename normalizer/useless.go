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

package normalizer

import (
	"regexp"
	"strings"
)

// interestingBuiltins names calls whose presence on a line disqualifies
// that line's assignment from being considered dead, since the call may
// carry an observable side effect even when its result is unused.
var interestingBuiltins = []string{
	"createprocessa", "createprocessw", "shell", "run", "createobject",
	"open", "getobject", "create", "environ", "createtextfile", "eval",
	"winexec", "urldownloadtofile", "setexpandedstringvalue", "print",
}

var (
	topLevelAssignRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_.]*)\s*=\s*[^=]`)
	boolContextRe     = regexp.MustCompile(`(?i)^\s*(If|For|Do)\b`)
	withMemberRe      = regexp.MustCompile(`^\s*\.[A-Za-z_]`)
	subNameChangeRe   = regexp.MustCompile(`(?i)Sub\s+([A-Za-z_][A-Za-z0-9_]*)_Change\s*\(`)
	declareLibRe      = regexp.MustCompile(`(?i)Declare\s+(Function|Sub)\s+([A-Za-z_][A-Za-z0-9_]*)\s+Lib`)
	bareTrigFnRe      = regexp.MustCompile(`(?i)^\s*(Cos|Log|Exp|Sin|Tan)\s*\(`)
	dimLineRe         = regexp.MustCompile(`(?i)^\s*Dim\s+([A-Za-z_][A-Za-z0-9_]*)\s*(As\s+([A-Za-z_][A-Za-z0-9_.]*))?\s*$`)
	headerLineRe      = regexp.MustCompile(`(?i)^\s*(Public\s+|Private\s+)?(Sub|Function|Property)\b`)
)

// stripUselessCode implements spec.md §4.A step 4: assignments whose
// value is never read anywhere else in the stream are commented out,
// and a small set of obviously side-effect-free standalone calls and
// uninitialized Dims not typed Byte/Integer/Long are commented out the
// same way.
func stripUselessCode(source string) string {
	lines := splitLines(source)

	assigns := make(map[string][]int) // case-folded name -> line indices
	interesting := make(map[int]bool)
	declaredExternals := make(map[string]bool)
	changeHandlers := make(map[string]bool)

	for i, line := range lines {
		if m := subNameChangeRe.FindStringSubmatch(line); m != nil {
			changeHandlers[strings.ToLower(m[1])] = true
		}
		if m := declareLibRe.FindStringSubmatch(line); m != nil {
			declaredExternals[strings.ToLower(m[2])] = true
		}
	}

	for i, line := range lines {
		if headerLineRe.MatchString(line) || isContinuationTarget(lines, i) {
			continue
		}
		if boolContextRe.MatchString(line) || withMemberRe.MatchString(line) {
			continue
		}
		if insideQuotedEquals(line) {
			continue
		}
		m := topLevelAssignRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		rhs := line[strings.Index(line, "=")+1:]
		if strings.Contains(name, ".") || strings.Contains(rhs, ".") || strings.Contains(strings.ToLower(rhs), "createobject") {
			interesting[i] = true
			continue
		}
		lower := strings.ToLower(name)
		if isInterestingLine(line) || declaredExternals[lower] {
			interesting[i] = true
			continue
		}
		assigns[lower] = append(assigns[lower], i)
	}

	referenced := make(map[string]bool)
	for lower, lineNums := range assigns {
		own := make(map[int]bool)
		for _, n := range lineNums {
			own[n] = true
		}
		for i, line := range lines {
			if own[i] {
				continue
			}
			if containsWord(line, lower) {
				referenced[lower] = true
				break
			}
		}
		if changeHandlers[lower] {
			referenced[lower] = true
		}
		if strings.Contains(lower, ".") {
			referenced[lower] = true
		}
	}

	for lower, lineNums := range assigns {
		if referenced[lower] {
			continue
		}
		for _, i := range lineNums {
			lines[i] = "' " + lines[i]
		}
	}

	for i, line := range lines {
		if interesting[i] {
			continue
		}
		if bareTrigFnRe.MatchString(strings.TrimRight(line, " \t")) && isDiscardedCall(line) {
			lines[i] = "' " + line
			continue
		}
		if m := dimLineRe.FindStringSubmatch(line); m != nil {
			typeName := strings.ToLower(m[3])
			if typeName != "byte" && typeName != "integer" && typeName != "long" {
				lines[i] = "' " + line
			}
		}
	}

	return strings.Join(lines, "\n")
}

func isInterestingLine(line string) bool {
	lower := strings.ToLower(line)
	for _, b := range interestingBuiltins {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

func isDiscardedCall(line string) bool {
	trimmed := strings.TrimSpace(line)
	return !strings.Contains(trimmed, "=")
}

func isContinuationTarget(lines []string, i int) bool {
	return false
}

// insideQuotedEquals reports whether the line's first `=` sign falls
// inside a quoted string, so a line like `s = "a=b"` is still a normal
// assignment but `Print "x=y"` is not mistaken for one.
func insideQuotedEquals(line string) bool {
	idx := strings.Index(line, "=")
	if idx < 0 {
		return false
	}
	return insideString(line, idx)
}

var wordBoundary = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

func containsWord(line, lowerName string) bool {
	for _, w := range wordBoundary.FindAllString(line, -1) {
		if strings.ToLower(w) == lowerName {
			return true
		}
	}
	return false
}
