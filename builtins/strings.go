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

package builtins

import (
	"strconv"
	"strings"

	"github.com/macrowalk/macrowalk/value"
)

func arg(args []value.Val, i int) value.Val {
	if i < len(args) {
		return args[i]
	}
	return value.MissingValue
}

func argStr(args []value.Val, i int) string {
	return value.ToDisplayString(arg(args, i))
}

func argInt(args []value.Val, i int) int {
	f, _ := value.ToFloat(arg(args, i))
	return int(f)
}

func strLen(_ *Context, args []value.Val) (value.Val, error) {
	return value.Int(len([]rune(argStr(args, 0)))), nil
}

func strLenB(_ *Context, args []value.Val) (value.Val, error) {
	return value.Int(2 * len([]rune(argStr(args, 0)))), nil
}

func strMid(_ *Context, args []value.Val) (value.Val, error) {
	s := []rune(argStr(args, 0))
	start := argInt(args, 1) - 1
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	length := len(s) - start
	if len(args) > 2 {
		length = argInt(args, 2)
	}
	end := start + length
	if end > len(s) {
		end = len(s)
	}
	if end < start {
		end = start
	}
	return value.NewString(string(s[start:end])), nil
}

func strLeft(_ *Context, args []value.Val) (value.Val, error) {
	s := []rune(argStr(args, 0))
	n := argInt(args, 1)
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return value.NewString(string(s[:n])), nil
}

func strRight(_ *Context, args []value.Val) (value.Val, error) {
	s := []rune(argStr(args, 0))
	n := argInt(args, 1)
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return value.NewString(string(s[len(s)-n:])), nil
}

func strReplace(_ *Context, args []value.Val) (value.Val, error) {
	s := argStr(args, 0)
	find := argStr(args, 1)
	repl := argStr(args, 2)
	if find == "" {
		return value.NewString(s), nil
	}
	return value.NewString(strings.ReplaceAll(s, find, repl)), nil
}

func strSplit(_ *Context, args []value.Val) (value.Val, error) {
	s := argStr(args, 0)
	delim := " "
	if len(args) > 1 {
		delim = argStr(args, 1)
	}
	var parts []string
	if delim == "" {
		parts = []string{s}
	} else {
		parts = strings.Split(s, delim)
	}
	elems := make([]value.Val, len(parts))
	for i, p := range parts {
		elems[i] = value.NewString(p)
	}
	return value.NewArray(elems), nil
}

func strJoin(_ *Context, args []value.Val) (value.Val, error) {
	arr, ok := arg(args, 0).(*value.Array)
	delim := " "
	if len(args) > 1 {
		delim = argStr(args, 1)
	}
	if !ok {
		return value.NewString(""), nil
	}
	parts := make([]string, len(arr.Elements))
	for i, e := range arr.Elements {
		parts[i] = value.ToDisplayString(e)
	}
	return value.NewString(strings.Join(parts, delim)), nil
}

func strInStr(_ *Context, args []value.Val) (value.Val, error) {
	// InStr([start], string1, string2) — start is optional and 1-based.
	start := 1
	hay := argStr(args, 0)
	needle := argStr(args, 1)
	if len(args) >= 3 {
		start = argInt(args, 0)
		hay = argStr(args, 1)
		needle = argStr(args, 2)
	}
	if start < 1 {
		start = 1
	}
	runes := []rune(hay)
	if start > len(runes)+1 {
		return value.Int(0), nil
	}
	idx := strings.Index(string(runes[start-1:]), needle)
	if idx < 0 {
		return value.Int(0), nil
	}
	return value.Int(start + len([]rune(string(runes[start-1:])[:idx]))), nil
}

func strInStrRev(_ *Context, args []value.Val) (value.Val, error) {
	hay := argStr(args, 0)
	needle := argStr(args, 1)
	idx := strings.LastIndex(hay, needle)
	if idx < 0 {
		return value.Int(0), nil
	}
	return value.Int(len([]rune(hay[:idx])) + 1), nil
}

func strUCase(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(strings.ToUpper(argStr(args, 0))), nil
}

func strLCase(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(strings.ToLower(argStr(args, 0))), nil
}

func strReverse(_ *Context, args []value.Val) (value.Val, error) {
	r := []rune(argStr(args, 0))
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return value.NewString(string(r)), nil
}

func strChr(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(string(rune(argInt(args, 0)))), nil
}

func strAsc(_ *Context, args []value.Val) (value.Val, error) {
	s := argStr(args, 0)
	if s == "" {
		return value.NewErrCode(5, "Asc of empty string"), nil
	}
	return value.Int([]rune(s)[0]), nil
}

func strHex(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.NewString(strings.ToUpper(strconv.FormatInt(int64(f), 16))), nil
}

func strOct(_ *Context, args []value.Val) (value.Val, error) {
	f, _ := value.ToFloat(arg(args, 0))
	return value.NewString(strconv.FormatInt(int64(f), 8)), nil
}

func strTrim(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(strings.TrimSpace(argStr(args, 0))), nil
}

func strLTrim(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(strings.TrimLeft(argStr(args, 0), " \t")), nil
}

func strRTrim(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(strings.TrimRight(argStr(args, 0), " \t")), nil
}

func strSpace(_ *Context, args []value.Val) (value.Val, error) {
	return value.NewString(strings.Repeat(" ", argInt(args, 0))), nil
}

func strString(_ *Context, args []value.Val) (value.Val, error) {
	n := argInt(args, 0)
	ch := argStr(args, 1)
	if ch == "" {
		return value.NewString(""), nil
	}
	return value.NewString(strings.Repeat(string([]rune(ch)[0]), n)), nil
}

func strLike(_ *Context, args []value.Val) (value.Val, error) {
	s, _ := arg(args, 0).(value.String)
	pattern := argStr(args, 1)
	return value.Bool(s.Like(pattern)), nil
}
