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
	"strings"
	"time"

	"github.com/macrowalk/macrowalk/value"
)

func dtNow(ctx *Context, _ []value.Val) (value.Val, error) {
	return value.NewDate(ctx.Now()), nil
}

func dtDate(ctx *Context, _ []value.Val) (value.Val, error) {
	now := ctx.Now()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return value.NewDate(d), nil
}

func dtTime(ctx *Context, _ []value.Val) (value.Val, error) {
	return value.NewDate(ctx.Now()), nil
}

func asDate(v value.Val, fallback time.Time) time.Time {
	if d, ok := v.(value.Date); ok {
		return d.Time()
	}
	return fallback
}

func dtYear(ctx *Context, args []value.Val) (value.Val, error) {
	return value.Int(asDate(arg(args, 0), ctx.Now()).Year()), nil
}

func dtMonth(ctx *Context, args []value.Val) (value.Val, error) {
	return value.Int(int(asDate(arg(args, 0), ctx.Now()).Month())), nil
}

func dtDay(ctx *Context, args []value.Val) (value.Val, error) {
	return value.Int(asDate(arg(args, 0), ctx.Now()).Day()), nil
}

func dtHour(ctx *Context, args []value.Val) (value.Val, error) {
	return value.Int(asDate(arg(args, 0), ctx.Now()).Hour()), nil
}

func dtMinute(ctx *Context, args []value.Val) (value.Val, error) {
	return value.Int(asDate(arg(args, 0), ctx.Now()).Minute()), nil
}

func dtSecond(ctx *Context, args []value.Val) (value.Val, error) {
	return value.Int(asDate(arg(args, 0), ctx.Now()).Second()), nil
}

func dtDateAdd(ctx *Context, args []value.Val) (value.Val, error) {
	interval := strings.ToLower(argStr(args, 0))
	n := argInt(args, 1)
	base := asDate(arg(args, 2), ctx.Now())
	var out time.Time
	switch interval {
	case "yyyy":
		out = base.AddDate(n, 0, 0)
	case "m":
		out = base.AddDate(0, n, 0)
	case "d", "y":
		out = base.AddDate(0, 0, n)
	case "ww":
		out = base.AddDate(0, 0, 7*n)
	case "h":
		out = base.Add(time.Duration(n) * time.Hour)
	case "n":
		out = base.Add(time.Duration(n) * time.Minute)
	case "s":
		out = base.Add(time.Duration(n) * time.Second)
	default:
		out = base
	}
	return value.NewDate(out), nil
}

func dtDateDiff(ctx *Context, args []value.Val) (value.Val, error) {
	interval := strings.ToLower(argStr(args, 0))
	d1 := asDate(arg(args, 1), ctx.Now())
	d2 := asDate(arg(args, 2), ctx.Now())
	delta := d2.Sub(d1)
	switch interval {
	case "yyyy":
		return value.Int(d2.Year() - d1.Year()), nil
	case "m":
		return value.Int((d2.Year()-d1.Year())*12 + int(d2.Month()-d1.Month())), nil
	case "d", "y":
		return value.Int(int(delta.Hours() / 24)), nil
	case "h":
		return value.Int(int(delta.Hours())), nil
	case "n":
		return value.Int(int(delta.Minutes())), nil
	case "s":
		return value.Int(int(delta.Seconds())), nil
	default:
		return value.Int(int(delta.Hours() / 24)), nil
	}
}

func strFormat(ctx *Context, args []value.Val) (value.Val, error) {
	v := arg(args, 0)
	layout := argStr(args, 1)
	if d, ok := v.(value.Date); ok {
		return value.NewString(formatVBADate(d.Time(), layout)), nil
	}
	return value.NewString(value.ToDisplayString(v)), nil
}

func formatVBADate(t time.Time, layout string) string {
	replacer := strings.NewReplacer(
		"yyyy", t.Format("2006"),
		"mm", t.Format("01"),
		"dd", t.Format("02"),
		"hh", t.Format("15"),
		"nn", t.Format("04"),
		"ss", t.Format("05"),
	)
	return replacer.Replace(layout)
}
