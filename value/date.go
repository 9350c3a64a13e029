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

import "time"

// vbaEpoch is VBA's date serial zero: 1899-12-30.
var vbaEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Date is a VBA date/time, stored as the double-precision day count VBA
// itself uses (the integer part is the date, the fraction the time of
// day), matching spec.md's requirement that Date behave as a distinct
// tagged variant while still supporting arithmetic with numbers.
type Date float64

// NewDate converts a wall-clock time to its VBA serial representation.
func NewDate(t time.Time) Date {
	return Date(t.Sub(vbaEpoch).Hours() / 24)
}

// Time converts the VBA serial date back to a wall-clock time (UTC).
func (d Date) Time() time.Time {
	return vbaEpoch.Add(time.Duration(float64(d) * float64(24*time.Hour)))
}

func (d Date) Kind() Kind { return KindDate }

func (d Date) String() string {
	t := d.Time()
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("1/2/2006")
	}
	return t.Format("1/2/2006 3:04:05 PM")
}

func (d Date) Add(other Val) Val {
	f, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '+'")
	}
	return d + Date(f)
}

func (d Date) Subtract(other Val) Val {
	if od, ok := other.(Date); ok {
		return Double(d - od)
	}
	f, ok := ToFloat(other)
	if !ok {
		return NewErr("type mismatch in '-'")
	}
	return d - Date(f)
}

func (d Date) Compare(other Val) Val {
	switch o := other.(type) {
	case Date:
		return Double(d).Compare(Double(o))
	default:
		f, ok := ToFloat(other)
		if !ok {
			return NewErr("type mismatch in comparison")
		}
		return Double(d).Compare(Double(f))
	}
}

func (d Date) Concat(other Val) Val {
	return String{text: d.String() + ToDisplayString(other)}
}
