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

// Standard returns the full modeled VBA/host runtime library, keyed by
// its canonical VBA spelling (Registry.addAll lowercases the keys, so
// casing here is purely documentation).
func Standard() map[string]Func {
	return map[string]Func{
		// Strings.
		"Len":        strLen,
		"LenB":       strLenB,
		"Mid":        strMid,
		"Mid$":       strMid,
		"Left":       strLeft,
		"Left$":      strLeft,
		"Right":      strRight,
		"Right$":     strRight,
		"Replace":    strReplace,
		"Split":      strSplit,
		"Join":       strJoin,
		"InStr":      strInStr,
		"InStrRev":   strInStrRev,
		"UCase":      strUCase,
		"UCase$":     strUCase,
		"LCase":      strLCase,
		"LCase$":     strLCase,
		"StrReverse": strReverse,
		"Chr":        strChr,
		"Chr$":       strChr,
		"ChrW":       strChr,
		"Asc":        strAsc,
		"AscW":       strAsc,
		"Hex":        strHex,
		"Hex$":       strHex,
		"Oct":        strOct,
		"Oct$":       strOct,
		"Trim":       strTrim,
		"Trim$":      strTrim,
		"LTrim":      strLTrim,
		"LTrim$":     strLTrim,
		"RTrim":      strRTrim,
		"RTrim$":     strRTrim,
		"Space":      strSpace,
		"Space$":     strSpace,
		"String":     strString,
		"String$":    strString,
		"Like":       strLike,
		"Format":     strFormat,
		"Format$":    strFormat,
		"FormatNumber": strFormat,

		// Numeric.
		"Abs":   numAbs,
		"Int":   numInt,
		"Fix":   numFix,
		"Sgn":   numSgn,
		"Rnd":   numRnd,
		"Timer": numTimer,

		// Date/time.
		"Now":      dtNow,
		"Date":     dtDate,
		"Date$":    dtDate,
		"Time":     dtTime,
		"Time$":    dtTime,
		"Year":     dtYear,
		"Month":    dtMonth,
		"Day":      dtDay,
		"Hour":     dtHour,
		"Minute":   dtMinute,
		"Second":   dtSecond,
		"DateAdd":  dtDateAdd,
		"DateDiff": dtDateDiff,

		// Conversion / type introspection.
		"CStr":      cvCStr,
		"CLng":      cvCLng,
		"CInt":      cvCInt,
		"CByte":     cvCByte,
		"CDbl":      cvCDbl,
		"CSng":      cvCDbl,
		"CBool":     cvCBool,
		"CVar":      cvCVar,
		"CDate":     cvCDate,
		"Val":       cvVal,
		"IsNumeric": cvIsNumeric,
		"IsEmpty":   cvIsEmpty,
		"IsNull":    cvIsNull,
		"IsObject":  cvIsObject,
		"IsArray":   cvIsArray,
		"TypeName":  cvTypeName,
		"VarType":   cvVarType,

		// Arrays.
		"Array":  arrArray,
		"UBound": arrUBound,
		"LBound": arrLBound,

		// Environment / process / network — every one of these only
		// ever logs an action.Action and returns a plausible value; none
		// touches the real OS.
		"Environ":            ioEnviron,
		"Environ$":           ioEnviron,
		"Shell":              ioShell,
		"WinExec":            ioWinExec,
		"CreateProcessA":     ioCreateProcess,
		"CreateProcessW":     ioCreateProcess,
		"URLDownloadToFile":  ioURLDownloadToFile,
		"URLDownloadToFileA": ioURLDownloadToFile,

		// COM automation.
		"CreateObject": objCreateObject,
		"GetObject":    objGetObject,
	}
}
