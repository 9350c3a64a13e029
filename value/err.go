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

import "fmt"

// ErrVal is the Error(code) variant: a VBA runtime error number plus a
// human-readable description, honored by On Error Resume Next.
type ErrVal struct {
	Code    int
	Message string
}

func (e *ErrVal) Kind() Kind     { return KindError }
func (e *ErrVal) String() string { return e.Message }

// NewErr builds an ErrVal with VBA's generic "application-defined" error
// code (code 5, invalid procedure call, is the closest stand-in used
// throughout macrowalk's coercion failures).
func NewErr(format string, args ...interface{}) *ErrVal {
	return &ErrVal{Code: 5, Message: fmt.Sprintf(format, args...)}
}

// NewErrCode builds an ErrVal carrying an explicit VBA error number.
func NewErrCode(code int, format string, args ...interface{}) *ErrVal {
	return &ErrVal{Code: code, Message: fmt.Sprintf(format, args...)}
}
