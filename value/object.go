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

// ObjectImpl is implemented by the builtins package's object stubs
// (WScript.Shell, Scripting.FileSystemObject, ...). Keeping the interface
// here rather than in builtins lets value.Object stay a self-contained
// tagged-union member with no import back into builtins.
type ObjectImpl interface {
	ProgID() string
	Invoke(method string, args []Val) (Val, error)
}

// Object is the Object(opaque handle) variant: a CreateObject/GetObject
// result whose methods dispatch into a modeled builtin.
type Object struct {
	ID   int
	Impl ObjectImpl
}

func (o Object) Kind() Kind { return KindObject }

func (o Object) String() string {
	if o.Impl != nil {
		return fmt.Sprintf("Object(%s#%d)", o.Impl.ProgID(), o.ID)
	}
	return fmt.Sprintf("Object(#%d)", o.ID)
}
