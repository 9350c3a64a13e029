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

package ast

import "github.com/macrowalk/macrowalk/common"

// Decl is implemented by every module-level declaration: procedures,
// properties, module-scope Dim/Const, user types, enums and Declares.
type Decl interface {
	Node
	declNode()
}

// BaseDecl is embedded by concrete declaration types.
type BaseDecl struct{ BaseNode }

func (*BaseDecl) declNode() {}

// Param is one entry in a procedure's parameter list.
type Param struct {
	Name     string
	Type     string // "" means Variant
	ByRef    bool   // VBA defaults to ByRef when unspecified
	Optional bool
	Default  Expr // non-nil only when Optional and a default is given
	IsArray  bool
	ParamArray bool // trailing `ParamArray` catch-all
}

// SubDecl is a `Sub name(params) ... End Sub` procedure.
type SubDecl struct {
	BaseDecl
	Name   string
	Params []Param
	Body   []Stmt
}

func NewSubDecl(id int64, l common.Location, name string, params []Param, body []Stmt) *SubDecl {
	return &SubDecl{BaseDecl{newBase(id, l)}, name, params, body}
}
func (d *SubDecl) String() string { return "Sub " + d.Name }

// FunctionDecl is a `Function name(params) As returnType ... End Function`.
type FunctionDecl struct {
	BaseDecl
	Name       string
	Params     []Param
	ReturnType string
	Body       []Stmt
}

func NewFunctionDecl(id int64, l common.Location, name string, params []Param, returnType string, body []Stmt) *FunctionDecl {
	return &FunctionDecl{BaseDecl{newBase(id, l)}, name, params, returnType, body}
}
func (d *FunctionDecl) String() string { return "Function " + d.Name }

// PropertyKind distinguishes the three Property flavors.
type PropertyKind int

const (
	PropertyGet PropertyKind = iota
	PropertyLet
	PropertySet
)

// PropertyDecl is a `Property Get|Let|Set name(params) ... End Property`.
type PropertyDecl struct {
	BaseDecl
	Kind       PropertyKind
	Name       string
	Params     []Param
	ReturnType string
	Body       []Stmt
}

func NewPropertyDecl(id int64, l common.Location, kind PropertyKind, name string, params []Param, returnType string, body []Stmt) *PropertyDecl {
	return &PropertyDecl{BaseDecl{newBase(id, l)}, kind, name, params, returnType, body}
}
func (d *PropertyDecl) String() string { return "Property " + d.Name }

// DimDecl is a module-scope `Dim`/`Private`/`Public` variable declaration.
type DimDecl struct {
	BaseDecl
	Vars   []DimVar
	Public bool
}

func NewDimDecl(id int64, l common.Location, vars []DimVar, public bool) *DimDecl {
	return &DimDecl{BaseDecl{newBase(id, l)}, vars, public}
}
func (d *DimDecl) String() string { return "Dim (module)" }

// ConstVar is one `name [As type] = value` entry in a Const declaration.
type ConstVar struct {
	Name  string
	Type  string
	Value Expr
}

// ConstDecl is a `Const name = value[, ...]` declaration, valid at both
// module and procedure scope.
type ConstDecl struct {
	BaseDecl
	Vars   []ConstVar
	Public bool
}

func NewConstDecl(id int64, l common.Location, vars []ConstVar, public bool) *ConstDecl {
	return &ConstDecl{BaseDecl{newBase(id, l)}, vars, public}
}
func (d *ConstDecl) String() string { return "Const" }

// ConstDecl doubles as a statement when Const appears inside a
// procedure body rather than at module scope, so it satisfies both Decl
// and Stmt rather than needing a separate procedure-scope node.
func (d *ConstDecl) stmtNode() {}
func (d *ConstDecl) writeDebugString(w *debugWriter) { w.append("Const") }

// TypeField is one member of a user-defined Type record.
type TypeField struct {
	Name      string
	Type      string
	ArrayDims []Expr
}

// TypeDecl is a `Type name ... End Type` record declaration.
type TypeDecl struct {
	BaseDecl
	Name   string
	Fields []TypeField
}

func NewTypeDecl(id int64, l common.Location, name string, fields []TypeField) *TypeDecl {
	return &TypeDecl{BaseDecl{newBase(id, l)}, name, fields}
}
func (d *TypeDecl) String() string { return "Type " + d.Name }

// EnumMember is one `name [= value]` entry in an Enum declaration; Value
// is nil when the member takes the implicit previous-plus-one value.
type EnumMember struct {
	Name  string
	Value Expr
}

// EnumDecl is an `Enum name ... End Enum` declaration.
type EnumDecl struct {
	BaseDecl
	Name    string
	Members []EnumMember
}

func NewEnumDecl(id int64, l common.Location, name string, members []EnumMember) *EnumDecl {
	return &EnumDecl{BaseDecl{newBase(id, l)}, name, members}
}
func (d *EnumDecl) String() string { return "Enum " + d.Name }

// DeclareDecl is a `Declare Function|Sub name Lib "lib" [Alias "alias"]
// (params) [As returnType]` external-library stub; the interpreter never
// actually calls into the named library, it only records the shape so
// uses of the declared name resolve to an Unresolved call (spec.md's
// "external declares are symbolic, never executed").
type DeclareDecl struct {
	BaseDecl
	Name       string
	Lib        string
	Alias      string
	Params     []Param
	ReturnType string // "" for a Declare Sub
}

func NewDeclareDecl(id int64, l common.Location, name, lib, alias string, params []Param, returnType string) *DeclareDecl {
	return &DeclareDecl{BaseDecl{newBase(id, l)}, name, lib, alias, params, returnType}
}
func (d *DeclareDecl) String() string { return "Declare " + d.Name }

// Module is the root of one parsed VBA module (standard module, class
// module, form, or document module).
type Module struct {
	BaseDecl
	Name  string
	Attrs map[string]string // Attribute name/value pairs surviving normalization
	Decls []Decl
}

func NewModule(id int64, l common.Location, name string, attrs map[string]string, decls []Decl) *Module {
	return &Module{BaseDecl{newBase(id, l)}, name, attrs, decls}
}
func (m *Module) String() string { return "Module " + m.Name }
