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

// Package ast defines the tagged node variants that make up a parsed VBA
// module: declarations, statements and expressions, grounded on the
// BaseExpression/Expression split of an early cel-go AST (base.go,
// expression.go, call.go, select.go, ident.go, list.go), generalized from
// a single Expression kind into the statement/declaration hierarchy VBA
// needs. Every node keeps a stable printable form (writeDebugString),
// used both for the Unresolved symbolic string and for action-log
// descriptions.
package ast

import "github.com/macrowalk/macrowalk/common"

// Node is the common interface for every AST element: declarations,
// statements and expressions all carry an id (unique within one parsed
// module) and a source location.
type Node interface {
	Id() int64
	Location() common.Location
	String() string
}

// BaseNode is embedded by every concrete node type.
type BaseNode struct {
	id       int64
	location common.Location
}

func (n *BaseNode) Id() int64                 { return n.id }
func (n *BaseNode) Location() common.Location { return n.location }

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
	writeDebugString(w *debugWriter)
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
	writeDebugString(w *debugWriter)
}

// BaseExpr is embedded by concrete expression types.
type BaseExpr struct{ BaseNode }

func (*BaseExpr) exprNode() {}

// BaseStmt is embedded by concrete statement types.
type BaseStmt struct{ BaseNode }

func (*BaseStmt) stmtNode() {}

func newBase(id int64, l common.Location) BaseNode {
	return BaseNode{id: id, location: l}
}
