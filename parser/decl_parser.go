// Copyright 2021 Google LLC
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

package parser

import (
	"strings"

	"github.com/macrowalk/macrowalk/ast"
)

// parseModule parses an entire normalized source unit: any leading
// `Attribute name = value` lines (the normalizer's filter already
// dropped the ones that carry no semantic weight, per spec.md §4.A
// step 2), an optional `Option Explicit`/`Option Base` line, then a
// sequence of top-level declarations.
func (p *Parser) parseModule(name string) *ast.Module {
	tok := p.cur()
	attrs := make(map[string]string)
	p.skipSeparators()
	for p.isKeyword("attribute") {
		p.advance()
		attrName := p.parseTypeName()
		p.expectOp("=")
		val := p.cur()
		valText := val.Text
		if val.Kind == TokString {
			p.advance()
		} else {
			valText = p.ParseExpr().String()
		}
		attrs[attrName] = valText
		p.skipSeparators()
	}
	for p.isKeyword("option") {
		for !p.atEOF() && p.cur().Kind != TokNewline {
			p.advance()
		}
		p.skipSeparators()
	}

	var decls []ast.Decl
	for {
		p.skipSeparators()
		if p.atEOF() {
			break
		}
		before := p.pos
		d := p.parseDecl()
		if d != nil {
			decls = append(decls, d)
		}
		if p.pos == before {
			p.advance()
		}
	}
	return ast.NewModule(p.helper.id(), p.helper.loc(tok), name, attrs, decls)
}

func (p *Parser) parseDecl() ast.Decl {
	c := p.cur()
	public := true
	if c.Kind == TokKeyword {
		switch strings.ToLower(c.Text) {
		case "private":
			public = false
			p.advance()
			c = p.cur()
		case "public", "global":
			p.advance()
			c = p.cur()
		}
	}
	if c.Kind == TokKeyword {
		switch strings.ToLower(c.Text) {
		case "sub":
			return p.parseSubDecl()
		case "function":
			return p.parseFunctionDecl()
		case "property":
			return p.parsePropertyDecl()
		case "dim", "static":
			s := p.parseDim().(*ast.DimStmt)
			return ast.NewDimDecl(s.Id(), s.Location(), s.Vars, public)
		case "const":
			cd := p.parseConstStmt().(*ast.ConstDecl)
			cd.Public = public
			return cd
		case "type":
			return p.parseTypeDecl()
		case "enum":
			return p.parseEnumDecl()
		case "declare":
			return p.parseDeclareDecl(public)
		}
	}
	p.errs.syntaxError(p.helper.loc(c), "expected a declaration, got %q", c.Text)
	return nil
}

func (p *Parser) parseParamList() []ast.Param {
	p.expectOp("(")
	var params []ast.Param
	if p.cur().Kind == TokRParen {
		p.advance()
		return params
	}
	for {
		var param ast.Param
		param.ByRef = true
		for {
			switch {
			case p.isKeyword("optional"):
				param.Optional = true
				p.advance()
			case p.isKeyword("byval"):
				param.ByRef = false
				p.advance()
			case p.isKeyword("byref"):
				param.ByRef = true
				p.advance()
			case p.isKeyword("paramarray"):
				param.ParamArray = true
				param.ByRef = false
				p.advance()
			default:
				goto doneMods
			}
		}
	doneMods:
		param.Name = p.advance().Text
		if p.cur().Kind == TokLParen {
			p.advance()
			p.expectOp(")")
			param.IsArray = true
		}
		if p.isKeyword("as") {
			p.advance()
			param.Type = p.parseTypeName()
		}
		if p.isOp("=") {
			p.advance()
			param.Default = p.ParseExpr()
		}
		params = append(params, param)
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	p.expectOp(")")
	return params
}

func (p *Parser) parseSubDecl() ast.Decl {
	tok := p.advance()
	name := p.advance().Text
	params := p.parseParamList()
	body := p.parseStmtList(blockEnd{{"End", "Sub"}})
	p.consumeEnder("End", "Sub")
	return ast.NewSubDecl(p.helper.id(), p.helper.loc(tok), name, params, body)
}

func (p *Parser) parseFunctionDecl() ast.Decl {
	tok := p.advance()
	name := p.advance().Text
	params := p.parseParamList()
	retType := ""
	if p.isKeyword("as") {
		p.advance()
		retType = p.parseTypeName()
	}
	body := p.parseStmtList(blockEnd{{"End", "Function"}})
	p.consumeEnder("End", "Function")
	return ast.NewFunctionDecl(p.helper.id(), p.helper.loc(tok), name, params, retType, body)
}

func (p *Parser) parsePropertyDecl() ast.Decl {
	tok := p.advance() // "Property"
	kind := ast.PropertyGet
	switch strings.ToLower(p.cur().Text) {
	case "let":
		kind = ast.PropertyLet
	case "set":
		kind = ast.PropertySet
	}
	p.advance()
	name := p.advance().Text
	params := p.parseParamList()
	retType := ""
	if p.isKeyword("as") {
		p.advance()
		retType = p.parseTypeName()
	}
	body := p.parseStmtList(blockEnd{{"End", "Property"}})
	p.consumeEnder("End", "Property")
	return ast.NewPropertyDecl(p.helper.id(), p.helper.loc(tok), kind, name, params, retType, body)
}

func (p *Parser) parseTypeDecl() ast.Decl {
	tok := p.advance()
	name := p.advance().Text
	var fields []ast.TypeField
	for {
		p.skipSeparators()
		if p.isKeyword("end") {
			break
		}
		if p.atEOF() {
			break
		}
		fname := p.advance().Text
		var dims []ast.Expr
		if p.cur().Kind == TokLParen {
			p.advance()
			if p.cur().Kind != TokRParen {
				dims = p.parseArgList()
			}
			p.expectOp(")")
		}
		ftype := ""
		if p.isKeyword("as") {
			p.advance()
			ftype = p.parseTypeName()
		}
		fields = append(fields, ast.TypeField{Name: fname, Type: ftype, ArrayDims: dims})
	}
	p.consumeEnder("End", "Type")
	return ast.NewTypeDecl(p.helper.id(), p.helper.loc(tok), name, fields)
}

func (p *Parser) parseEnumDecl() ast.Decl {
	tok := p.advance()
	name := p.advance().Text
	var members []ast.EnumMember
	for {
		p.skipSeparators()
		if p.isKeyword("end") || p.atEOF() {
			break
		}
		mname := p.advance().Text
		var val ast.Expr
		if p.isOp("=") {
			p.advance()
			val = p.ParseExpr()
		}
		members = append(members, ast.EnumMember{Name: mname, Value: val})
	}
	p.consumeEnder("End", "Enum")
	return ast.NewEnumDecl(p.helper.id(), p.helper.loc(tok), name, members)
}

func (p *Parser) parseDeclareDecl(public bool) ast.Decl {
	tok := p.advance() // "Declare"
	isFunc := p.isKeyword("function")
	p.advance() // Function|Sub
	name := p.advance().Text
	lib := ""
	alias := ""
	if p.isKeyword("lib") {
		p.advance()
		lib = p.advance().Text
	}
	if p.isKeyword("alias") {
		p.advance()
		alias = p.advance().Text
	}
	params := p.parseParamList()
	retType := ""
	if isFunc && p.isKeyword("as") {
		p.advance()
		retType = p.parseTypeName()
	}
	return ast.NewDeclareDecl(p.helper.id(), p.helper.loc(tok), name, lib, alias, params, retType)
}
