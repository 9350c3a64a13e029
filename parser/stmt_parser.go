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

// blockEnd describes a keyword sequence (e.g. "End"+"Sub", or "Wend"
// alone) that terminates a statement list. parseStmtList stops, without
// consuming the terminator, the moment the current position matches any
// of the supplied enders.
type blockEnd [][]string

func (b blockEnd) matches(p *Parser) bool {
	for _, seq := range b {
		ok := true
		for i, want := range seq {
			t := p.peekAt(i)
			if !(t.Kind == TokKeyword && strings.EqualFold(t.Text, want)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// parseStmtList parses statements until one of ends matches or EOF.
func (p *Parser) parseStmtList(ends blockEnd) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		p.skipSeparators()
		if p.atEOF() || ends.matches(p) {
			return stmts
		}
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			// parseStatement made no progress (unrecoverable token); force
			// forward motion so the parser can't infinite-loop.
			p.advance()
		}
	}
}

func (p *Parser) consumeEnder(words ...string) {
	for _, w := range words {
		p.expectKeyword(w)
	}
}

func (p *Parser) parseStatement() ast.Stmt {
	c := p.cur()

	if c.Kind == TokIdent && p.peekAt(1).Kind == TokColon {
		tok := p.advance()
		p.advance() // ':'
		return ast.NewLabelStmt(p.helper.id(), p.helper.loc(tok), tok.Text)
	}

	if c.Kind == TokKeyword {
		switch strings.ToLower(c.Text) {
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDo()
		case "with":
			return p.parseWith()
		case "select":
			return p.parseSelectCase()
		case "on":
			return p.parseOnError()
		case "goto":
			return p.parseGoto()
		case "exit":
			return p.parseExit()
		case "call":
			return p.parseCallKeyword()
		case "let":
			p.advance()
			return p.parseAssignRest(false)
		case "set":
			p.advance()
			return p.parseAssignRest(true)
		case "dim", "static":
			return p.parseDim()
		case "const":
			return p.parseConstStmt()
		case "redim":
			return p.parseReDim()
		case "erase":
			return p.parseErase()
		case "open":
			return p.parseOpen()
		case "close":
			return p.parseClose()
		case "print":
			return p.parsePrintOrWrite(false)
		case "write":
			return p.parsePrintOrWrite(true)
		case "line":
			return p.parseLineInput()
		case "resume":
			return p.parseResume()
		}
	}

	return p.parseExprStatement()
}

func (p *Parser) parseIf() ast.Stmt {
	tok := p.advance() // "If"
	cond := p.ParseExpr()
	p.expectKeyword("Then")

	// Single-line form: `If cond Then stmt [Else stmt]` with no newline
	// before the body.
	if p.cur().Kind != TokNewline && !p.atEOF() {
		then := p.parseSingleLineBody()
		var els []ast.Stmt
		if p.isKeyword("else") {
			p.advance()
			els = p.parseSingleLineBody()
		}
		return ast.NewIfStmt(p.helper.id(), p.helper.loc(tok), cond, then, nil, els)
	}

	ends := blockEnd{{"ElseIf"}, {"Else"}, {"End", "If"}}
	then := p.parseStmtList(ends)

	var elseIfs []ast.ElseIf
	for p.isKeyword("elseif") {
		p.advance()
		eiCond := p.ParseExpr()
		p.expectKeyword("Then")
		body := p.parseStmtList(ends)
		elseIfs = append(elseIfs, ast.ElseIf{Cond: eiCond, Body: body})
	}

	var els []ast.Stmt
	if p.isKeyword("else") {
		p.advance()
		els = p.parseStmtList(blockEnd{{"End", "If"}})
	}
	p.consumeEnder("End", "If")
	return ast.NewIfStmt(p.helper.id(), p.helper.loc(tok), cond, then, elseIfs, els)
}

// parseSingleLineBody parses the statement(s) making up a one-line
// `If...Then stmt: stmt` body, stopping at Else/newline/EOF.
func (p *Parser) parseSingleLineBody() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		if p.atEOF() || p.cur().Kind == TokNewline || p.isKeyword("else") {
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
		if p.cur().Kind == TokColon {
			p.advance()
			continue
		}
		return stmts
	}
}

func (p *Parser) parseFor() ast.Stmt {
	tok := p.advance() // "For"
	if p.isKeyword("each") {
		p.advance()
		name := p.advance().Text
		p.expectKeyword("in")
		coll := p.ParseExpr()
		body := p.parseStmtList(blockEnd{{"Next"}})
		p.expectKeyword("Next")
		if p.cur().Kind == TokIdent {
			p.advance() // optional loop-variable echo after Next
		}
		return ast.NewForEachStmt(p.helper.id(), p.helper.loc(tok), name, coll, body)
	}
	name := p.advance().Text
	p.expectOp("=")
	from := p.ParseExpr()
	p.expectKeyword("to")
	to := p.ParseExpr()
	var step ast.Expr
	if p.isKeyword("step") {
		p.advance()
		step = p.ParseExpr()
	}
	body := p.parseStmtList(blockEnd{{"Next"}})
	p.expectKeyword("Next")
	if p.cur().Kind == TokIdent {
		p.advance()
	}
	return ast.NewForStmt(p.helper.id(), p.helper.loc(tok), name, from, to, step, body)
}

func (p *Parser) parseWhile() ast.Stmt {
	tok := p.advance()
	cond := p.ParseExpr()
	body := p.parseStmtList(blockEnd{{"Wend"}})
	p.expectKeyword("Wend")
	return ast.NewWhileStmt(p.helper.id(), p.helper.loc(tok), cond, body)
}

func (p *Parser) parseDo() ast.Stmt {
	tok := p.advance()
	if p.isKeyword("while") || p.isKeyword("until") {
		until := p.isKeyword("until")
		p.advance()
		cond := p.ParseExpr()
		body := p.parseStmtList(blockEnd{{"Loop"}})
		p.expectKeyword("Loop")
		return ast.NewDoStmt(p.helper.id(), p.helper.loc(tok), cond, until, true, body)
	}
	body := p.parseStmtList(blockEnd{{"Loop"}})
	p.expectKeyword("Loop")
	if p.isKeyword("while") || p.isKeyword("until") {
		until := p.isKeyword("until")
		p.advance()
		cond := p.ParseExpr()
		return ast.NewDoStmt(p.helper.id(), p.helper.loc(tok), cond, until, false, body)
	}
	return ast.NewDoStmt(p.helper.id(), p.helper.loc(tok), nil, false, false, body)
}

func (p *Parser) parseWith() ast.Stmt {
	tok := p.advance()
	target := p.ParseExpr()
	body := p.parseStmtList(blockEnd{{"End", "With"}})
	p.consumeEnder("End", "With")
	return ast.NewWithStmt(p.helper.id(), p.helper.loc(tok), target, body)
}

func (p *Parser) parseSelectCase() ast.Stmt {
	tok := p.advance() // "Select"
	p.expectKeyword("Case")
	selector := p.ParseExpr()

	ends := blockEnd{{"Case"}, {"End", "Select"}}
	var cases []ast.CaseClause
	var elseBody []ast.Stmt
	for {
		p.skipSeparators()
		if p.atEOF() {
			break
		}
		if p.isKeyword("end") {
			break
		}
		if !p.isKeyword("case") {
			break
		}
		p.advance()
		if p.isKeyword("else") {
			p.advance()
			elseBody = p.parseStmtList(blockEnd{{"End", "Select"}})
			break
		}
		values := p.parseCaseValues()
		body := p.parseStmtList(ends)
		cases = append(cases, ast.CaseClause{Values: values, Body: body})
	}
	p.consumeEnder("End", "Select")
	return ast.NewSelectCaseStmt(p.helper.id(), p.helper.loc(tok), selector, cases, elseBody)
}

// parseCaseValues parses one comma-separated list of `Case` value
// expressions, desugaring `Is > x` and `a To b` into Binary nodes the
// interpreter evaluates directly against the selector.
func (p *Parser) parseCaseValues() []ast.Expr {
	var values []ast.Expr
	for {
		if p.isKeyword("is") {
			tok := p.advance()
			opTok := p.advance()
			rhs := p.ParseExpr()
			values = append(values, ast.NewBinary(p.helper.id(), p.helper.loc(tok), canonicalOp(opTok.Text), nil, rhs))
		} else {
			v := p.ParseExpr()
			if p.isKeyword("to") {
				tok := p.advance()
				hi := p.ParseExpr()
				values = append(values, ast.NewBinary(p.helper.id(), p.helper.loc(tok), "To", v, hi))
			} else {
				values = append(values, v)
			}
		}
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	return values
}

func (p *Parser) parseOnError() ast.Stmt {
	tok := p.advance() // "On"
	p.expectKeyword("Error")
	switch {
	case p.isKeyword("resume"):
		p.advance()
		p.expectKeyword("Next")
		return ast.NewOnErrorStmt(p.helper.id(), p.helper.loc(tok), ast.OnErrorResumeNext, "")
	case p.isKeyword("goto"):
		p.advance()
		if p.cur().Kind == TokInt && p.cur().Text == "0" {
			p.advance()
			return ast.NewOnErrorStmt(p.helper.id(), p.helper.loc(tok), ast.OnErrorGotoZero, "")
		}
		label := p.advance().Text
		return ast.NewOnErrorStmt(p.helper.id(), p.helper.loc(tok), ast.OnErrorGotoLabel, label)
	}
	p.errs.syntaxError(p.helper.loc(p.cur()), "expected Resume Next or Goto after On Error")
	return ast.NewOnErrorStmt(p.helper.id(), p.helper.loc(tok), ast.OnErrorGotoZero, "")
}

func (p *Parser) parseGoto() ast.Stmt {
	tok := p.advance()
	label := p.advance().Text
	return ast.NewGotoStmt(p.helper.id(), p.helper.loc(tok), label)
}

func (p *Parser) parseExit() ast.Stmt {
	tok := p.advance()
	kind := ast.ExitSub
	switch strings.ToLower(p.cur().Text) {
	case "function":
		kind = ast.ExitFunction
	case "property":
		kind = ast.ExitProperty
	case "for":
		kind = ast.ExitFor
	case "do":
		kind = ast.ExitDo
	}
	p.advance()
	return ast.NewExitStmt(p.helper.id(), p.helper.loc(tok), kind)
}

func (p *Parser) parseCallKeyword() ast.Stmt {
	tok := p.advance()
	target := p.ParseExpr()
	return ast.NewCallStmt(p.helper.id(), p.helper.loc(tok), target)
}

func (p *Parser) parseAssignRest(isSet bool) ast.Stmt {
	target := p.ParseExpr()
	tok := p.cur()
	p.expectOp("=")
	value := p.ParseExpr()
	return ast.NewAssignStmt(p.helper.id(), p.helper.loc(tok), target, value, isSet)
}

// parseExprStatement parses whichever of the four unmarked statement
// forms the bareword actually is: an implicit `Let`-less assignment
// (`x = 1`), an `Err.Raise` call, a bare procedure call with no
// parentheses (`MsgBox "hi"`), or a discarded expression.
func (p *Parser) parseExprStatement() ast.Stmt {
	startTok := p.cur()
	target := p.parseCallTarget()

	if p.isOp("=") {
		p.advance()
		value := p.ParseExpr()
		return ast.NewAssignStmt(p.helper.id(), p.helper.loc(startTok), target, value, false)
	}

	if call, ok := target.(*ast.CallOrIndex); ok {
		if m, ok := call.Callee.(*ast.Member); ok && strings.EqualFold(m.Field, "Raise") {
			var number, source, desc ast.Expr
			if len(call.Args) > 0 {
				number = call.Args[0]
			}
			if len(call.Args) > 1 {
				source = call.Args[1]
			}
			if len(call.Args) > 2 {
				desc = call.Args[2]
			}
			return ast.NewRaiseStmt(p.helper.id(), p.helper.loc(startTok), number, source, desc)
		}
	}

	if isCallLike(target) {
		return ast.NewCallStmt(p.helper.id(), p.helper.loc(startTok), target)
	}
	return ast.NewExprStmt(p.helper.id(), p.helper.loc(startTok), target)
}

func isCallLike(e ast.Expr) bool {
	switch e.(type) {
	case *ast.CallOrIndex, *ast.Member, *ast.Ident:
		return true
	}
	return false
}

// parseCallTarget parses a bareword call's callee and arguments without
// requiring the argument list to be parenthesized, e.g. `MsgBox "hi", 0`
// as opposed to `MsgBox("hi", 0)`; both spellings are common in VBA and
// both reach this function by way of parseExprStatement.
func (p *Parser) parseCallTarget() ast.Expr {
	expr := p.parsePostfix()
	if p.cur().Kind == TokComma || (!p.isOp("=") && p.startsExpr() && !p.isKeyword("to")) {
		if _, isCallOrIndex := expr.(*ast.CallOrIndex); !isCallOrIndex && p.startsExpr() {
			var args []ast.Expr
			for {
				args = append(args, p.ParseExpr())
				if p.cur().Kind == TokComma {
					p.advance()
					continue
				}
				break
			}
			return ast.NewCallOrIndex(p.helper.id(), expr.Location(), expr, args...)
		}
	}
	return expr
}

// startsExpr reports whether the current token could begin a new
// expression, used to detect an unparenthesized bareword-call argument
// list without committing to consuming anything.
func (p *Parser) startsExpr() bool {
	c := p.cur()
	switch c.Kind {
	case TokInt, TokDouble, TokString, TokDate, TokIdent, TokLParen, TokDot:
		return true
	case TokOp:
		return c.Text == "-" || c.Text == "+"
	case TokKeyword:
		switch strings.ToLower(c.Text) {
		case "true", "false", "null", "nothing", "empty", "not":
			return true
		}
	}
	return false
}

func (p *Parser) parseDimVars() []ast.DimVar {
	var vars []ast.DimVar
	for {
		name := p.advance().Text
		var dims []ast.Expr
		if p.cur().Kind == TokLParen {
			p.advance()
			if p.cur().Kind != TokRParen {
				dims = p.parseArgList()
			}
			p.expectOp(")")
		}
		typeName := ""
		if p.isKeyword("as") {
			p.advance()
			typeName = p.parseTypeName()
		}
		vars = append(vars, ast.DimVar{Name: name, Type: typeName, ArrayDims: dims})
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	return vars
}

func (p *Parser) parseTypeName() string {
	var b strings.Builder
	b.WriteString(p.advance().Text)
	for p.cur().Kind == TokDot {
		b.WriteString(".")
		p.advance()
		b.WriteString(p.advance().Text)
	}
	return b.String()
}

func (p *Parser) parseDim() ast.Stmt {
	tok := p.advance()
	isStatic := strings.EqualFold(tok.Text, "static")
	vars := p.parseDimVars()
	return ast.NewDimStmt(p.helper.id(), p.helper.loc(tok), vars, isStatic)
}

func (p *Parser) parseConstStmt() ast.Stmt {
	tok := p.advance()
	var vars []ast.ConstVar
	for {
		name := p.advance().Text
		typeName := ""
		if p.isKeyword("as") {
			p.advance()
			typeName = p.parseTypeName()
		}
		p.expectOp("=")
		val := p.ParseExpr()
		vars = append(vars, ast.ConstVar{Name: name, Type: typeName, Value: val})
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	return ast.NewConstDecl(p.helper.id(), p.helper.loc(tok), vars, false)
}

func (p *Parser) parseReDim() ast.Stmt {
	tok := p.advance()
	preserve := false
	if p.isKeyword("preserve") {
		preserve = true
		p.advance()
	}
	vars := p.parseDimVars()
	return ast.NewReDimStmt(p.helper.id(), p.helper.loc(tok), preserve, vars)
}

func (p *Parser) parseErase() ast.Stmt {
	tok := p.advance()
	var targets []ast.Expr
	for {
		targets = append(targets, p.ParseExpr())
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	return ast.NewEraseStmt(p.helper.id(), p.helper.loc(tok), targets)
}

func (p *Parser) parseFileHandle() ast.Expr {
	if p.cur().Kind == TokHash {
		p.advance()
	}
	return p.ParseExpr()
}

func (p *Parser) parseOpen() ast.Stmt {
	tok := p.advance()
	path := p.ParseExpr()
	p.expectKeyword("for")
	mode := p.advance().Text
	// `Access ...` and `Lock ...` clauses are accepted but not modeled,
	// since emulation never performs real file I/O.
	for !p.isKeyword("as") && !p.atEOF() && p.cur().Kind != TokNewline {
		p.advance()
	}
	p.expectKeyword("as")
	handle := p.parseFileHandle()
	return ast.NewOpenStmt(p.helper.id(), p.helper.loc(tok), path, mode, handle)
}

func (p *Parser) parseClose() ast.Stmt {
	tok := p.advance()
	var handles []ast.Expr
	for p.startsExpr() || p.cur().Kind == TokHash {
		handles = append(handles, p.parseFileHandle())
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	return ast.NewCloseStmt(p.helper.id(), p.helper.loc(tok), handles)
}

func (p *Parser) parsePrintOrWrite(isWrite bool) ast.Stmt {
	tok := p.advance()
	handle := p.parseFileHandle()
	var args []ast.Expr
	if p.cur().Kind == TokComma {
		p.advance()
	}
	for p.startsExpr() {
		args = append(args, p.ParseExpr())
		if p.cur().Kind == TokComma {
			p.advance()
			continue
		}
		break
	}
	if isWrite {
		return ast.NewWriteStmt(p.helper.id(), p.helper.loc(tok), handle, args)
	}
	return ast.NewPrintStmt(p.helper.id(), p.helper.loc(tok), handle, args)
}

func (p *Parser) parseLineInput() ast.Stmt {
	tok := p.advance() // "Line"
	p.expectKeyword("input")
	handle := p.parseFileHandle()
	if p.cur().Kind == TokComma {
		p.advance()
	}
	target := p.ParseExpr()
	return ast.NewLineInputStmt(p.helper.id(), p.helper.loc(tok), handle, target)
}

func (p *Parser) parseResume() ast.Stmt {
	tok := p.advance()
	if p.isKeyword("next") {
		p.advance()
		return ast.NewResumeStmt(p.helper.id(), p.helper.loc(tok), ast.ResumeNextStmt, "")
	}
	if p.cur().Kind == TokIdent {
		label := p.advance().Text
		return ast.NewResumeStmt(p.helper.id(), p.helper.loc(tok), ast.ResumeLabel, label)
	}
	return ast.NewResumeStmt(p.helper.id(), p.helper.loc(tok), ast.ResumeBare, "")
}
