// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Sayiza/orapgsync-sub011/sql/token"
)

// ParseResult is the outcome of one parse. OK is true only when a Root was
// built and no error was recorded; any recorded error sets OK=false (spec
// §4.3 "a parse with any hard error yields a ParseResult marked
// unsuccessful"). Root may still hold the best-effort node when OK is false.
type ParseResult struct {
	Root   Node
	Tokens []token.Token
	Errors *multierror.Error
	OK     bool
}

// Parser is a recursive-descent / precedence-climbing parser over the
// bounded Oracle SQL/PL-SQL grammar. It never panics on malformed input:
// every failure is appended to errs and a best-effort node (often nil) is
// returned so the caller can decide whether to keep going.
type Parser struct {
	toks []token.Token
	pos  int
	errs *multierror.Error
}

func newParser(src string) *Parser {
	return &Parser{toks: NewLexer(src).Tokens()}
}

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail("expected %s, found %q", k, p.cur().Text)
	return p.cur(), false
}

func (p *Parser) fail(format string, args ...interface{}) {
	tok := p.cur()
	loc := fmt.Sprintf("line %d, col %d", tok.Line, tok.Col)
	msg := fmt.Sprintf(format, args...)
	p.errs = multierror.Append(p.errs, fmt.Errorf("%s: %s", loc, msg))
}

func (p *Parser) span(start int) Span { return Span{Start: start, End: p.pos} }

// ParseSelectText parses a single SELECT statement (spec's TransformSelect
// surface).
func ParseSelectText(src string) *ParseResult {
	p := newParser(src)
	start := p.pos
	sel := p.parseSelect()
	ok := sel != nil && (p.errs == nil || len(p.errs.Errors) == 0)
	var root Node
	if sel != nil {
		root = *sel
	}
	_ = start
	return &ParseResult{Root: root, Tokens: p.toks, Errors: p.errs, OK: ok}
}

// ParseExpressionText parses a single scalar expression (transform_expression).
func ParseExpressionText(src string) *ParseResult {
	p := newParser(src)
	expr := p.parseExpr()
	ok := expr != nil && (p.errs == nil || len(p.errs.Errors) == 0)
	return &ParseResult{Root: expr, Tokens: p.toks, Errors: p.errs, OK: ok}
}

// ParseFunctionText parses a CREATE [OR REPLACE] FUNCTION ... declaration.
func ParseFunctionText(src string) *ParseResult {
	p := newParser(src)
	decl := p.parseFunctionDecl()
	var root Node
	if decl != nil {
		root = *decl
	}
	ok := decl != nil && (p.errs == nil || len(p.errs.Errors) == 0)
	return &ParseResult{Root: root, Tokens: p.toks, Errors: p.errs, OK: ok}
}

// ParseProcedureText parses a CREATE [OR REPLACE] PROCEDURE ... declaration.
func ParseProcedureText(src string) *ParseResult {
	p := newParser(src)
	decl := p.parseProcedureDecl()
	var root Node
	if decl != nil {
		root = *decl
	}
	ok := decl != nil && (p.errs == nil || len(p.errs.Errors) == 0)
	return &ParseResult{Root: root, Tokens: p.toks, Errors: p.errs, OK: ok}
}

// --- SELECT ---

func (p *Parser) skipToken(text string) bool {
	if strings.EqualFold(p.cur().Text, text) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseSelect() *Select {
	start := p.pos
	var with *With
	if p.at(token.WITH) {
		with = p.parseWith()
	}
	if _, ok := p.expect(token.SELECT); !ok {
		return nil
	}
	if p.at(token.DISTINCT) {
		p.advance()
	}
	list := p.parseSelectList()

	sel := &Select{base: base{}, With: with, List: list}

	if p.at(token.FROM) {
		p.advance()
		sel.From = p.parseFromList()
	}
	if p.at(token.CONNECT) || p.at(token.START) {
		sel.ConnectBy = p.parseConnectByAndStartWith()
	}
	if p.at(token.WHERE) {
		p.advance()
		sel.Where = p.parseExpr()
		if p.at(token.CONNECT) || p.at(token.START) {
			cb := p.parseConnectByAndStartWith()
			if sel.ConnectBy == nil {
				sel.ConnectBy = cb
			}
		}
	}
	if p.at(token.GROUP) {
		p.advance()
		p.expect(token.BY)
		sel.GroupBy = p.parseExprList()
	}
	if p.at(token.HAVING) {
		p.advance()
		sel.Having = p.parseExpr()
	}
	if p.at(token.ORDER) {
		p.advance()
		p.expect(token.BY)
		sel.OrderBy = p.parseOrderList()
	}
	sel.base.span = p.span(start)
	return sel
}

func (p *Parser) parseWith() *With {
	start := p.pos
	p.advance() // WITH
	w := &With{}
	for {
		nameTok, ok := p.expect(token.IDENT)
		if !ok {
			break
		}
		cte := CTEDef{Name: strings.ToLower(unquote(nameTok.Text))}
		if p.at(token.LPAREN) {
			p.advance()
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				colTok, _ := p.expect(token.IDENT)
				cte.Columns = append(cte.Columns, strings.ToLower(unquote(colTok.Text)))
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RPAREN)
		}
		p.expect(token.AS)
		p.expect(token.LPAREN)
		cte.Query = p.parseSelect()
		p.expect(token.RPAREN)
		w.CTEs = append(w.CTEs, cte)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	w.base.span = p.span(start)
	return w
}

func (p *Parser) parseSelectList() []SelectItem {
	var items []SelectItem
	for {
		start := p.pos
		expr := p.parseExpr()
		item := SelectItem{Expr: expr}
		if p.at(token.AS) {
			p.advance()
			t, _ := p.expect(token.IDENT)
			item.Alias = strings.ToLower(unquote(t.Text))
		} else if p.at(token.IDENT) && !p.atClauseKeyword() {
			t := p.advance()
			item.Alias = strings.ToLower(unquote(t.Text))
		}
		_ = start
		items = append(items, item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return items
}

// atClauseKeyword reports whether the current token starts a clause that
// must not be mistaken for an implicit column alias.
func (p *Parser) atClauseKeyword() bool {
	switch p.cur().Kind {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING, token.ORDER,
		token.CONNECT, token.START, token.COMMA, token.RPAREN, token.EOF:
		return true
	}
	return false
}

func (p *Parser) parseFromList() []TableRef {
	var refs []TableRef
	for {
		refs = append(refs, p.parseTableRef())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return refs
}

func (p *Parser) parseTableRef() TableRef {
	start := p.pos
	var t TableRef
	if p.at(token.LPAREN) {
		p.advance()
		t.Subquery = p.parseSelect()
		p.expect(token.RPAREN)
	} else {
		first, _ := p.expect(token.IDENT)
		name := unquote(first.Text)
		if p.at(token.DOT) {
			p.advance()
			second, _ := p.expect(token.IDENT)
			t.Schema = strings.ToLower(name)
			t.Table = strings.ToLower(unquote(second.Text))
		} else {
			t.Table = strings.ToLower(name)
		}
	}
	if p.at(token.AS) {
		p.advance()
		a, _ := p.expect(token.IDENT)
		t.Alias = strings.ToLower(unquote(a.Text))
	} else if p.at(token.IDENT) {
		a := p.advance()
		t.Alias = strings.ToLower(unquote(a.Text))
	}
	for p.atJoinStart() {
		t.Joins = append(t.Joins, p.parseJoin())
	}
	t.base.span = p.span(start)
	return t
}

func (p *Parser) atJoinStart() bool {
	switch p.cur().Kind {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS:
		return true
	}
	return false
}

func (p *Parser) parseJoin() Join {
	start := p.pos
	kind := token.INNER
	switch p.cur().Kind {
	case token.INNER:
		p.advance()
	case token.LEFT, token.RIGHT, token.FULL:
		kind = p.advance().Kind
		if p.at(token.OUTER) {
			p.advance()
		}
	case token.CROSS:
		kind = token.CROSS
		p.advance()
	}
	p.expect(token.JOIN)
	table := p.parseTableRef()
	var on Node
	if p.at(token.ON) {
		p.advance()
		on = p.parseExpr()
	}
	return Join{base: base{span: p.span(start)}, Kind: kind, Table: table, On: on}
}

func (p *Parser) parseConnectByAndStartWith() *ConnectBy {
	start := p.pos
	cb := &ConnectBy{}
	for p.at(token.CONNECT) || p.at(token.START) {
		if p.at(token.START) {
			p.advance()
			p.expect(token.WITH)
			cb.StartWith = p.parseExpr()
		} else {
			p.advance() // CONNECT
			p.expect(token.BY)
			if p.at(token.NOCYCLE) {
				p.advance()
				cb.NoCycle = true
			}
			cb.Condition = p.parseExpr()
		}
	}
	cb.base.span = p.span(start)
	return cb
}

func (p *Parser) parseOrderList() []OrderItem {
	var items []OrderItem
	for {
		start := p.pos
		e := p.parseExpr()
		desc := false
		if p.at(token.ASC) {
			p.advance()
		} else if p.at(token.DESC) {
			p.advance()
			desc = true
		}
		items = append(items, OrderItem{base: base{span: p.span(start)}, Expr: e, Desc: desc})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return items
}

func (p *Parser) parseExprList() []Node {
	var out []Node
	for {
		out = append(out, p.parseExpr())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return out
}

// --- expressions (precedence climbing) ---

func (p *Parser) parseExpr() Node { return p.parseOr() }

func (p *Parser) parseOr() Node {
	start := p.pos
	left := p.parseAnd()
	for p.at(token.OR) {
		p.advance()
		right := p.parseAnd()
		left = Binary{base: base{span: p.span(start)}, Op: token.OR, L: left, R: right}
	}
	return left
}

func (p *Parser) parseAnd() Node {
	start := p.pos
	left := p.parseNot()
	for p.at(token.AND) {
		p.advance()
		right := p.parseNot()
		left = Binary{base: base{span: p.span(start)}, Op: token.AND, L: left, R: right}
	}
	return left
}

func (p *Parser) parseNot() Node {
	start := p.pos
	if p.at(token.NOT) {
		p.advance()
		x := p.parseNot()
		return Unary{base: base{span: p.span(start)}, Op: token.NOT, X: x}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() Node {
	start := p.pos
	left := p.parseConcat()
	switch p.cur().Kind {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE:
		op := p.advance().Kind
		right := p.parseConcat()
		return Binary{base: base{span: p.span(start)}, Op: op, L: left, R: right}
	case token.IS:
		p.advance()
		neg := false
		if p.at(token.NOT) {
			p.advance()
			neg = true
		}
		p.expect(token.NULL_)
		n := Node(Unary{base: base{span: p.span(start)}, Op: token.NULL_, X: left})
		if neg {
			n = Unary{base: base{span: p.span(start)}, Op: token.NOT, X: n}
		}
		return n
	case token.LIKE:
		p.advance()
		right := p.parseConcat()
		return Binary{base: base{span: p.span(start)}, Op: token.LIKE, L: left, R: right}
	case token.BETWEEN:
		p.advance()
		lo := p.parseConcat()
		p.expect(token.AND)
		hi := p.parseConcat()
		return Binary{base: base{span: p.span(start)}, Op: token.BETWEEN, L: left, R: Binary{Op: token.AND, L: lo, R: hi}}
	case token.IN:
		p.advance()
		listStart := p.pos
		p.expect(token.LPAREN)
		if p.at(token.SELECT) {
			sel := p.parseSelect()
			p.expect(token.RPAREN)
			sq := Subquery{base: base{span: p.span(listStart)}, Select: sel}
			return Binary{base: base{span: p.span(start)}, Op: token.IN, L: left, R: sq}
		}
		items := p.parseExprList()
		p.expect(token.RPAREN)
		var r Node = Call{Name: "__list", Args: items}
		return Binary{base: base{span: p.span(start)}, Op: token.IN, L: left, R: r}
	}
	return left
}

func (p *Parser) parseConcat() Node {
	start := p.pos
	left := p.parseAdditive()
	for p.at(token.CONCAT) {
		p.advance()
		right := p.parseAdditive()
		left = Binary{base: base{span: p.span(start)}, Op: token.CONCAT, L: left, R: right}
	}
	return left
}

func (p *Parser) parseAdditive() Node {
	start := p.pos
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance().Kind
		right := p.parseMultiplicative()
		left = Binary{base: base{span: p.span(start)}, Op: op, L: left, R: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() Node {
	start := p.pos
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.advance().Kind
		right := p.parseUnary()
		left = Binary{base: base{span: p.span(start)}, Op: op, L: left, R: right}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	start := p.pos
	switch p.cur().Kind {
	case token.MINUS, token.PLUS:
		op := p.advance().Kind
		x := p.parseUnary()
		return Unary{base: base{span: p.span(start)}, Op: op, X: x}
	case token.PRIOR:
		p.advance()
		x := p.parseUnary()
		return Unary{base: base{span: p.span(start)}, Op: token.PRIOR, X: x}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() Node {
	start := p.pos
	t := p.cur()
	switch t.Kind {
	case token.LPAREN:
		p.advance()
		// Could be a parenthesized expression or a scalar subquery.
		if p.at(token.SELECT) {
			sel := p.parseSelect()
			p.expect(token.RPAREN)
			return Subquery{base: base{span: p.span(start)}, Select: sel}
		}
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return Paren{base: base{span: p.span(start)}, X: x}
	case token.STRING:
		p.advance()
		return Literal{base: base{span: p.span(start)}, LitKind: LitString, Text: t.Text}
	case token.INT, token.FLOAT:
		p.advance()
		return Literal{base: base{span: p.span(start)}, LitKind: LitNumber, Text: t.Text}
	case token.NULL_:
		p.advance()
		return Literal{base: base{span: p.span(start)}, LitKind: LitNull, Text: "NULL"}
	case token.TRUE_:
		p.advance()
		return Literal{base: base{span: p.span(start)}, LitKind: LitTrue, Text: "TRUE"}
	case token.FALSE_:
		p.advance()
		return Literal{base: base{span: p.span(start)}, LitKind: LitFalse, Text: "FALSE"}
	case token.CASE:
		return p.parseCase()
	case token.IDENT:
		if strings.EqualFold(t.Text, "date") && p.peekKind(1) == token.STRING {
			p.advance()
			s := p.advance()
			return Literal{base: base{span: p.span(start)}, LitKind: LitDate, Text: s.Text}
		}
		if strings.EqualFold(t.Text, "timestamp") && p.peekKind(1) == token.STRING {
			p.advance()
			s := p.advance()
			return Literal{base: base{span: p.span(start)}, LitKind: LitTimestamp, Text: s.Text}
		}
		return p.parseIdentOrCall()
	case token.LEVEL:
		p.advance()
		return Ident{base: base{span: p.span(start)}, Parts: []string{"level"}}
	}
	p.fail("unexpected token %q", t.Text)
	p.advance()
	return Literal{base: base{span: p.span(start)}, LitKind: LitNull, Text: "NULL"}
}

func (p *Parser) peekKind(off int) token.Kind {
	i := p.pos + off
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

// parseIdentOrCall parses a dotted identifier path and, if followed by '(',
// turns it into a function/method Call (spec's pkg.func / obj.method calls).
func (p *Parser) parseIdentOrCall() Node {
	start := p.pos
	var parts []string
	first := p.advance()
	parts = append(parts, unquote(first.Text))
	for p.at(token.DOT) {
		p.advance()
		n, _ := p.expect(token.IDENT)
		parts = append(parts, unquote(n.Text))
	}
	if p.at(token.LPAREN) {
		p.advance()
		var args []Node
		distinct := false
		if p.at(token.DISTINCT) {
			p.advance()
			distinct = true
		}
		if !p.at(token.RPAREN) {
			if p.at(token.STAR) { // COUNT(*)
				p.advance()
				args = append(args, Ident{Parts: []string{"*"}})
			} else {
				args = p.parseExprList()
			}
		}
		p.expect(token.RPAREN)
		name := strings.ToLower(parts[len(parts)-1])
		qual := ""
		if len(parts) > 1 {
			qual = strings.ToLower(strings.Join(parts[:len(parts)-1], "."))
		}
		return Call{base: base{span: p.span(start)}, Qualifier: qual, Name: name, Args: args, Distinct: distinct}
	}
	lowered := make([]string, len(parts))
	for i, s := range parts {
		lowered[i] = strings.ToLower(s)
	}
	return Ident{base: base{span: p.span(start)}, Parts: lowered}
}

func (p *Parser) parseCase() Node {
	start := p.pos
	p.advance() // CASE
	c := Case{}
	if !p.at(token.WHEN) {
		c.Operand = p.parseExpr()
	}
	for p.at(token.WHEN) {
		p.advance()
		cond := p.parseExpr()
		p.expect(token.THEN)
		res := p.parseExpr()
		c.Whens = append(c.Whens, WhenClause{Cond: cond, Result: res})
	}
	if p.at(token.ELSE) {
		p.advance()
		c.Else = p.parseExpr()
	}
	p.expect(token.END)
	c.base.span = p.span(start)
	return c
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// --- PL/SQL function / procedure declarations ---

func (p *Parser) parseParamList() []Param {
	var params []Param
	p.expect(token.LPAREN)
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		nameTok, _ := p.expect(token.IDENT)
		param := Param{Name: strings.ToLower(unquote(nameTok.Text))}
		if p.skipToken("in") {
			// pure input, default
		}
		if p.skipToken("out") {
			param.IsOutput = true
		}
		typeTok, _ := p.expect(token.IDENT)
		oraType := typeTok.Text
		if p.at(token.LPAREN) {
			p.advance()
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				p.advance()
			}
			p.expect(token.RPAREN)
		}
		param.OraType = strings.ToLower(oraType)
		params = append(params, param)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseFunctionDecl() *FuncDecl {
	start := p.pos
	p.skipToken("create")
	if p.skipToken("or") {
		p.skipToken("replace")
	}
	if !p.skipToken("function") {
		p.fail("expected FUNCTION, found %q", p.cur().Text)
		return nil
	}
	nameTok, _ := p.expect(token.IDENT)
	fd := &FuncDecl{Name: strings.ToLower(unquote(nameTok.Text))}
	if p.at(token.DOT) {
		p.advance()
		n2, _ := p.expect(token.IDENT)
		fd.Qualifier = fd.Name
		fd.Name = strings.ToLower(unquote(n2.Text))
	}
	if p.at(token.LPAREN) {
		fd.Params = p.parseParamList()
	}
	p.expect(token.RETURN)
	retTok, _ := p.expect(token.IDENT)
	fd.ReturnType = strings.ToLower(retTok.Text)
	p.skipToken("is")
	p.skipToken("as")
	fd.Body = p.parseBlockBody()
	fd.base.span = p.span(start)
	return fd
}

func (p *Parser) parseProcedureDecl() *ProcDecl {
	start := p.pos
	p.skipToken("create")
	if p.skipToken("or") {
		p.skipToken("replace")
	}
	if !p.skipToken("procedure") {
		p.fail("expected PROCEDURE, found %q", p.cur().Text)
		return nil
	}
	nameTok, _ := p.expect(token.IDENT)
	pd := &ProcDecl{Name: strings.ToLower(unquote(nameTok.Text))}
	if p.at(token.DOT) {
		p.advance()
		n2, _ := p.expect(token.IDENT)
		pd.Qualifier = pd.Name
		pd.Name = strings.ToLower(unquote(n2.Text))
	}
	if p.at(token.LPAREN) {
		pd.Params = p.parseParamList()
	}
	p.skipToken("is")
	p.skipToken("as")
	pd.Body = p.parseBlockBody()
	pd.base.span = p.span(start)
	return pd
}

// parseBlockBody parses [declare-section (ignored)] BEGIN stmts END [name] ;
func (p *Parser) parseBlockBody() *Block {
	for !p.at(token.BEGIN) && !p.at(token.EOF) {
		p.advance()
	}
	start := p.pos
	p.expect(token.BEGIN)
	blk := &Block{}
	for !p.at(token.END) && !p.at(token.EOF) {
		blk.Stmts = append(blk.Stmts, p.parseStatement())
	}
	p.expect(token.END)
	if p.at(token.IDENT) {
		p.advance()
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	blk.base.span = p.span(start)
	return blk
}

func (p *Parser) parseStatement() Node {
	start := p.pos
	switch p.cur().Kind {
	case token.RETURN:
		p.advance()
		var expr Node
		if !p.at(token.SEMICOLON) {
			expr = p.parseExpr()
		}
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		return Return{base: base{span: p.span(start)}, Expr: expr}
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.BEGIN:
		return *p.parseBlockBody()
	default:
		return p.parseAssignOrCallStatement()
	}
}

func (p *Parser) parseAssignOrCallStatement() Node {
	start := p.pos
	target := p.parseIdentOrCall()
	if p.at(token.ASSIGN) {
		p.advance()
		val := p.parseExpr()
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		return Assign{base: base{span: p.span(start)}, Target: target, Value: val}
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return target
}

func (p *Parser) parseIf() Node {
	start := p.pos
	p.expect(token.IF)
	ifNode := If{Cond: p.parseExpr()}
	p.expect(token.THEN)
	for !p.atAny(token.ELSE, token.END) && !p.at(token.EOF) && !p.isElsif() {
		ifNode.Then = append(ifNode.Then, p.parseStatement())
	}
	for p.isElsif() {
		p.advance() // ELSIF
		ei := ElseIf{Cond: p.parseExpr()}
		p.expect(token.THEN)
		for !p.atAny(token.ELSE, token.END) && !p.at(token.EOF) && !p.isElsif() {
			ei.Then = append(ei.Then, p.parseStatement())
		}
		ifNode.ElseIfs = append(ifNode.ElseIfs, ei)
	}
	if p.at(token.ELSE) {
		p.advance()
		for !p.at(token.END) && !p.at(token.EOF) {
			ifNode.Else = append(ifNode.Else, p.parseStatement())
		}
	}
	p.expect(token.END)
	p.skipToken("if")
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	ifNode.base.span = p.span(start)
	return ifNode
}

func (p *Parser) isElsif() bool {
	return p.at(token.IDENT) && strings.EqualFold(p.cur().Text, "elsif")
}

func (p *Parser) atAny(ks ...token.Kind) bool {
	for _, k := range ks {
		if p.at(k) {
			return true
		}
	}
	return false
}

func (p *Parser) parseFor() Node {
	start := p.pos
	p.expect(token.FOR)
	nameTok, _ := p.expect(token.IDENT)
	f := For{Var: strings.ToLower(unquote(nameTok.Text))}
	if p.at(token.IN) {
		p.advance()
		if p.at(token.LPAREN) {
			p.advance()
			f.Query = p.parseSelect()
			p.expect(token.RPAREN)
		} else {
			f.Lo = p.parseExpr()
			p.skipToken("..")
			if p.at(token.DOT) { // ".." lexed as two DOT tokens
				p.advance()
				p.advance()
			}
			f.Hi = p.parseExpr()
		}
	}
	p.expect(token.LOOP)
	for !p.at(token.END) && !p.at(token.EOF) {
		f.Body = append(f.Body, p.parseStatement())
	}
	p.expect(token.END)
	p.skipToken("loop")
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	f.base.span = p.span(start)
	return f
}
