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

// Package ast defines the parse tree produced from Oracle SQL/PL-SQL text.
//
// Per the Design Notes (spec §9), this is a tagged sum type rather than a
// duck-typed class hierarchy: one NodeKind enum, one concrete struct per
// kind, and callers match on Kind() (or do a type switch) instead of
// double-dispatch Accept methods. That keeps the later passes (sql/analyzer,
// sql/transform) as plain functions over (node, context) rather than a web
// of small visit methods.
package ast

import "github.com/Sayiza/orapgsync-sub011/sql/token"

// Span is the stable identity of an AST node: the half-open range of token
// indices it covers. It is the key the type cache (sql/analyzer) uses, and
// is guaranteed unique and deterministic within one parse (spec §8).
type Span struct {
	Start, End int
}

// NodeKind tags the concrete type of a Node.
type NodeKind int

const (
	KindLiteral NodeKind = iota
	KindIdent
	KindUnary
	KindBinary
	KindCall
	KindParen
	KindSubquery
	KindCase
	KindSelect
	KindTableRef
	KindJoin
	KindCTE
	KindWith
	KindConnectBy
	KindOrderItem
	KindReturnStmt
	KindAssignStmt
	KindBlockStmt
	KindIfStmt
	KindForStmt
	KindFuncDecl
	KindProcDecl
)

// Node is implemented by every concrete AST node.
type Node interface {
	Kind() NodeKind
	Span() Span
}

type base struct{ span Span }

func (b base) Span() Span { return b.span }

// LiteralKind distinguishes the literal sub-forms the literal resolver
// (spec §4.4) must check in order: date/timestamp keyword, quoted string,
// numeric, string, NULL/TRUE/FALSE.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitDate
	LitTimestamp
	LitNull
	LitTrue
	LitFalse
)

type Literal struct {
	base
	LitKind LiteralKind
	Text    string // raw token text, unquoted for strings
}

func (Literal) Kind() NodeKind { return KindLiteral }

// Ident is a possibly-qualified identifier path: Parts[0].Parts[1]....Parts[n-1].
// A bare column reference has len(Parts) == 1.
type Ident struct {
	base
	Parts []string
}

func (Ident) Kind() NodeKind { return KindIdent }

func (i Ident) Name() string { return i.Parts[len(i.Parts)-1] }

// Qualifier returns the second-to-last part (the alias/table/CTE
// qualifier), or "" if the identifier is bare.
func (i Ident) Qualifier() string {
	if len(i.Parts) < 2 {
		return ""
	}
	return i.Parts[len(i.Parts)-2]
}

// Unary is a prefix unary operator, most importantly PRIOR inside a
// CONNECT BY condition.
type Unary struct {
	base
	Op token.Kind
	X  Node
}

func (Unary) Kind() NodeKind { return KindUnary }

// Binary covers arithmetic, string concatenation (||), comparison, and
// logical (AND/OR) operators.
type Binary struct {
	base
	Op   token.Kind
	L, R Node
}

func (Binary) Kind() NodeKind { return KindBinary }

// Call is a function invocation, including DECODE (spec treats DECODE as a
// function-shaped construct) and aggregates. Name is stored lower-cased
// without package/type qualifiers; Qualifier carries a package or object
// type name for pkg.func(...) / obj.method(...) calls.
type Call struct {
	base
	Qualifier string
	Name      string
	Args      []Node
	Distinct  bool
}

func (Call) Kind() NodeKind { return KindCall }

// Paren is an explicit parenthesized expression. The Design Notes and spec
// §4.3 require this be a distinct node (not elided) so both passes can
// cache/propagate its type separately from its child.
type Paren struct {
	base
	X Node
}

func (Paren) Kind() NodeKind { return KindParen }

// Subquery wraps a SELECT used as a scalar expression.
type Subquery struct {
	base
	Select *Select
}

func (Subquery) Kind() NodeKind { return KindSubquery }

type WhenClause struct {
	Cond   Node // for CASE WHEN; for CASE <operand> WHEN, holds the comparison value
	Result Node
}

// Case covers both simple (CASE x WHEN v THEN ...) and searched
// (CASE WHEN cond THEN ...) forms. Operand is nil for the searched form.
type Case struct {
	base
	Operand Node
	Whens   []WhenClause
	Else    Node
}

func (Case) Kind() NodeKind { return KindCase }

// SelectItem is one entry of a SELECT list.
type SelectItem struct {
	Expr  Node
	Alias string // "" if none written
}

// TableRef is one FROM-clause entry: a table-or-view reference (possibly
// schema-qualified), or a derived table, with its join list.
type TableRef struct {
	base
	Schema   string // "" if unqualified as written
	Table    string
	Alias    string // "" if none written; callers default it to Table
	Subquery *Select
	Joins    []Join
}

func (TableRef) Kind() NodeKind { return KindTableRef }

// QualifiedName returns "schema.table" if Schema is set, else "table".
func (t TableRef) QualifiedName() string {
	if t.Schema == "" {
		return t.Table
	}
	return t.Schema + "." + t.Table
}

// EffectiveAlias returns Alias, defaulting to Table when no alias was
// written (spec §4.5 "If an alias is not written, the alias is the table
// name").
func (t TableRef) EffectiveAlias() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Table
}

type Join struct {
	base
	Kind  token.Kind // INNER, LEFT, RIGHT, FULL, CROSS
	Table TableRef
	On    Node
}

func (Join) Kind() NodeKind { return KindJoin }

// CTEDef is one WITH-clause entry.
type CTEDef struct {
	base
	Name    string
	Columns []string // explicit column-name list, if written
	Query   *Select
}

func (CTEDef) Kind() NodeKind { return KindCTE }

type With struct {
	base
	CTEs []CTEDef
}

func (With) Kind() NodeKind { return KindWith }

// ConnectBy holds the hierarchical-query clauses of a SELECT.
type ConnectBy struct {
	base
	Condition Node
	NoCycle   bool
	StartWith Node // nil if absent (a hard error per spec §4.7)
}

func (ConnectBy) Kind() NodeKind { return KindConnectBy }

type OrderItem struct {
	base
	Expr Node
	Desc bool
}

func (OrderItem) Kind() NodeKind { return KindOrderItem }

// Select is a query block: the unit that opens a new alias/CTE scope in
// pass 1 (spec §4.5).
type Select struct {
	base
	With      *With
	List      []SelectItem
	From      []TableRef
	Where     Node
	GroupBy   []Node
	Having    Node
	OrderBy   []OrderItem
	ConnectBy *ConnectBy
}

func (Select) Kind() NodeKind { return KindSelect }

// --- statements (functions, procedures, triggers, type-method bodies) ---

type Return struct {
	base
	Expr Node // nil for a bare RETURN
}

func (Return) Kind() NodeKind { return KindReturnStmt }

type Assign struct {
	base
	Target Node
	Value  Node
}

func (Assign) Kind() NodeKind { return KindAssignStmt }

type Block struct {
	base
	Stmts []Node
}

func (Block) Kind() NodeKind { return KindBlockStmt }

type ElseIf struct {
	Cond Node
	Then []Node
}

type If struct {
	base
	Cond    Node
	Then    []Node
	ElseIfs []ElseIf
	Else    []Node
}

func (If) Kind() NodeKind { return KindIfStmt }

// For covers both numeric FOR loops and cursor FOR loops (Query set).
type For struct {
	base
	Var   string
	Lo    Node // numeric range low bound, if not a cursor loop
	Hi    Node
	Query *Select // cursor loop source, if not a numeric loop
	Body  []Node
}

func (For) Kind() NodeKind { return KindForStmt }

type Param struct {
	Name     string
	OraType  string
	IsOutput bool
}

type FuncDecl struct {
	base
	Qualifier  string // package or object-type name, if this is a method
	Name       string
	Params     []Param
	ReturnType string
	Body       *Block
}

func (FuncDecl) Kind() NodeKind { return KindFuncDecl }

type ProcDecl struct {
	base
	Qualifier string
	Name      string
	Params    []Param
	Body      *Block
}

func (ProcDecl) Kind() NodeKind { return KindProcDecl }
