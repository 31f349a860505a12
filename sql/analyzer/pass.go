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

package analyzer

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	sqlpkg "github.com/Sayiza/orapgsync-sub011/sql"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/token"
	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

// TypeAnalysisPass is the first traversal of spec §4.5: a post-order
// visitor that populates a TypeCache keyed by AST span, using Scope to
// track FROM/WITH-introduced names. One instance is used per
// transformation (spec §5); it is never shared across concurrent runs.
type TypeAnalysisPass struct {
	Index         *catalog.Index
	CurrentSchema string
	Cache         *TypeCache
	Scope         *Scope
	Log           *logrus.Entry
	RunID         string

	// Diagnostics collects pass-1 warnings (spec §4.4's ambiguous-column
	// case, among others); engine.go merges these with pass 2's before
	// returning a TransformationResult.
	Diagnostics []sqlpkg.Diagnostic
}

func NewTypeAnalysisPass(ix *catalog.Index, currentSchema string, log *logrus.Entry, runID string) *TypeAnalysisPass {
	return &TypeAnalysisPass{
		Index:         ix,
		CurrentSchema: currentSchema,
		Cache:         NewTypeCache(),
		Scope:         NewScope(),
		Log:           log,
		RunID:         runID,
	}
}

func (p *TypeAnalysisPass) debugf(node ast.Node, format string, args ...interface{}) {
	if p.Log == nil {
		return
	}
	p.Log.WithFields(logrus.Fields{
		"run_id": p.RunID,
		"span":   node.Span(),
	}).Debugf(format, args...)
}

func (p *TypeAnalysisPass) warn(code, message string) {
	p.Diagnostics = append(p.Diagnostics, sqlpkg.NewDiagnostic(sqlpkg.SeverityWarning, code, message, p.RunID))
}

// Run types every reachable node of root and returns the populated cache.
func (p *TypeAnalysisPass) Run(root ast.Node) *TypeCache {
	switch n := root.(type) {
	case ast.Select:
		p.visitSelect(n)
	case ast.FuncDecl:
		p.visitFuncDecl(n)
	case ast.ProcDecl:
		p.visitProcDecl(n)
	default:
		if root != nil {
			p.visit(root)
		}
	}
	return p.Cache
}

// visit dispatches on node kind and returns the node's inferred Type,
// caching it by span. This is the single "visit(node, context) -> value"
// function the Design Notes (spec §9) call for, replacing a duck-typed
// visitor hierarchy with one type switch.
func (p *TypeAnalysisPass) visit(n ast.Node) types.Type {
	if n == nil {
		return types.Unknown
	}
	var t types.Type
	switch v := n.(type) {
	case ast.Literal:
		t = types.ResolveLiteral(v)
	case ast.Ident:
		t = p.visitIdent(v)
	case ast.Unary:
		t = p.visitUnary(v)
	case ast.Binary:
		t = p.visitBinary(v)
	case ast.Call:
		t = p.visitCall(v)
	case ast.Paren:
		inner := p.visit(v.X)
		t = inner
	case ast.Subquery:
		t = p.visitScalarSubquery(v)
	case ast.Case:
		t = p.visitCase(v)
	case ast.Select:
		t = p.visitSelect(v)
	default:
		p.debugf(n, "no resolver for node kind %v; defaulting to UNKNOWN", n.Kind())
		t = types.Unknown
	}
	p.Cache.set(n.Span(), t)
	return t
}

func (p *TypeAnalysisPass) visitIdent(id ast.Ident) types.Type {
	if len(id.Parts) == 1 {
		if t, ok := types.ResolvePseudoColumn(id.Name()); ok {
			return t
		}
	}
	return ResolveColumn(p.Index, p.CurrentSchema, p.Scope, id, p.warn)
}

func (p *TypeAnalysisPass) visitUnary(u ast.Unary) types.Type {
	x := p.visit(u.X)
	switch u.Op {
	case token.NOT, token.NULL_:
		return types.Boolean
	case token.PRIOR:
		return x
	case token.MINUS, token.PLUS:
		if x.Category == types.CategoryNumeric {
			return types.Numeric
		}
		return x
	}
	return types.Unknown
}

func (p *TypeAnalysisPass) visitBinary(b ast.Binary) types.Type {
	l := p.visit(b.L)
	r := p.visit(b.R)
	return types.ResolveOperator(b.Op, l, r)
}

func (p *TypeAnalysisPass) visitCall(c ast.Call) types.Type {
	argTypes := make([]types.Type, len(c.Args))
	for i, a := range c.Args {
		argTypes[i] = p.visit(a)
	}
	if c.Qualifier != "" {
		if t, ok := p.visitQualifiedCall(c); ok {
			return t
		}
	}
	if types.IsKnownFunction(c.Name) {
		return types.ResolveFunction(c.Name, argTypes)
	}
	p.debugf(c, "unrecognized function %q; defaulting to UNKNOWN", c.Name)
	return types.Unknown
}

// visitQualifiedCall resolves pkg.func(...) / obj.method(...) calls against
// the metadata index (SPEC_FULL.md §4's closed gap: the function resolver
// table of spec §4.4 never says to consult PackageFunctions/TypeMethods,
// but the data model of spec §3 defines them for exactly this purpose).
func (p *TypeAnalysisPass) visitQualifiedCall(c ast.Call) (types.Type, bool) {
	qualifiedName := strings.ToLower(c.Qualifier + "." + c.Name)
	if p.Index.IsPackageFunction(qualifiedName) {
		// The index does not carry a package function's return type in
		// this snapshot shape (spec §3 only records membership); a known
		// package function with no declared return type is conservatively
		// UNKNOWN rather than guessed.
		return types.Unknown, true
	}
	if _, ok := p.Index.TypeMethod(p.CurrentSchema, c.Qualifier, c.Name); ok {
		return types.Unknown, true
	}
	return types.Unknown, false
}

func (p *TypeAnalysisPass) visitCase(c ast.Case) types.Type {
	if c.Operand != nil {
		p.visit(c.Operand)
	}
	cands := make([]types.Type, 0, len(c.Whens)+1)
	for _, w := range c.Whens {
		p.visit(w.Cond)
		cands = append(cands, p.visit(w.Result))
	}
	if c.Else != nil {
		cands = append(cands, p.visit(c.Else))
	}
	return types.HighestPrecedence(cands...)
}

// visitScalarSubquery implements spec §4.5 "a scalar subquery has the type
// of its sole SELECT-list element (multi-column -> UNKNOWN)".
func (p *TypeAnalysisPass) visitScalarSubquery(sq ast.Subquery) types.Type {
	if sq.Select == nil {
		return types.Unknown
	}
	t := p.visitSelect(*sq.Select)
	if len(sq.Select.List) != 1 {
		return types.Unknown
	}
	return t
}

// visitSelect opens a new alias+CTE scope, pre-walks WITH and FROM to
// populate it (spec §4.5), then visits the rest of the query block. Its
// return value is the type to use when this Select is used as a scalar
// subquery: the lone SELECT-list item's type, or UNKNOWN if there isn't
// exactly one.
func (p *TypeAnalysisPass) visitSelect(sel ast.Select) types.Type {
	pop := p.Scope.Push()
	defer pop()

	if sel.With != nil {
		p.preWalkWith(*sel.With)
	}
	p.preWalkFrom(sel.From)

	for _, item := range sel.List {
		p.visit(item.Expr)
	}
	if sel.Where != nil {
		p.visit(sel.Where)
	}
	for _, g := range sel.GroupBy {
		p.visit(g)
	}
	if sel.Having != nil {
		p.visit(sel.Having)
	}
	for _, o := range sel.OrderBy {
		p.visit(o.Expr)
	}
	if sel.ConnectBy != nil {
		if sel.ConnectBy.StartWith != nil {
			p.visit(sel.ConnectBy.StartWith)
		}
		if sel.ConnectBy.Condition != nil {
			p.visit(sel.ConnectBy.Condition)
		}
	}

	if len(sel.List) == 1 {
		return p.Cache.Get(sel.List[0].Expr.Span())
	}
	return types.Unknown
}

// preWalkWith visits each CTE's subquery (so its own FROM/columns resolve
// first), then derives the CTE's column name/type list per spec §4.5's
// fallback chain: explicit column list entry, else the SELECT element's
// alias, else the trailing identifier of a column expression, else a
// generated "column_<i>" name.
func (p *TypeAnalysisPass) preWalkWith(w ast.With) {
	for _, cte := range w.CTEs {
		if cte.Query == nil {
			continue
		}
		p.visitSelect(*cte.Query)

		info := CTEInfo{ColumnTypes: map[string]types.Type{}}
		for i, item := range cte.Query.List {
			var name string
			switch {
			case i < len(cte.Columns):
				name = cte.Columns[i]
			case item.Alias != "":
				name = item.Alias
			default:
				name = trailingIdent(item.Expr)
				if name == "" {
					name = generatedColumnName(i)
				}
			}
			info.Columns = append(info.Columns, name)
			info.ColumnTypes[name] = p.Cache.Get(item.Expr.Span())
		}
		p.Scope.AddCTE(cte.Name, info)
	}
}

func generatedColumnName(i int) string {
	// spec §4.5 names the fallback "column_<i>"; i is the zero-based
	// SELECT-list position.
	return "column_" + strconv.Itoa(i)
}

func trailingIdent(n ast.Node) string {
	switch v := n.(type) {
	case ast.Ident:
		return v.Name()
	case ast.Paren:
		return trailingIdent(v.X)
	}
	return ""
}

// preWalkFrom registers every FROM-clause table and join target in the
// alias scope, preserving explicit schema qualifiers (spec §4.5).
func (p *TypeAnalysisPass) preWalkFrom(refs []ast.TableRef) {
	for _, ref := range refs {
		p.addTableRefToScope(ref)
		for _, j := range ref.Joins {
			p.addTableRefToScope(j.Table)
		}
	}
	// ON/JOIN conditions and derived-table subqueries are visited after
	// every alias in this FROM list is registered, so a join condition can
	// reference any sibling table regardless of write order.
	for _, ref := range refs {
		if ref.Subquery != nil {
			p.visitSelect(*ref.Subquery)
		}
		for _, j := range ref.Joins {
			if j.Table.Subquery != nil {
				p.visitSelect(*j.Table.Subquery)
			}
			if j.On != nil {
				p.visit(j.On)
			}
		}
	}
}

func (p *TypeAnalysisPass) addTableRefToScope(ref ast.TableRef) {
	alias := ref.EffectiveAlias()
	if ref.Subquery != nil {
		// A derived table has no catalog identity; treat it like an
		// always-unknown source so qualified references to it don't
		// panic, without inventing index entries for it.
		p.Scope.AddAlias(alias, ref.QualifiedName())
		return
	}
	if ref.Schema == "" {
		if _, ok := p.Scope.LookupCTE(ref.Table); ok {
			p.Scope.AddCTEAlias(alias, ref.Table)
			return
		}
	}
	p.Scope.AddAlias(alias, ref.QualifiedName())
}

func (p *TypeAnalysisPass) visitFuncDecl(fd ast.FuncDecl) {
	if fd.Body != nil {
		p.visitBlock(*fd.Body)
	}
}

func (p *TypeAnalysisPass) visitProcDecl(pd ast.ProcDecl) {
	if pd.Body != nil {
		p.visitBlock(*pd.Body)
	}
}

func (p *TypeAnalysisPass) visitBlock(b ast.Block) {
	for _, s := range b.Stmts {
		p.visitStatement(s)
	}
}

func (p *TypeAnalysisPass) visitStatement(n ast.Node) {
	switch v := n.(type) {
	case ast.Return:
		if v.Expr != nil {
			p.visit(v.Expr)
		}
	case ast.Assign:
		p.visit(v.Target)
		p.visit(v.Value)
	case ast.Block:
		p.visitBlock(v)
	case ast.If:
		p.visit(v.Cond)
		for _, s := range v.Then {
			p.visitStatement(s)
		}
		for _, ei := range v.ElseIfs {
			p.visit(ei.Cond)
			for _, s := range ei.Then {
				p.visitStatement(s)
			}
		}
		for _, s := range v.Else {
			p.visitStatement(s)
		}
	case ast.For:
		if v.Query != nil {
			p.visitSelect(*v.Query)
		}
		if v.Lo != nil {
			p.visit(v.Lo)
		}
		if v.Hi != nil {
			p.visit(v.Hi)
		}
		for _, s := range v.Body {
			p.visitStatement(s)
		}
	default:
		p.visit(n)
	}
}
