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

// Package transform implements the Transformation Visitor of spec §4.6: the
// second post-order traversal, which consults the type cache built by
// sql/analyzer to emit PostgreSQL text. Every visit method returns the text
// fragment its caller splices in, matching the Design Notes' "visit(node,
// context) -> value" shape (spec §9) rather than an Accept-method
// hierarchy.
package transform

import (
	"strings"

	"github.com/sirupsen/logrus"

	sqlpkg "github.com/Sayiza/orapgsync-sub011/sql"
	"github.com/Sayiza/orapgsync-sub011/sql/analyzer"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/normalize"
	"github.com/Sayiza/orapgsync-sub011/sql/token"
	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

// ConnectByRewriter rewrites a CONNECT BY-bearing Select to PostgreSQL
// WITH RECURSIVE text. It is supplied by sql/hierarchy at wiring time
// (engine.go); transform itself does not import sql/hierarchy, keeping the
// package import graph a DAG (hierarchy depends on transform, not the
// reverse).
type ConnectByRewriter interface {
	Rewrite(v *Visitor, sel ast.Select) (string, error)
}

// Visitor carries everything the second pass needs: the metadata index and
// current schema (for synonym/column resolution), the type cache pass 1
// populated, a name generator for this transformation only, and the
// diagnostic sink. One Visitor is used per transformation (spec §5); it is
// never shared across concurrent runs.
type Visitor struct {
	Index         *catalog.Index
	CurrentSchema string
	Cache         *analyzer.TypeCache
	Names         *NameGenerator
	Log           *logrus.Entry
	RunID         string
	ConnectBy     ConnectByRewriter

	Diagnostics []sqlpkg.Diagnostic
}

func NewVisitor(ix *catalog.Index, currentSchema string, cache *analyzer.TypeCache, log *logrus.Entry, runID string) *Visitor {
	return &Visitor{
		Index:         ix,
		CurrentSchema: currentSchema,
		Cache:         cache,
		Names:         NewNameGenerator(),
		Log:           log,
		RunID:         runID,
	}
}

func (v *Visitor) warn(code, message string) {
	v.Diagnostics = append(v.Diagnostics, sqlpkg.NewDiagnostic(sqlpkg.SeverityWarning, code, message, v.RunID))
}

func (v *Visitor) debugf(format string, args ...interface{}) {
	if v.Log == nil {
		return
	}
	v.Log.WithField("run_id", v.RunID).Debugf(format, args...)
}

// unsupported builds the structured error of spec §4.6/§7: a message a
// human can act on, optionally carrying a rewrite recipe.
func (v *Visitor) unsupported(what string) error {
	return sqlpkg.ErrUnsupportedConstruct.New(what)
}

// EmitExpr is the expression half of the visitor: it returns the PG text
// fragment for n, looking up n's cached type where a rewrite needs it.
func (v *Visitor) EmitExpr(n ast.Node) (string, error) {
	switch x := n.(type) {
	case ast.Literal:
		return v.emitLiteral(x)
	case ast.Ident:
		return v.emitIdent(x)
	case ast.Unary:
		return v.emitUnary(x)
	case ast.Binary:
		return v.emitBinary(x)
	case ast.Call:
		return v.emitCall(x)
	case ast.Paren:
		inner, err := v.EmitExpr(x.X)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case ast.Subquery:
		return v.emitSubquery(x)
	case ast.Case:
		return v.emitCase(x)
	default:
		return "", v.unsupported("expression node with no PostgreSQL rewrite")
	}
}

func (v *Visitor) emitLiteral(lit ast.Literal) (string, error) {
	switch lit.LitKind {
	case ast.LitDate:
		return "DATE '" + lit.Text + "'", nil
	case ast.LitTimestamp:
		return "TIMESTAMP '" + lit.Text + "'", nil
	case ast.LitString:
		return "'" + strings.ReplaceAll(lit.Text, "'", "''") + "'", nil
	case ast.LitNumber:
		return lit.Text, nil
	case ast.LitNull:
		return "NULL", nil
	case ast.LitTrue:
		return "true", nil
	case ast.LitFalse:
		return "false", nil
	}
	return "", v.unsupported("literal with unknown kind")
}

// pseudoColumnRemap covers spec §4.6's DBTIMEZONE/SESSIONTIMEZONE rewrite
// and the SYSDATE/SYSTIMESTAMP function-name remappings, applied here too
// since both read as bare identifiers in the grammar this module targets.
var pseudoColumnRemap = map[string]string{
	"dbtimezone":      "current_setting('TIMEZONE')",
	"sessiontimezone": "current_setting('TIMEZONE')",
	"sysdate":         "current_date",
	"systimestamp":    "current_timestamp",
	"rownum":          "row_number() over ()",
}

func (v *Visitor) emitIdent(id ast.Ident) (string, error) {
	if len(id.Parts) == 1 && id.Name() == "*" {
		return "*", nil
	}
	if len(id.Parts) == 1 {
		if repl, ok := pseudoColumnRemap[strings.ToLower(id.Name())]; ok {
			return repl, nil
		}
	}
	parts := make([]string, len(id.Parts))
	for i, p := range id.Parts {
		parts[i] = normalize.QuotePG(normalize.OracleName(p))
	}
	return strings.Join(parts, "."), nil
}

func (v *Visitor) emitUnary(u ast.Unary) (string, error) {
	x, err := v.EmitExpr(u.X)
	if err != nil {
		return "", err
	}
	switch u.Op {
	case token.NOT:
		return "NOT " + x, nil
	case token.MINUS:
		return "-" + x, nil
	case token.PLUS:
		return "+" + x, nil
	case token.NULL_:
		return x + " IS NULL", nil
	case token.PRIOR:
		// PRIOR only has meaning inside a CONNECT BY condition, which the
		// hierarchy package rewrites directly from the AST before any
		// ordinary expression emission reaches it.
		return "", v.unsupported("PRIOR used outside a CONNECT BY condition")
	}
	return "", v.unsupported("unary operator " + u.Op.String())
}

func (v *Visitor) emitBinary(b ast.Binary) (string, error) {
	l, err := v.EmitExpr(b.L)
	if err != nil {
		return "", err
	}
	r, err := v.EmitExpr(b.R)
	if err != nil {
		return "", err
	}
	op, err := BinaryOpText(b.Op)
	if err != nil {
		return "", err
	}
	return l + " " + op + " " + r, nil
}

// BinaryOpText is exported so sql/hierarchy can reconstruct operator text
// while substituting LEVEL/SYS_CONNECT_BY_PATH inside a CONNECT BY query,
// without duplicating the operator table.
func BinaryOpText(k token.Kind) (string, error) {
	switch k {
	case token.PLUS:
		return "+", nil
	case token.MINUS:
		return "-", nil
	case token.STAR:
		return "*", nil
	case token.SLASH:
		return "/", nil
	case token.PERCENT:
		return "%", nil
	case token.CONCAT:
		return "||", nil
	case token.EQ:
		return "=", nil
	case token.NEQ:
		return "<>", nil
	case token.LT:
		return "<", nil
	case token.LTE:
		return "<=", nil
	case token.GT:
		return ">", nil
	case token.GTE:
		return ">=", nil
	case token.AND:
		return "AND", nil
	case token.OR:
		return "OR", nil
	case token.LIKE:
		return "LIKE", nil
	case token.IN:
		return "IN", nil
	case token.IS:
		return "IS", nil
	case token.BETWEEN:
		return "BETWEEN", nil
	}
	return "", sqlpkg.ErrUnsupportedConstruct.New("binary operator " + k.String())
}

func (v *Visitor) emitSubquery(sq ast.Subquery) (string, error) {
	if sq.Select == nil {
		return "", v.unsupported("empty subquery")
	}
	inner, err := v.EmitSelect(*sq.Select)
	if err != nil {
		return "", err
	}
	return "(" + inner + ")", nil
}

func (v *Visitor) emitCase(c ast.Case) (string, error) {
	var b strings.Builder
	b.WriteString("CASE")
	if c.Operand != nil {
		operand, err := v.EmitExpr(c.Operand)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + operand)
	}
	for _, w := range c.Whens {
		cond, err := v.EmitExpr(w.Cond)
		if err != nil {
			return "", err
		}
		result, err := v.EmitExpr(w.Result)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHEN " + cond + " THEN " + result)
	}
	if c.Else != nil {
		elseText, err := v.EmitExpr(c.Else)
		if err != nil {
			return "", err
		}
		b.WriteString(" ELSE " + elseText)
	}
	b.WriteString(" END")
	return b.String(), nil
}

// defensiveCastNeeded implements spec §4.6's ROUND/TRUNC rewrite: when the
// type cache could not type the argument, arithmetic context requires a
// defensive ::numeric cast so PostgreSQL doesn't reject an ambiguous
// overload.
func (v *Visitor) defensiveCastNeeded(arg ast.Node) bool {
	return v.Cache.Get(arg.Span()).IsUnknown()
}

func categoryOf(arg ast.Node, cache *analyzer.TypeCache) types.Category {
	return cache.Get(arg.Span()).Category
}
