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

package transform

import (
	"strings"

	sqlpkg "github.com/Sayiza/orapgsync-sub011/sql"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/token"
)

// EmitSelect is the query-block half of the visitor. A CONNECT BY query is
// delegated whole to sql/hierarchy via the ConnectBy hook (spec §4.7); every
// other Select is emitted directly.
func (v *Visitor) EmitSelect(sel ast.Select) (string, error) {
	if sel.ConnectBy != nil {
		if v.ConnectBy == nil {
			return "", v.unsupported("CONNECT BY rewriting is not wired into this transformation")
		}
		return v.ConnectBy.Rewrite(v, sel)
	}

	var b strings.Builder
	if sel.With != nil {
		withText, err := v.emitWith(*sel.With)
		if err != nil {
			return "", err
		}
		b.WriteString(withText)
		b.WriteString(" ")
	}

	b.WriteString("SELECT ")
	listText, err := v.emitSelectList(sel.List)
	if err != nil {
		return "", err
	}
	b.WriteString(listText)

	if len(sel.From) > 0 {
		fromText, err := v.emitFromList(sel.From)
		if err != nil {
			return "", err
		}
		b.WriteString(" FROM " + fromText)
	}
	if sel.Where != nil {
		whereText, err := v.EmitExpr(sel.Where)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHERE " + whereText)
	}
	if len(sel.GroupBy) > 0 {
		parts := make([]string, len(sel.GroupBy))
		for i, g := range sel.GroupBy {
			parts[i], err = v.EmitExpr(g)
			if err != nil {
				return "", err
			}
		}
		b.WriteString(" GROUP BY " + strings.Join(parts, ", "))
	}
	if sel.Having != nil {
		havingText, err := v.EmitExpr(sel.Having)
		if err != nil {
			return "", err
		}
		b.WriteString(" HAVING " + havingText)
	}
	if len(sel.OrderBy) > 0 {
		orderText, err := v.emitOrderBy(sel.OrderBy)
		if err != nil {
			return "", err
		}
		b.WriteString(" ORDER BY " + orderText)
	}
	return b.String(), nil
}

func (v *Visitor) emitSelectList(items []ast.SelectItem) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		expr, err := v.EmitExpr(item.Expr)
		if err != nil {
			return "", err
		}
		if item.Alias != "" {
			expr += " AS " + normalizeQuoted(item.Alias)
		}
		parts[i] = expr
	}
	return strings.Join(parts, ", "), nil
}

func (v *Visitor) emitOrderBy(items []ast.OrderItem) (string, error) {
	parts := make([]string, len(items))
	for i, it := range items {
		expr, err := v.EmitExpr(it.Expr)
		if err != nil {
			return "", err
		}
		if it.Desc {
			expr += " DESC"
		}
		parts[i] = expr
	}
	return strings.Join(parts, ", "), nil
}

func (v *Visitor) emitWith(w ast.With) (string, error) {
	parts := make([]string, len(w.CTEs))
	for i, cte := range w.CTEs {
		if cte.Query == nil {
			return "", v.unsupported("CTE " + cte.Name + " has no query body")
		}
		body, err := v.EmitSelect(*cte.Query)
		if err != nil {
			return "", err
		}
		header := normalizeQuoted(cte.Name)
		if len(cte.Columns) > 0 {
			cols := make([]string, len(cte.Columns))
			for j, c := range cte.Columns {
				cols[j] = normalizeQuoted(c)
			}
			header += " (" + strings.Join(cols, ", ") + ")"
		}
		parts[i] = header + " AS (" + body + ")"
	}
	return "WITH " + strings.Join(parts, ", "), nil
}

func (v *Visitor) emitFromList(refs []ast.TableRef) (string, error) {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		text, err := v.emitTableRef(ref)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, ", "), nil
}

// emitTableRef applies spec §4.6's schema qualification rule: an Oracle
// name left unqualified that resolves to a known synonym is emitted
// schema-qualified in PostgreSQL; an explicit schema is always preserved
// as written.
func (v *Visitor) emitTableRef(ref ast.TableRef) (string, error) {
	if ref.Subquery != nil {
		inner, err := v.EmitSelect(*ref.Subquery)
		if err != nil {
			return "", err
		}
		text := "(" + inner + ")"
		if ref.Alias != "" {
			text += " AS " + normalizeQuoted(ref.Alias)
		}
		return v.appendJoins(text, ref.Joins)
	}

	text, err := v.EmitBareTableRef(ref)
	if err != nil {
		return "", err
	}
	return v.appendJoins(text, ref.Joins)
}

// EmitBareTableRef emits just "[schema.]table [AS alias]" for a
// non-derived table reference, applying the same synonym-driven schema
// qualification as emitTableRef but without its join list. Exported for
// sql/hierarchy, which builds its own FROM clauses around the single base
// table a CONNECT BY query is restricted to (spec §4.7).
func (v *Visitor) EmitBareTableRef(ref ast.TableRef) (string, error) {
	schema, name := ref.Schema, ref.Table
	if schema == "" {
		if _, isSynonym := catalog.ResolveSynonym(v.Index, v.CurrentSchema, ref.Table); isSynonym {
			if target, ok, cyclic := catalog.ResolveSynonymChain(v.Index, v.CurrentSchema, ref.Table); ok {
				schema, name = target.Schema, target.Name
			} else if cyclic {
				v.warn("synonym-cycle", sqlpkg.ErrSynonymCycle.New(v.CurrentSchema, ref.Table).Error())
			}
		}
	}
	var text string
	if schema != "" {
		text = normalizeQuoted(schema) + "." + normalizeQuoted(name)
	} else {
		text = normalizeQuoted(name)
	}
	if ref.Alias != "" {
		text += " AS " + normalizeQuoted(ref.Alias)
	}
	return text, nil
}

func (v *Visitor) appendJoins(base string, joins []ast.Join) (string, error) {
	var b strings.Builder
	b.WriteString(base)
	for _, j := range joins {
		kw, err := joinKeyword(j.Kind)
		if err != nil {
			return "", err
		}
		tableText, err := v.emitTableRef(j.Table)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + kw + " " + tableText)
		if j.On != nil {
			onText, err := v.EmitExpr(j.On)
			if err != nil {
				return "", err
			}
			b.WriteString(" ON " + onText)
		}
	}
	return b.String(), nil
}

func joinKeyword(k token.Kind) (string, error) {
	switch k {
	case token.INNER:
		return "INNER JOIN", nil
	case token.LEFT:
		return "LEFT JOIN", nil
	case token.RIGHT:
		return "RIGHT JOIN", nil
	case token.FULL:
		return "FULL JOIN", nil
	case token.CROSS:
		return "CROSS JOIN", nil
	case token.JOIN:
		return "JOIN", nil
	}
	return "", sqlpkg.ErrUnsupportedConstruct.New("join kind " + k.String())
}
