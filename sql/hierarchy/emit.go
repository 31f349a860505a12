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

package hierarchy

import (
	"strings"

	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/normalize"
	"github.com/Sayiza/orapgsync-sub011/sql/transform"
)

type mode int

const (
	modeBase mode = iota
	modeRecursive
	modeFinal
)

func quoted(id string) string { return normalize.QuotePG(normalize.OracleName(id)) }

// containsSpecial reports whether n contains a bare LEVEL reference or a
// SYS_CONNECT_BY_PATH call, the only two constructs emitSub must rewrite
// outside of column qualification.
func containsSpecial(n ast.Node) bool {
	found := false
	walk(n, func(x ast.Node) {
		if found {
			return
		}
		switch v := x.(type) {
		case ast.Ident:
			if len(v.Parts) == 1 && strings.ToLower(v.Name()) == "level" {
				found = true
			}
		case ast.Call:
			if strings.ToLower(v.Name) == "sys_connect_by_path" {
				found = true
			}
		}
	})
	return found
}

// emitSub emits n as PostgreSQL text, substituting LEVEL and
// SYS_CONNECT_BY_PATH per the generation rules of spec §4.7 and, when
// qualify is true (the recursive case's WHERE clause only), prefixing
// every bare column reference with alias (spec §8 "ambiguity safety").
// Subtrees with neither substitution need fall straight through to the
// ordinary Transformation Visitor.
func emitSub(v *transform.Visitor, n ast.Node, m mode, alias string, specs []pathSpec, qualify bool) (string, error) {
	if n == nil {
		return "", nil
	}
	if !qualify && !containsSpecial(n) {
		return v.EmitExpr(n)
	}
	switch x := n.(type) {
	case ast.Ident:
		if len(x.Parts) == 1 && strings.ToLower(x.Name()) == "level" {
			switch m {
			case modeBase:
				return "1", nil
			case modeRecursive:
				return "h.level + 1", nil
			default:
				return "level", nil
			}
		}
		if qualify && len(x.Parts) == 1 {
			return v.EmitExpr(ast.Ident{Parts: []string{alias, x.Name()}})
		}
		return v.EmitExpr(x)
	case ast.Unary:
		inner, err := emitSub(v, x.X, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		switch x.Op.String() {
		case "NOT":
			return "NOT " + inner, nil
		case "-":
			return "-" + inner, nil
		case "+":
			return "+" + inner, nil
		case "NULL":
			return inner + " IS NULL", nil
		}
		return v.EmitExpr(x)
	case ast.Binary:
		l, err := emitSub(v, x.L, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		r, err := emitSub(v, x.R, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		op, err := transform.BinaryOpText(x.Op)
		if err != nil {
			return "", err
		}
		return l + " " + op + " " + r, nil
	case ast.Paren:
		inner, err := emitSub(v, x.X, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case ast.Case:
		return emitCaseSub(v, x, m, alias, specs, qualify)
	case ast.Call:
		if strings.ToLower(x.Name) == "sys_connect_by_path" && len(x.Args) == 2 {
			return emitPathSub(v, x, m, specs)
		}
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			text, err := emitSub(v, a, m, alias, specs, qualify)
			if err != nil {
				return "", err
			}
			args[i] = text
		}
		return strings.ToLower(x.Name) + "(" + strings.Join(args, ", ") + ")", nil
	default:
		return v.EmitExpr(n)
	}
}

func emitCaseSub(v *transform.Visitor, c ast.Case, m mode, alias string, specs []pathSpec, qualify bool) (string, error) {
	var b strings.Builder
	b.WriteString("CASE")
	if c.Operand != nil {
		operand, err := emitSub(v, c.Operand, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + operand)
	}
	for _, w := range c.Whens {
		cond, err := emitSub(v, w.Cond, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		result, err := emitSub(v, w.Result, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		b.WriteString(" WHEN " + cond + " THEN " + result)
	}
	if c.Else != nil {
		elseText, err := emitSub(v, c.Else, m, alias, specs, qualify)
		if err != nil {
			return "", err
		}
		b.WriteString(" ELSE " + elseText)
	}
	b.WriteString(" END")
	return b.String(), nil
}

func emitPathSub(v *transform.Visitor, c ast.Call, m mode, specs []pathSpec) (string, error) {
	spec, ok := pathSpecFor(specs, v, c)
	if !ok {
		return "", nil
	}
	if m == modeFinal {
		return spec.Name, nil
	}
	exprText, err := v.EmitExpr(c.Args[0])
	if err != nil {
		return "", err
	}
	sepText, err := v.EmitExpr(c.Args[1])
	if err != nil {
		return "", err
	}
	if m == modeBase {
		return "(" + sepText + " || " + exprText + ")", nil
	}
	return "(h." + spec.Name + " || " + sepText + " || " + exprText + ")", nil
}

func emitSelectListSub(v *transform.Visitor, items []ast.SelectItem, m mode, alias string, specs []pathSpec, includeAlias bool) (string, error) {
	parts := make([]string, len(items))
	for i, item := range items {
		text, err := emitSub(v, item.Expr, m, alias, specs, false)
		if err != nil {
			return "", err
		}
		if includeAlias && item.Alias != "" {
			text += " AS " + quoted(item.Alias)
		}
		parts[i] = text
	}
	return strings.Join(parts, ", "), nil
}

func (t *Transformer) emitBaseCase(v *transform.Visitor, sel ast.Select, base ast.TableRef, cb *ast.ConnectBy, specs []pathSpec) (string, error) {
	listText, err := emitSelectListSub(v, sel.List, modeBase, "", specs, true)
	if err != nil {
		return "", err
	}
	pathCols, err := emitPathColumns(v, specs, modeBase)
	if err != nil {
		return "", err
	}

	fromText, err := v.EmitBareTableRef(base)
	if err != nil {
		return "", err
	}

	startWith, err := emitSub(v, cb.StartWith, modeBase, "", specs, false)
	if err != nil {
		return "", err
	}
	where := startWith
	if sel.Where != nil {
		extra, err := emitSub(v, sel.Where, modeBase, "", specs, false)
		if err != nil {
			return "", err
		}
		where += " AND " + extra
	}

	return "SELECT " + listText + ", 1 AS level" + pathCols +
		" FROM " + fromText + " WHERE " + where, nil
}

func (t *Transformer) emitRecursiveCase(v *transform.Visitor, sel ast.Select, base ast.TableRef, alias, cteName, parentCol, childCol string, specs []pathSpec) (string, error) {
	listText, err := emitSelectListSub(v, sel.List, modeRecursive, alias, specs, false)
	if err != nil {
		return "", err
	}
	pathCols, err := emitPathColumns(v, specs, modeRecursive)
	if err != nil {
		return "", err
	}

	childRef := base
	childRef.Alias = alias
	fromText, err := v.EmitBareTableRef(childRef)
	if err != nil {
		return "", err
	}

	joinCond := quoted(alias) + "." + quoted(childCol) + " = h." + quoted(parentCol)

	text := "SELECT " + listText + ", h.level + 1 AS level" + pathCols +
		" FROM " + fromText + " JOIN " + cteName + " h ON " + joinCond

	if sel.Where != nil {
		whereText, err := emitSub(v, sel.Where, modeRecursive, alias, specs, true)
		if err != nil {
			return "", err
		}
		text += " WHERE " + whereText
	}
	return text, nil
}

func (t *Transformer) emitFinalSelect(v *transform.Visitor, sel ast.Select, cteName string, specs []pathSpec) (string, error) {
	listText, err := emitSelectListSub(v, sel.List, modeFinal, "", specs, true)
	if err != nil {
		return "", err
	}
	text := "SELECT " + listText + " FROM " + cteName
	if len(sel.OrderBy) > 0 {
		parts := make([]string, len(sel.OrderBy))
		for i, o := range sel.OrderBy {
			expr, err := emitSub(v, o.Expr, modeFinal, "", specs, false)
			if err != nil {
				return "", err
			}
			if o.Desc {
				expr += " DESC"
			}
			parts[i] = expr
		}
		text += " ORDER BY " + strings.Join(parts, ", ")
	}
	return text, nil
}

func emitPathColumns(v *transform.Visitor, specs []pathSpec, m mode) (string, error) {
	var b strings.Builder
	for _, s := range specs {
		var text string
		if m == modeBase {
			exprText, e1 := v.EmitExpr(s.ExprNode)
			sepText, e2 := v.EmitExpr(s.SepNode)
			if e1 != nil {
				return "", e1
			}
			if e2 != nil {
				return "", e2
			}
			text = "(" + sepText + " || " + exprText + ")"
		} else {
			exprText, e1 := v.EmitExpr(s.ExprNode)
			sepText, e2 := v.EmitExpr(s.SepNode)
			if e1 != nil {
				return "", e1
			}
			if e2 != nil {
				return "", e2
			}
			text = "(h." + s.Name + " || " + sepText + " || " + exprText + ")"
		}
		b.WriteString(", " + text + " AS " + s.Name)
	}
	return b.String(), nil
}
