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

// Package hierarchy implements the CONNECT BY Transformer of spec §4.7:
// rewriting an Oracle hierarchical query into a PostgreSQL WITH RECURSIVE
// CTE. It depends on sql/transform (to emit ordinary expression text) but
// sql/transform never imports it back, keeping the package graph a DAG —
// Transformer is wired into a transform.Visitor through the
// transform.ConnectByRewriter hook at construction time (engine.go), not a
// package-level dependency.
package hierarchy

import (
	"strings"

	"github.com/mitchellh/hashstructure"

	sqlpkg "github.com/Sayiza/orapgsync-sub011/sql"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/token"
	"github.com/Sayiza/orapgsync-sub011/sql/transform"
)

const priorOp = token.PRIOR

const nocycleWorkaroundText = "NOCYCLE is not supported; rewrite without it using either " +
	"(a) a materialized path array column threaded through the recursion with a UNIQUE/NOT-contains " +
	"guard in the recursive term's WHERE clause, or (b) a depth guard that caps the recursion via a " +
	"counter column compared against a maximum level in the recursive term."

// Transformer implements transform.ConnectByRewriter.
type Transformer struct{}

func New() *Transformer { return &Transformer{} }

type pathSpec struct {
	ExprText string
	SepNode  ast.Node
	ExprNode ast.Node
	Name     string
}

// Rewrite is the entry point a transform.Visitor calls for any Select whose
// ConnectBy field is set.
func (t *Transformer) Rewrite(v *transform.Visitor, sel ast.Select) (string, error) {
	if len(sel.From) != 1 {
		return "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY with more than one FROM table is not supported")
	}
	base := sel.From[0]
	if base.Subquery != nil {
		return "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY with a subquery in FROM is not supported")
	}
	cb := sel.ConnectBy
	if cb.NoCycle {
		return "", sqlpkg.ErrUnsupportedConstruct.New(nocycleWorkaroundText)
	}
	if cb.StartWith == nil {
		return "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY without START WITH is not supported")
	}
	if err := checkNoAdvancedPseudoColumns(sel); err != nil {
		return "", err
	}

	parentCol, childCol, err := extractPriorJoin(cb.Condition)
	if err != nil {
		return "", err
	}

	paths, err := collectSysConnectByPaths(v, sel)
	if err != nil {
		return "", err
	}

	alias := base.EffectiveAlias()
	cteName := strings.ToLower(base.Table) + "_hierarchy"

	baseCase, err := t.emitBaseCase(v, sel, base, cb, paths)
	if err != nil {
		return "", err
	}
	recursiveCase, err := t.emitRecursiveCase(v, sel, base, alias, cteName, parentCol, childCol, paths)
	if err != nil {
		return "", err
	}
	finalSelect, err := t.emitFinalSelect(v, sel, cteName, paths)
	if err != nil {
		return "", err
	}

	return "WITH RECURSIVE " + cteName + " AS (\n" +
		baseCase + "\nUNION ALL\n" + recursiveCase + "\n) " + finalSelect, nil
}

// extractPriorJoin implements spec §4.7's PRIOR-to-join rule: the CONNECT BY
// condition must be a single comparison with exactly one PRIOR, appearing
// as a unary operator on one side.
func extractPriorJoin(cond ast.Node) (parentCol, childCol string, err error) {
	if cond == nil {
		return "", "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY condition is missing")
	}
	if countPrior(cond) != 1 {
		return "", "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY condition must contain exactly one PRIOR")
	}
	bin, ok := cond.(ast.Binary)
	if !ok {
		return "", "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY condition must be a single comparison")
	}
	if lu, ok := bin.L.(ast.Unary); ok && lu.Op == priorOp {
		x, err := stripToIdentName(lu.X)
		if err != nil {
			return "", "", err
		}
		y, err := stripToIdentName(bin.R)
		if err != nil {
			return "", "", err
		}
		return x, y, nil
	}
	if ru, ok := bin.R.(ast.Unary); ok && ru.Op == priorOp {
		x, err := stripToIdentName(ru.X)
		if err != nil {
			return "", "", err
		}
		y, err := stripToIdentName(bin.L)
		if err != nil {
			return "", "", err
		}
		return x, y, nil
	}
	return "", "", sqlpkg.ErrUnsupportedConstruct.New("no PRIOR found in CONNECT BY condition")
}

func stripToIdentName(n ast.Node) (string, error) {
	id, ok := n.(ast.Ident)
	if !ok {
		return "", sqlpkg.ErrUnsupportedConstruct.New("CONNECT BY condition operand must be a plain column reference")
	}
	return id.Name(), nil
}

func countPrior(n ast.Node) int {
	count := 0
	walk(n, func(x ast.Node) {
		if u, ok := x.(ast.Unary); ok && u.Op == priorOp {
			count++
		}
	})
	return count
}

func checkNoAdvancedPseudoColumns(sel ast.Select) error {
	var found error
	visitAllExprs(sel, func(n ast.Node) {
		if found != nil {
			return
		}
		if c, ok := n.(ast.Call); ok {
			lname := strings.ToLower(c.Name)
			if lname == "connect_by_root" || lname == "connect_by_isleaf" {
				found = sqlpkg.ErrUnsupportedConstruct.New(strings.ToUpper(lname) + " is not supported")
			}
		}
	})
	return found
}

// collectSysConnectByPaths gathers distinct SYS_CONNECT_BY_PATH(expr, sep)
// invocations across the whole query, deduplicated by (expr_text,
// separator) per spec §4.7, assigning each a generated path_N name.
func collectSysConnectByPaths(v *transform.Visitor, sel ast.Select) ([]pathSpec, error) {
	var specs []pathSpec
	seen := map[uint64]int{}
	var walkErr error
	visitAllExprs(sel, func(n ast.Node) {
		if walkErr != nil {
			return
		}
		c, ok := n.(ast.Call)
		if !ok || strings.ToLower(c.Name) != "sys_connect_by_path" || len(c.Args) != 2 {
			return
		}
		exprText, err := v.EmitExpr(c.Args[0])
		if err != nil {
			walkErr = err
			return
		}
		sepText, err := v.EmitExpr(c.Args[1])
		if err != nil {
			walkErr = err
			return
		}
		key, err := hashstructure.Hash(struct{ Expr, Sep string }{exprText, sepText}, nil)
		if err != nil {
			key = 0
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = len(specs)
		specs = append(specs, pathSpec{
			ExprText: exprText,
			ExprNode: c.Args[0],
			SepNode:  c.Args[1],
			Name:     v.Names.Next("path"),
		})
	})
	return specs, walkErr
}

func pathSpecFor(specs []pathSpec, v *transform.Visitor, c ast.Call) (pathSpec, bool) {
	exprText, err := v.EmitExpr(c.Args[0])
	if err != nil {
		return pathSpec{}, false
	}
	sepText, err := v.EmitExpr(c.Args[1])
	if err != nil {
		return pathSpec{}, false
	}
	for _, s := range specs {
		sText, err := v.EmitExpr(s.SepNode)
		if err != nil {
			continue
		}
		if s.ExprText == exprText && sText == sepText {
			return s, true
		}
	}
	return pathSpec{}, false
}
