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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

func parseSelect(t *testing.T, src string) ast.Select {
	t.Helper()
	res := ast.ParseSelectText(src)
	require.True(t, res.OK, "parse errors: %v", res.Errors)
	sel, ok := res.Root.(ast.Select)
	require.True(t, ok)
	return sel
}

func TestPassLiteralAndOperatorType(t *testing.T) {
	sel := parseSelect(t, "SELECT 1 + 2 FROM dual")
	ix := catalog.NewIndex()
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-1")
	p.Run(sel)

	expr := sel.List[0].Expr
	got := p.Cache.Get(expr.Span())
	require.True(t, types.Numeric.Equal(got))
}

func TestPassDateArithmeticAndScalarSubquery(t *testing.T) {
	sel := parseSelect(t, "SELECT hire_date + 1, (SELECT hire_date FROM employees e2) FROM employees e1")
	ix := catalog.NewIndex()
	ix.AddColumn("employees", "hire_date", catalog.ColumnTypeInfo{OracleType: "date"})
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-2")
	p.Run(sel)

	arith := sel.List[0].Expr
	require.True(t, types.Date.Equal(p.Cache.Get(arith.Span())))

	sub := sel.List[1].Expr
	require.True(t, types.Date.Equal(p.Cache.Get(sub.Span())))
}

func TestPassCrossSchemaQualifierPreserved(t *testing.T) {
	sel := parseSelect(t, "SELECT e.salary FROM finance.employees e")
	ix := catalog.NewIndex()
	ix.AddColumn("finance.employees", "salary", catalog.ColumnTypeInfo{OracleType: "number(10,2)"})
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-3")
	p.Run(sel)

	got := p.Cache.Get(sel.List[0].Expr.Span())
	require.True(t, types.Numeric.Equal(types.Type{Category: got.Category, PGName: got.PGName}))
	require.Equal(t, 10, got.Precision)
}

func TestPassCTEColumnPropagation(t *testing.T) {
	sel := parseSelect(t, `
		WITH recent_hires AS (
			SELECT emp_id, hire_date AS started
			FROM employees
		)
		SELECT r.started FROM recent_hires r
	`)
	ix := catalog.NewIndex()
	ix.AddColumn("employees", "emp_id", catalog.ColumnTypeInfo{OracleType: "number"})
	ix.AddColumn("employees", "hire_date", catalog.ColumnTypeInfo{OracleType: "date"})
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-4")
	p.Run(sel)

	got := p.Cache.Get(sel.List[0].Expr.Span())
	require.True(t, types.Date.Equal(got))
}

func TestPassScopeHygieneAfterRun(t *testing.T) {
	sel := parseSelect(t, "SELECT e.id FROM employees e WHERE e.id IN (SELECT id FROM employees e2)")
	ix := catalog.NewIndex()
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-5")
	p.Run(sel)

	require.Equal(t, 0, p.Scope.Depth())
}

func TestPassAmbiguousUnqualifiedColumnIsUnknown(t *testing.T) {
	sel := parseSelect(t, "SELECT id FROM employees e, contractors c")
	ix := catalog.NewIndex()
	ix.AddColumn("employees", "id", catalog.ColumnTypeInfo{OracleType: "number"})
	ix.AddColumn("contractors", "id", catalog.ColumnTypeInfo{OracleType: "number"})
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-6")
	p.Run(sel)

	got := p.Cache.Get(sel.List[0].Expr.Span())
	require.True(t, got.IsUnknown())
	require.Len(t, p.Diagnostics, 1)
	require.Equal(t, "ambiguous-column", p.Diagnostics[0].Code)
}

func TestPassUnresolvedColumnIsConservativelyUnknown(t *testing.T) {
	sel := parseSelect(t, "SELECT nonexistent_col FROM employees e")
	ix := catalog.NewIndex()
	p := NewTypeAnalysisPass(ix, "hr", nil, "run-7")
	p.Run(sel)

	got := p.Cache.Get(sel.List[0].Expr.Span())
	require.True(t, got.IsUnknown())
}
