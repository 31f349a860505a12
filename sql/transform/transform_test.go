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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sayiza/orapgsync-sub011/sql/analyzer"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
)

// analyzeAndVisit runs the full two-pass pipeline over a SELECT, returning a
// Visitor already primed with the type cache pass 1 produced, plus the
// parsed Select for callers to re-emit pieces of.
func analyzeAndVisit(t *testing.T, ix *catalog.Index, currentSchema, src string) (*Visitor, ast.Select) {
	t.Helper()
	res := ast.ParseSelectText(src)
	require.True(t, res.OK, "parse errors: %v", res.Errors)
	sel, ok := res.Root.(ast.Select)
	require.True(t, ok)

	pass := analyzer.NewTypeAnalysisPass(ix, currentSchema, nil, "test-run")
	cache := pass.Run(sel)

	return NewVisitor(ix, currentSchema, cache, nil, "test-run"), sel
}

func TestEmitSelectBasic(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddColumn("employees", "id", catalog.ColumnTypeInfo{OracleType: "number"})
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT e.id FROM employees e WHERE e.id > 10")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, `SELECT e.id FROM employees AS e WHERE e.id > 10`, got)
}

func TestEmitSelectSynonymQualification(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddSynonym("hr", "emp", catalog.SynonymTarget{TargetOwner: "hr", TargetName: "employees"})
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT 1 FROM emp")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1 FROM hr.employees", got)
}

func TestEmitSelectSynonymCycleWarns(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddSynonym("hr", "a_syn", catalog.SynonymTarget{TargetOwner: "hr", TargetName: "b_syn"})
	ix.AddSynonym("hr", "b_syn", catalog.SynonymTarget{TargetOwner: "hr", TargetName: "a_syn"})
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT 1 FROM a_syn")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1 FROM a_syn", got)
	require.Len(t, v.Diagnostics, 1)
	require.Equal(t, "synonym-cycle", v.Diagnostics[0].Code)
}

func TestEmitSelectReservedWordAlias(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", `SELECT 1 AS "order" FROM dual`)

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, `SELECT 1 AS "order" FROM dual`, got)
}

func TestEmitCallCountStar(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT COUNT(*) FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "count(*)", got)
}

func TestEmitCallNvlRemap(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT NVL(bonus, 0) FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "coalesce(bonus, 0)", got)
}

func TestEmitCallNvl2(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT NVL2(bonus, 'has', 'none') FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "CASE WHEN bonus IS NOT NULL THEN 'has' ELSE 'none' END", got)
}

func TestEmitCallDecode(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT DECODE(status, 'A', 'active', 'I', 'inactive', 'unknown') FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t,
		"CASE WHEN status = 'A' THEN 'active' WHEN status IS NULL AND 'A' IS NULL THEN 'active'"+
			" WHEN status = 'I' THEN 'inactive' WHEN status IS NULL AND 'I' IS NULL THEN 'inactive'"+
			" ELSE 'unknown' END",
		got)
}

func TestEmitCallTruncOnDate(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddColumn("employees", "hire_date", catalog.ColumnTypeInfo{OracleType: "date"})
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT TRUNC(hire_date) FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "date_trunc('day', hire_date)", got)
}

func TestEmitCallRoundDefensiveCast(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT ROUND(unresolved_expr, 2) FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "round((unresolved_expr)::numeric, 2)", got)
	require.Len(t, v.Diagnostics, 1)
	require.Equal(t, "defensive-cast", v.Diagnostics[0].Code)
}

func TestEmitCallQualifiedPackageFunction(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddPackageFunction("hr_pkg.get_salary")
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT hr_pkg.get_salary(emp_id) FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "hr_pkg.get_salary(emp_id)", got)
}

func TestEmitSysConnectByPathOutsideConnectByFails(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT SYS_CONNECT_BY_PATH(name, '/') FROM employees")

	_, err := v.EmitExpr(sel.List[0].Expr)
	require.Error(t, err)
}

func TestEmitCaseExpression(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr",
		"SELECT CASE WHEN salary > 1000 THEN 'high' ELSE 'low' END FROM employees")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "CASE WHEN salary > 1000 THEN 'high' ELSE 'low' END", got)
}

func TestEmitSelectWithCTE(t *testing.T) {
	ix := catalog.NewIndex()
	ix.AddColumn("employees", "hire_date", catalog.ColumnTypeInfo{OracleType: "date"})
	v, sel := analyzeAndVisit(t, ix, "hr", `
		WITH recent AS (SELECT hire_date AS started FROM employees)
		SELECT r.started FROM recent r
	`)

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t,
		"WITH recent AS (SELECT hire_date AS started FROM employees) "+
			"SELECT r.started FROM recent AS r",
		got)
}

func TestEmitJoin(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr",
		"SELECT e.id FROM employees e LEFT JOIN departments d ON e.dept_id = d.id")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT e.id FROM employees AS e LEFT JOIN departments AS d ON e.dept_id = d.id", got)
}

func TestEmitLiteralEscaping(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", `SELECT 'it''s here' FROM dual`)

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, `'it''s here'`, got)
}

func TestEmitPseudoColumnRemap(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT SYSDATE FROM dual")

	got, err := v.EmitExpr(sel.List[0].Expr)
	require.NoError(t, err)
	require.Equal(t, "current_date", got)
}

func TestEmitIsNull(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT 1 FROM employees e WHERE e.manager_id IS NULL")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1 FROM employees AS e WHERE e.manager_id IS NULL", got)
}

func TestEmitIsNotNull(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT 1 FROM employees e WHERE e.manager_id IS NOT NULL")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1 FROM employees AS e WHERE NOT e.manager_id IS NULL", got)
}

func TestEmitBetween(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT 1 FROM employees e WHERE e.salary BETWEEN 1000 AND 2000")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1 FROM employees AS e WHERE e.salary BETWEEN 1000 AND 2000", got)
}

func TestEmitInList(t *testing.T) {
	ix := catalog.NewIndex()
	v, sel := analyzeAndVisit(t, ix, "hr", "SELECT 1 FROM employees e WHERE e.dept_id IN (10, 20, 30)")

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, "SELECT 1 FROM employees AS e WHERE e.dept_id IN (10, 20, 30)", got)
}
