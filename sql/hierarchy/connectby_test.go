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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sayiza/orapgsync-sub011/sql/analyzer"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/transform"
)

func newVisitor(t *testing.T, ix *catalog.Index, sel ast.Select) *transform.Visitor {
	t.Helper()
	pass := analyzer.NewTypeAnalysisPass(ix, "hr", nil, "test-run")
	cache := pass.Run(sel)
	v := transform.NewVisitor(ix, "hr", cache, nil, "test-run")
	v.ConnectBy = New()
	return v
}

func parseSelect(t *testing.T, src string) ast.Select {
	t.Helper()
	res := ast.ParseSelectText(src)
	require.True(t, res.OK, "parse errors: %v", res.Errors)
	sel, ok := res.Root.(ast.Select)
	require.True(t, ok)
	return sel
}

func TestRewriteBasicHierarchy(t *testing.T) {
	sel := parseSelect(t, `
		SELECT employee_id, manager_id, LEVEL
		FROM employees
		START WITH manager_id IS NULL
		CONNECT BY PRIOR employee_id = manager_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, "WITH RECURSIVE employees_hierarchy AS ("))
	require.Contains(t, got, "UNION ALL")
	require.Contains(t, got, "1 AS level")
	require.Contains(t, got, "h.level + 1 AS level")
	require.Contains(t, got, "JOIN employees_hierarchy h ON employees.manager_id = h.employee_id")
	require.Contains(t, got, "WHERE manager_id IS NULL")
	require.True(t, strings.HasSuffix(got, "SELECT employee_id, manager_id, level FROM employees_hierarchy"))
}

func TestRewritePriorOnRightSide(t *testing.T) {
	sel := parseSelect(t, `
		SELECT employee_id
		FROM employees
		START WITH manager_id IS NULL
		CONNECT BY manager_id = PRIOR employee_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Contains(t, got, "JOIN employees_hierarchy h ON employees.manager_id = h.employee_id")
}

func TestRewriteSysConnectByPathDedup(t *testing.T) {
	sel := parseSelect(t, `
		SELECT SYS_CONNECT_BY_PATH(name, '/'), SYS_CONNECT_BY_PATH(name, '/')
		FROM employees
		START WITH manager_id IS NULL
		CONNECT BY PRIOR employee_id = manager_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	got, err := v.EmitSelect(sel)
	require.NoError(t, err)
	require.Equal(t, 7, strings.Count(got, "path_1"))
	require.NotContains(t, got, "path_2")
}

func TestRewriteNoCycleFails(t *testing.T) {
	sel := parseSelect(t, `
		SELECT employee_id
		FROM employees
		START WITH manager_id IS NULL
		CONNECT BY NOCYCLE PRIOR employee_id = manager_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	_, err := v.EmitSelect(sel)
	require.Error(t, err)
	require.Contains(t, err.Error(), "NOCYCLE is not supported")
}

func TestRewriteMissingStartWithFails(t *testing.T) {
	sel := ast.Select{
		List:      []ast.SelectItem{{Expr: ast.Ident{Parts: []string{"employee_id"}}}},
		From:      []ast.TableRef{{Table: "employees"}},
		ConnectBy: &ast.ConnectBy{Condition: ast.Binary{Op: 0}},
	}
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	_, err := v.EmitSelect(sel)
	require.Error(t, err)
}

func TestRewriteNoPriorFails(t *testing.T) {
	sel := parseSelect(t, `
		SELECT employee_id
		FROM employees
		START WITH manager_id IS NULL
		CONNECT BY employee_id = manager_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	_, err := v.EmitSelect(sel)
	require.Error(t, err)
}

func TestRewriteMultipleFromTablesFails(t *testing.T) {
	sel := parseSelect(t, `
		SELECT e.employee_id
		FROM employees e, departments d
		START WITH e.manager_id IS NULL
		CONNECT BY PRIOR e.employee_id = e.manager_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	_, err := v.EmitSelect(sel)
	require.Error(t, err)
}

func TestRewriteConnectByRootUnsupported(t *testing.T) {
	sel := parseSelect(t, `
		SELECT CONNECT_BY_ROOT(employee_id)
		FROM employees
		START WITH manager_id IS NULL
		CONNECT BY PRIOR employee_id = manager_id
	`)
	ix := catalog.NewIndex()
	v := newVisitor(t, ix, sel)

	_, err := v.EmitSelect(sel)
	require.Error(t, err)
}
