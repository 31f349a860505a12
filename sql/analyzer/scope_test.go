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

	"github.com/stretchr/testify/assert"

	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

func TestScopePushPopBalances(t *testing.T) {
	s := NewScope()
	assert.Equal(t, 0, s.Depth())
	pop := s.Push()
	assert.Equal(t, 1, s.Depth())
	pop()
	assert.Equal(t, 0, s.Depth())
}

func TestScopeAliasLookupInnermostFirst(t *testing.T) {
	s := NewScope()
	popOuter := s.Push()
	s.AddAlias("e", "hr.employees")
	popInner := s.Push()
	s.AddAlias("e", "hr.ex_employees")

	resolved, isCTE, ok := s.LookupAlias("e")
	assert.True(t, ok)
	assert.False(t, isCTE)
	assert.Equal(t, "hr.ex_employees", resolved)

	popInner()
	resolved, _, ok = s.LookupAlias("e")
	assert.True(t, ok)
	assert.Equal(t, "hr.employees", resolved)
	popOuter()
}

func TestScopeCorrelatedSubqueryVisibility(t *testing.T) {
	s := NewScope()
	popOuter := s.Push()
	s.AddAlias("e", "employees")
	popInner := s.Push()

	_, _, ok := s.LookupAlias("e")
	assert.True(t, ok, "inner scope should still see outer scope's alias")

	popInner()
	popOuter()
}

func TestScopeCTEAlias(t *testing.T) {
	s := NewScope()
	pop := s.Push()
	defer pop()

	s.AddCTE("recent_hires", CTEInfo{
		Columns:     []string{"emp_id"},
		ColumnTypes: map[string]types.Type{"emp_id": types.Numeric},
	})
	s.AddCTEAlias("r", "recent_hires")

	resolved, isCTE, ok := s.LookupAlias("r")
	assert.True(t, ok)
	assert.True(t, isCTE)
	assert.Equal(t, "recent_hires", resolved)

	cte, ok := s.LookupCTE(resolved)
	assert.True(t, ok)
	assert.True(t, types.Numeric.Equal(cte.ColumnTypes["emp_id"]))
}

func TestScopeLookupMissingAlias(t *testing.T) {
	s := NewScope()
	pop := s.Push()
	defer pop()
	_, _, ok := s.LookupAlias("nonexistent")
	assert.False(t, ok)
}
