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

// Package analyzer implements the Type Analysis Pass of spec §4.5: a
// post-order visitor over the AST that populates a span-keyed type cache,
// using hierarchical alias/CTE scope stacks that support correlated
// subqueries.
package analyzer

import "github.com/Sayiza/orapgsync-sub011/sql/types"

// cteAliasPrefix marks an aliasLevels entry that actually names a CTE
// rather than a catalog table, so the column resolver can tell the two
// apart without a second map per level.
const cteAliasPrefix = "\x00cte:"

// CTEInfo is one CTE's ordered column-name -> Type mapping (spec §3).
type CTEInfo struct {
	Columns     []string
	ColumnTypes map[string]types.Type
}

// Scope holds the two LIFO stacks of spec §3: an alias scope (lower-cased
// alias -> resolved, possibly schema-qualified table identifier) and a CTE
// scope (lower-cased CTE name -> CTEInfo). Both are pushed on entering a
// query block or CTE-bearing construct and popped on exit, searched
// innermost-first so correlated subqueries see their enclosing query's
// tables (spec §3 "Lookup is innermost-first, spanning all enclosing
// scopes").
type Scope struct {
	aliasLevels []map[string]string
	cteLevels   []map[string]CTEInfo
}

func NewScope() *Scope { return &Scope{} }

// Push opens a new scope level and returns a guard to close it. Using the
// guard (rather than a bare Pop call) ensures a panic unwinding through an
// analysis bug can't leave the stacks unbalanced (Design Notes §9 "a scoped
// resource guard so an exception doesn't leak scopes").
func (s *Scope) Push() (pop func()) {
	s.aliasLevels = append(s.aliasLevels, map[string]string{})
	s.cteLevels = append(s.cteLevels, map[string]CTEInfo{})
	return s.Pop
}

func (s *Scope) Pop() {
	n := len(s.aliasLevels)
	s.aliasLevels = s.aliasLevels[:n-1]
	s.cteLevels = s.cteLevels[:n-1]
}

// Depth reports the current nesting depth; 0 means the stacks are empty
// (spec §8 "scope hygiene": after every transformation, scope stacks are
// empty).
func (s *Scope) Depth() int { return len(s.aliasLevels) }

// AddAlias registers a FROM-clause table reference at the current (top)
// level. qualifiedTable should preserve any explicit schema qualifier
// (spec §4.5 "stripping it causes cross-schema bugs").
func (s *Scope) AddAlias(alias, qualifiedTable string) {
	s.aliasLevels[len(s.aliasLevels)-1][alias] = qualifiedTable
}

// AddCTEAlias registers alias as referring to the CTE named cteName,
// rather than a catalog table, at the current level.
func (s *Scope) AddCTEAlias(alias, cteName string) {
	s.aliasLevels[len(s.aliasLevels)-1][alias] = cteAliasPrefix + cteName
}

// AddCTE registers a CTE definition at the current level, visible to
// subsequent CTEs in the same WITH clause and to the main query.
func (s *Scope) AddCTE(name string, info CTEInfo) {
	s.cteLevels[len(s.cteLevels)-1][name] = info
}

// LookupCTE searches the CTE scope innermost-first.
func (s *Scope) LookupCTE(name string) (CTEInfo, bool) {
	for i := len(s.cteLevels) - 1; i >= 0; i-- {
		if info, ok := s.cteLevels[i][name]; ok {
			return info, true
		}
	}
	return CTEInfo{}, false
}

// LookupAlias searches the alias scope innermost-first, returning the
// resolved table identifier and whether it actually names a CTE (in which
// case the string returned is the CTE name, not a catalog table).
func (s *Scope) LookupAlias(alias string) (resolved string, isCTE bool, ok bool) {
	for i := len(s.aliasLevels) - 1; i >= 0; i-- {
		if v, found := s.aliasLevels[i][alias]; found {
			if len(v) > len(cteAliasPrefix) && v[:len(cteAliasPrefix)] == cteAliasPrefix {
				return v[len(cteAliasPrefix):], true, true
			}
			return v, false, true
		}
	}
	return "", false, false
}

// AliasLevel is one level's alias entries, used by the unqualified-column
// scan of spec §4.4 step 3 (innermost level searched first, ambiguity
// detected only within a single level).
type AliasLevel struct {
	Tables []AliasEntry
}

type AliasEntry struct {
	Alias          string
	QualifiedTable string
	IsCTE          bool
}

// LevelsInnermostFirst returns every alias level, innermost first, each
// flattened into a stable-ish slice (map iteration order is randomized by
// Go, but the resolver only needs set membership/counts, never order).
func (s *Scope) LevelsInnermostFirst() []AliasLevel {
	out := make([]AliasLevel, 0, len(s.aliasLevels))
	for i := len(s.aliasLevels) - 1; i >= 0; i-- {
		lvl := AliasLevel{}
		for alias, v := range s.aliasLevels[i] {
			if len(v) > len(cteAliasPrefix) && v[:len(cteAliasPrefix)] == cteAliasPrefix {
				lvl.Tables = append(lvl.Tables, AliasEntry{Alias: alias, QualifiedTable: v[len(cteAliasPrefix):], IsCTE: true})
			} else {
				lvl.Tables = append(lvl.Tables, AliasEntry{Alias: alias, QualifiedTable: v})
			}
		}
		out = append(out, lvl)
	}
	return out
}
