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
	sqlpkg "github.com/Sayiza/orapgsync-sub011/sql"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

// ResolveColumn implements the column resolver of spec §4.4:
//
//  1. If qualified by a known CTE name, return the CTE's column type.
//  2. If qualified by an alias, resolve the alias to a table identifier
//     (preserving any schema qualifier) and look it up in the index.
//  3. If unqualified, scan all tables in scope innermost-first; accept the
//     first table that contains the column; if two tables in the *same*
//     scope level both contain it, the reference is ambiguous -> UNKNOWN.
//  4. Otherwise UNKNOWN.
//
// warn is called with a Diagnostic code/message pair whenever the
// reference is ambiguous; nil is accepted and skips the call.
func ResolveColumn(ix *catalog.Index, currentSchema string, scope *Scope, id ast.Ident, warn func(code, message string)) types.Type {
	name := id.Name()

	if qualifier := id.Qualifier(); qualifier != "" {
		if cte, ok := scope.LookupCTE(qualifier); ok {
			if t, ok := cte.ColumnTypes[name]; ok {
				return t
			}
			return types.Unknown
		}
		if resolved, isCTE, ok := scope.LookupAlias(qualifier); ok {
			if isCTE {
				if cte, ok := scope.LookupCTE(resolved); ok {
					if t, ok := cte.ColumnTypes[name]; ok {
						return t
					}
				}
				return types.Unknown
			}
			if t, ok := ix.ColumnType(resolved, name, currentSchema); ok {
				return t
			}
			return types.Unknown
		}
		return types.Unknown
	}

	for _, level := range scope.LevelsInnermostFirst() {
		matches := 0
		var found types.Type
		for _, entry := range level.Tables {
			if entry.IsCTE {
				if cte, ok := scope.LookupCTE(entry.QualifiedTable); ok {
					if t, ok := cte.ColumnTypes[name]; ok {
						matches++
						found = t
					}
				}
				continue
			}
			if t, ok := ix.ColumnType(entry.QualifiedTable, name, currentSchema); ok {
				matches++
				found = t
			}
		}
		switch {
		case matches == 1:
			return found
		case matches > 1:
			if warn != nil {
				warn("ambiguous-column", sqlpkg.ErrAmbiguousColumn.New(name).Error())
			}
			return types.Unknown // ambiguous, spec §4.4
		}
	}
	return types.Unknown
}
