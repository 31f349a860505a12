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

// Package normalize implements spec §4.2: Oracle identifier normalization,
// PostgreSQL identifier quoting, the Oracle→PostgreSQL scalar type map, and
// Oracle type classification. Every function here is pure — no metadata
// index, no context — per spec §1 "the core uses these as pure utility
// functions."
package normalize

import (
	"strings"

	"github.com/Sayiza/orapgsync-sub011/sql/token"
)

// OracleName lower-cases an unquoted name; a double-quoted name has its
// quotes stripped and keeps its case.
// The core's internal convention (spec §4.2) is lower-case everywhere;
// callers needing the upper-case convention for comparison against
// Oracle-reported metadata do that at their own boundary.
func OracleName(raw string) string {
	s := raw
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
		return s // quoted identifiers keep their case in Oracle
	}
	return strings.ToLower(s)
}

var identRe = func() func(string) bool {
	return func(s string) bool {
		if s == "" {
			return false
		}
		c0 := s[0]
		if !(c0 == '_' || (c0 >= 'a' && c0 <= 'z')) {
			return false
		}
		for i := 1; i < len(s); i++ {
			c := s[i]
			if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
				return false
			}
		}
		return true
	}
}()

// QuotePG returns id, double-quoted if it (i) is a PG reserved word, (ii)
// does not match ^[a-z_][a-z0-9_]*$, or (iii) starts with a digit (already
// covered by (ii), kept explicit per spec §4.2 item iii).
func QuotePG(id string) string {
	lower := strings.ToLower(id)
	if token.IsPGReserved(lower) || !identRe(lower) {
		return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
	}
	return lower
}
