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

package normalize

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

// exactScalarTypes is the 26-entry table of Oracle type tokens that map to a
// fixed PostgreSQL type with no parameters (spec §4.2). It covers the
// families the corpus's own Oracle extractors (other_examples/*-oracle-*.go)
// report seeing in the wild; a token not listed here maps to Unknown.
var exactScalarTypes = map[string]types.Type{
	"varchar2":       types.Text,
	"nvarchar2":      types.Text,
	"char":           types.Text,
	"nchar":          types.Text,
	"clob":           types.Text,
	"nclob":          types.Text,
	"long":           types.Text,
	"rowid":          types.Text,
	"urowid":         types.Text,
	"date":           types.Date,
	"timestamp":      types.Timestamp,
	"timestamp(6)":   types.Timestamp,
	"number":         types.Numeric,
	"integer":        types.Numeric,
	"int":            types.Numeric,
	"smallint":       types.Numeric,
	"float":          types.Numeric,
	"binary_float":   types.Numeric,
	"binary_double":  types.Numeric,
	"pls_integer":    types.Numeric,
	"binary_integer": types.Numeric,
	"boolean":        types.Boolean,
	"blob":           {Category: types.CategoryText, PGName: "bytea"},
	"raw":            {Category: types.CategoryText, PGName: "bytea"},
	"long raw":       {Category: types.CategoryText, PGName: "bytea"},
	"xmltype":        {Category: types.CategoryText, PGName: "xml"},
}

var (
	varchar2Re = regexp.MustCompile(`^varchar2\s*\(\s*(\d+)`)
	charRe     = regexp.MustCompile(`^n?char\s*\(\s*(\d+)`)
	numberRe   = regexp.MustCompile(`^number\s*\(\s*(\d+)\s*(?:,\s*(-?\d+))?\s*\)`)
)

// MapScalarType implements spec §4.2's scalar type map: parameterized
// prefixes (varchar2(n) -> text, number(p,s) -> numeric with precision/
// scale carried), the exact-match table above, and passthrough for unknowns
// (returned as Unknown so callers can flag an unmapped Oracle type rather
// than silently guessing).
func MapScalarType(oracleType string) types.Type {
	t := strings.ToLower(strings.TrimSpace(oracleType))

	if m := numberRe.FindStringSubmatch(t); m != nil {
		result := types.Numeric
		result.Precision = cast.ToInt(m[1])
		if m[2] != "" {
			result.Scale = cast.ToInt(m[2])
		}
		return result
	}
	if m := varchar2Re.FindStringSubmatch(t); m != nil {
		result := types.Text
		result.Precision = cast.ToInt(m[1])
		return result
	}
	if m := charRe.FindStringSubmatch(t); m != nil {
		result := types.Text
		result.Precision = cast.ToInt(m[1])
		return result
	}

	// Strip any remaining parenthesized parameters for the exact-match
	// lookup (e.g. "timestamp(6) with time zone" collapses to a prefix we
	// recognize, everything else falls through to Unknown).
	base := t
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if pt, ok := exactScalarTypes[base]; ok {
		return pt
	}
	if pt, ok := exactScalarTypes[t]; ok {
		return pt
	}
	return types.Unknown
}
