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

// Package types implements the value-type system of spec §3/§4.4: the Type
// value itself, the category precedence order, and the pure resolver
// functions for literals, pseudo-columns, operators and functions. The
// column resolver needs the alias scopes and lives in sql/analyzer
// (ResolveColumn).
package types

// Category is the coarse kind of a Type.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNull
	CategoryNumeric
	CategoryText
	CategoryDate
	CategoryTimestamp
	CategoryBoolean
	CategoryComposite
)

func (c Category) String() string {
	switch c {
	case CategoryNull:
		return "NULL"
	case CategoryNumeric:
		return "NUMERIC"
	case CategoryText:
		return "TEXT"
	case CategoryDate:
		return "DATE"
	case CategoryTimestamp:
		return "TIMESTAMP"
	case CategoryBoolean:
		return "BOOLEAN"
	case CategoryComposite:
		return "COMPOSITE"
	default:
		return "UNKNOWN"
	}
}

// precedence gives each category's rank in NVL/COALESCE/DECODE and
// arithmetic result inference (spec §3): higher wins.
// TIMESTAMP > DATE > NUMERIC > TEXT > BOOLEAN > NULL > UNKNOWN.
var precedence = map[Category]int{
	CategoryTimestamp: 6,
	CategoryDate:      5,
	CategoryNumeric:   4,
	CategoryText:      3,
	CategoryBoolean:   2,
	CategoryNull:      1,
	CategoryUnknown:   0,
	CategoryComposite: 4, // composites don't arise in precedence comparisons in practice
}

// Precedence returns c's rank; higher wins when choosing a representative
// type among heterogeneous operands.
func Precedence(c Category) int { return precedence[c] }

// Type is a value type: category plus optional PostgreSQL spelling and
// numeric precision/scale. Two Types are equal iff all four fields match
// (spec §3).
type Type struct {
	Category  Category
	PGName    string // canonical PG type name, or "schema.type" for composites
	Precision int    // 0 if not applicable
	Scale     int    // 0 if not applicable
}

func (t Type) Equal(o Type) bool {
	return t.Category == o.Category && t.PGName == o.PGName &&
		t.Precision == o.Precision && t.Scale == o.Scale
}

func (t Type) IsUnknown() bool { return t.Category == CategoryUnknown }
func (t Type) IsNull() bool    { return t.Category == CategoryNull }

// Well-known Types used throughout the resolvers below.
var (
	Unknown   = Type{Category: CategoryUnknown}
	Null      = Type{Category: CategoryNull}
	Numeric   = Type{Category: CategoryNumeric, PGName: "numeric"}
	Text      = Type{Category: CategoryText, PGName: "text"}
	Date      = Type{Category: CategoryDate, PGName: "date"}
	Timestamp = Type{Category: CategoryTimestamp, PGName: "timestamp"}
	Boolean   = Type{Category: CategoryBoolean, PGName: "boolean"}
)

// HighestPrecedence returns the Type among cands with the highest category
// precedence, ignoring NULL and UNKNOWN candidates unless every candidate is
// NULL/UNKNOWN (used by NVL/COALESCE/DECODE/NVL2/LEAST/GREATEST, spec §4.4).
func HighestPrecedence(cands ...Type) Type {
	best := Unknown
	haveConcrete := false
	for _, c := range cands {
		if c.Category == CategoryNull || c.Category == CategoryUnknown {
			continue
		}
		if !haveConcrete || Precedence(c.Category) > Precedence(best.Category) {
			best = c
			haveConcrete = true
		}
	}
	if haveConcrete {
		return best
	}
	// All candidates were NULL/UNKNOWN: NULL is absorbing unless nothing
	// was given at all.
	for _, c := range cands {
		if c.Category == CategoryNull {
			return Null
		}
	}
	return Unknown
}
