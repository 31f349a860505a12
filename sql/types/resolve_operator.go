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

package types

import "github.com/Sayiza/orapgsync-sub011/sql/token"

// ResolveOperator implements the operator resolver of spec §4.4.
//
// Arithmetic: DATE±NUMERIC→DATE; DATE−DATE→NUMERIC; NUMERIC,NUMERIC→NUMERIC;
// || → TEXT; comparison/logical → BOOLEAN. A NULL operand propagates
// UNKNOWN only if the other operand is UNKNOWN; otherwise the other
// operand's type wins (so NULL with NULL stays NULL) (spec: "NULL operand propagates UNKNOWN
// only if the other is UNKNOWN, else category of the other").
func ResolveOperator(op token.Kind, l, r Type) Type {
	switch op {
	case token.CONCAT:
		return Text
	case token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
		token.LIKE, token.BETWEEN, token.IN, token.AND, token.OR, token.NOT, token.NULL_:
		return Boolean
	case token.PLUS, token.MINUS:
		return resolveArithmetic(op, l, r)
	case token.STAR, token.SLASH, token.PERCENT:
		return resolveNumericOnly(l, r)
	}
	return Unknown
}

func resolveArithmetic(op token.Kind, l, r Type) Type {
	isDate := func(t Type) bool { return t.Category == CategoryDate || t.Category == CategoryTimestamp }
	switch {
	case op == token.MINUS && isDate(l) && isDate(r):
		return Numeric
	case isDate(l) && r.Category == CategoryNumeric:
		return l
	case isDate(r) && l.Category == CategoryNumeric && op == token.PLUS:
		return r
	}
	return resolveNumericOnly(l, r)
}

func resolveNumericOnly(l, r Type) Type {
	if l.Category == CategoryNumeric && r.Category == CategoryNumeric {
		return Numeric
	}
	return propagateNull(l, r)
}

// propagateNull implements "NULL operand propagates UNKNOWN only if the
// other is UNKNOWN, else category of the other" for the remaining cases.
func propagateNull(l, r Type) Type {
	switch {
	case l.Category == CategoryNull && r.Category == CategoryUnknown:
		return Unknown
	case r.Category == CategoryNull && l.Category == CategoryUnknown:
		return Unknown
	case l.Category == CategoryNull:
		return r
	case r.Category == CategoryNull:
		return l
	}
	return Unknown
}
