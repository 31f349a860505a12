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

import "github.com/Sayiza/orapgsync-sub011/sql/ast"

// ResolveLiteral implements the literal resolver of spec §4.4: order
// matters — DATE/TIMESTAMP keyword literals are already disambiguated by
// the parser's LitKind, so here it's a straight mapping, but the ordering
// contract (date/timestamp before string, before numeric, before NULL/TRUE/
// FALSE) is preserved by switching on LitKind in that documented order.
func ResolveLiteral(lit ast.Literal) Type {
	switch lit.LitKind {
	case ast.LitDate:
		return Date
	case ast.LitTimestamp:
		return Timestamp
	case ast.LitString:
		return Text
	case ast.LitNumber:
		return Numeric
	case ast.LitNull:
		return Null
	case ast.LitTrue, ast.LitFalse:
		return Boolean
	default:
		return Unknown
	}
}
