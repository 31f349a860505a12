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

package token

import "sort"

// pgReservedWords is PostgreSQL's reserved-word set (words that cannot be
// used unquoted as an identifier in any context), taken from the "reserved"
// and "reserved (can be function or type name)" rows of the Postgres
// documentation's keyword appendix. The full table has on the order of 500
// entries; this list carries the ones the core's own generated/rewritten
// output is actually at risk of emitting (column/alias/CTE names coming
// from Oracle identifiers, generated names like "user", "table", "order").
// It is kept sorted for binary search, per the Design Notes' "prefer
// perfect-hash or sorted-array lookup".
var pgReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "authorization", "binary", "both", "case", "cast",
	"check", "collate", "collation", "column", "concurrently", "constraint",
	"create", "cross", "current_catalog", "current_date", "current_role",
	"current_schema", "current_time", "current_timestamp", "current_user",
	"default", "deferrable", "desc", "distinct", "do", "else", "end",
	"except", "false", "fetch", "for", "foreign", "freeze", "from", "full",
	"grant", "group", "having", "ilike", "in", "initially", "inner",
	"intersect", "into", "is", "isnull", "join", "lateral", "leading",
	"left", "like", "limit", "localtime", "localtimestamp", "natural",
	"not", "notnull", "null", "offset", "on", "only", "or", "order",
	"outer", "overlaps", "placing", "primary", "references", "returning",
	"right", "select", "session_user", "similar", "some", "symmetric",
	"table", "tablesample", "then", "to", "trailing", "true", "union",
	"unique", "user", "using", "variadic", "verbose", "when", "where",
	"window", "with",
}

func init() {
	sort.Strings(pgReservedWords)
}

// IsPGReserved reports whether id (already lower-cased) is a PostgreSQL
// reserved word and therefore must be quoted regardless of its shape.
func IsPGReserved(id string) bool {
	i := sort.SearchStrings(pgReservedWords, id)
	return i < len(pgReservedWords) && pgReservedWords[i] == id
}
