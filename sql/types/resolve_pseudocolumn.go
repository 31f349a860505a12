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

import "strings"

// pseudoColumns is the fixed table of spec §4.4's pseudo-column resolver.
var pseudoColumns = map[string]Type{
	"sysdate":           Date,
	"current_date":      Date,
	"systimestamp":      Timestamp,
	"current_timestamp": Timestamp,
	"localtimestamp":    Timestamp,
	"rownum":            Numeric,
	"level":             Numeric,
	"uid":               Numeric,
	"user":              Text,
	"rowid":             Text,
	"sessiontimezone":   Text,
	"dbtimezone":        Text,
}

// ResolvePseudoColumn returns the fixed type of a pseudo-column identifier,
// or (Unknown, false) if name is not one of the recognized pseudo-columns.
func ResolvePseudoColumn(name string) (Type, bool) {
	t, ok := pseudoColumns[strings.ToLower(name)]
	return t, ok
}
