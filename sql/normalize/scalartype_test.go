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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

func TestMapScalarType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Type
	}{
		{"varchar2 with length", "varchar2(100)", types.Type{Category: types.CategoryText, PGName: "text", Precision: 100}},
		{"number with precision and scale", "number(10,2)", types.Type{Category: types.CategoryNumeric, PGName: "numeric", Precision: 10, Scale: 2}},
		{"number with precision only", "number(5)", types.Type{Category: types.CategoryNumeric, PGName: "numeric", Precision: 5}},
		{"char with length", "char(1)", types.Type{Category: types.CategoryText, PGName: "text", Precision: 1}},
		{"bare date", "date", types.Date},
		{"bare number with no params", "number", types.Numeric},
		{"blob maps to bytea", "blob", types.Type{Category: types.CategoryText, PGName: "bytea"}},
		{"unrecognized type is unknown", "sdo_geometry", types.Unknown},
		{"case and whitespace are ignored", "  VARCHAR2(30)  ", types.Type{Category: types.CategoryText, PGName: "text", Precision: 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapScalarType(tt.input)
			assert.True(t, tt.want.Equal(got), "got %+v want %+v", got, tt.want)
		})
	}
}
