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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sayiza/orapgsync-sub011/sql/ast"
)

func TestResolveLiteral(t *testing.T) {
	tests := []struct {
		kind ast.LiteralKind
		want Type
	}{
		{ast.LitDate, Date},
		{ast.LitTimestamp, Timestamp},
		{ast.LitString, Text},
		{ast.LitNumber, Numeric},
		{ast.LitNull, Null},
		{ast.LitTrue, Boolean},
		{ast.LitFalse, Boolean},
	}
	for _, tt := range tests {
		got := ResolveLiteral(ast.Literal{LitKind: tt.kind})
		assert.True(t, tt.want.Equal(got), "kind %v: got %+v want %+v", tt.kind, got, tt.want)
	}
}

func TestResolvePseudoColumn(t *testing.T) {
	got, ok := ResolvePseudoColumn("SYSDATE")
	assert.True(t, ok)
	assert.True(t, Date.Equal(got))

	got, ok = ResolvePseudoColumn("Level")
	assert.True(t, ok)
	assert.True(t, Numeric.Equal(got))

	_, ok = ResolvePseudoColumn("not_a_pseudo_column")
	assert.False(t, ok)
}
