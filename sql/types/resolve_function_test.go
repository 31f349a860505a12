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
)

func TestResolveFunction(t *testing.T) {
	tests := []struct {
		name string
		fn   string
		args []Type
		want Type
	}{
		{"round on date stays date", "round", []Type{Date}, Date},
		{"round on numeric stays numeric", "round", []Type{Numeric}, Numeric},
		{"trunc with no args defaults numeric", "trunc", nil, Numeric},
		{"min propagates its argument", "min", []Type{Text}, Text},
		{"sum propagates its argument", "sum", []Type{Numeric}, Numeric},
		{"count is always numeric", "count", []Type{Text}, Numeric},
		{"nvl takes highest precedence arg", "nvl", []Type{Null, Date}, Date},
		{"coalesce skips unknown candidates", "coalesce", []Type{Unknown, Text}, Text},
		{"upper is fixed text", "upper", []Type{Numeric}, Text},
		{"to_date is fixed date", "to_date", []Type{Text}, Date},
		{"unrecognized function is unknown", "not_a_real_function", []Type{Numeric}, Unknown},
		{"name matching is case-insensitive", "ROUND", []Type{Numeric}, Numeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFunction(tt.fn, tt.args)
			assert.True(t, tt.want.Equal(got), "got %+v want %+v", got, tt.want)
		})
	}
}

func TestIsKnownFunction(t *testing.T) {
	assert.True(t, IsKnownFunction("NVL"))
	assert.True(t, IsKnownFunction("decode"))
	assert.False(t, IsKnownFunction("frobnicate"))
}
