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

	"github.com/Sayiza/orapgsync-sub011/sql/token"
)

func TestResolveOperator(t *testing.T) {
	tests := []struct {
		name string
		op   token.Kind
		l, r Type
		want Type
	}{
		{"concat is always text", token.CONCAT, Numeric, Date, Text},
		{"equality is boolean", token.EQ, Numeric, Numeric, Boolean},
		{"and is boolean", token.AND, Boolean, Boolean, Boolean},
		{"date plus numeric is date", token.PLUS, Date, Numeric, Date},
		{"numeric plus date is date", token.PLUS, Numeric, Date, Date},
		{"date minus date is numeric", token.MINUS, Date, Date, Numeric},
		{"timestamp minus timestamp is numeric", token.MINUS, Timestamp, Timestamp, Numeric},
		{"numeric minus numeric is numeric", token.MINUS, Numeric, Numeric, Numeric},
		{"numeric times numeric is numeric", token.STAR, Numeric, Numeric, Numeric},
		{"numeric over numeric is numeric", token.SLASH, Numeric, Numeric, Numeric},
		{"null plus numeric propagates numeric", token.PLUS, Null, Numeric, Numeric},
		{"numeric plus null propagates numeric", token.PLUS, Numeric, Null, Numeric},
		{"null plus unknown is unknown", token.PLUS, Null, Unknown, Unknown},
		{"unknown plus null is unknown", token.PLUS, Unknown, Null, Unknown},
		{"unrecognized op is unknown", token.SEMICOLON, Numeric, Numeric, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOperator(tt.op, tt.l, tt.r)
			assert.True(t, tt.want.Equal(got), "got %+v want %+v", got, tt.want)
		})
	}
}
