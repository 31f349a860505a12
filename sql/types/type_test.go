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

func TestPrecedenceOrder(t *testing.T) {
	assert.Greater(t, Precedence(CategoryTimestamp), Precedence(CategoryDate))
	assert.Greater(t, Precedence(CategoryDate), Precedence(CategoryNumeric))
	assert.Greater(t, Precedence(CategoryNumeric), Precedence(CategoryText))
	assert.Greater(t, Precedence(CategoryText), Precedence(CategoryBoolean))
	assert.Greater(t, Precedence(CategoryBoolean), Precedence(CategoryNull))
	assert.Greater(t, Precedence(CategoryNull), Precedence(CategoryUnknown))
}

func TestHighestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		cands []Type
		want  Type
	}{
		{"single concrete", []Type{Numeric}, Numeric},
		{"timestamp beats date", []Type{Date, Timestamp}, Timestamp},
		{"null ignored when concrete present", []Type{Null, Text}, Text},
		{"unknown ignored when concrete present", []Type{Unknown, Boolean}, Boolean},
		{"all null collapses to null", []Type{Null, Null}, Null},
		{"all unknown collapses to unknown", []Type{Unknown, Unknown}, Unknown},
		{"null and unknown collapses to null", []Type{Null, Unknown}, Null},
		{"no candidates", nil, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(HighestPrecedence(tt.cands...)))
		})
	}
}

func TestTypeEqual(t *testing.T) {
	a := Type{Category: CategoryNumeric, PGName: "numeric", Precision: 10, Scale: 2}
	b := Type{Category: CategoryNumeric, PGName: "numeric", Precision: 10, Scale: 2}
	c := Type{Category: CategoryNumeric, PGName: "numeric", Precision: 10, Scale: 3}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIsUnknownIsNull(t *testing.T) {
	assert.True(t, Unknown.IsUnknown())
	assert.False(t, Unknown.IsNull())
	assert.True(t, Null.IsNull())
	assert.False(t, Null.IsUnknown())
}
