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
)

func TestClassifyOracleType(t *testing.T) {
	tests := []struct {
		name  string
		owner string
		typ   string
		want  Classification
	}{
		{"no owner is built-in", "", "number", BuiltIn},
		{"sys xmltype is xml", "sys", "xmltype", XML},
		{"public xmltype is xml", "public", "XMLType", XML},
		{"sys anydata is system opaque", "sys", "anydata", SystemOpaque},
		{"aq queue types are system opaque", "sys", "aq$_jms_text_message", SystemOpaque},
		{"other owner is user composite", "hr", "address_t", UserComposite},
		{"sys unlisted type is user composite", "sys", "some_internal_t", UserComposite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyOracleType(tt.owner, tt.typ))
		})
	}
}

func TestClassificationString(t *testing.T) {
	assert.Equal(t, "BUILT_IN", BuiltIn.String())
	assert.Equal(t, "XML", XML.String())
	assert.Equal(t, "SYSTEM_OPAQUE", SystemOpaque.String())
	assert.Equal(t, "USER_COMPOSITE", UserComposite.String())
}
