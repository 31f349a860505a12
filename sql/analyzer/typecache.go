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

package analyzer

import (
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

// TypeCache is the span-keyed write-once-per-node map of spec §3/§8:
// write-only during pass 1, read-only during pass 2, missing keys read as
// UNKNOWN. It has no clear method at all (spec §4.5 "cache immutability").
type TypeCache struct {
	m map[ast.Span]types.Type
}

func NewTypeCache() *TypeCache { return &TypeCache{m: map[ast.Span]types.Type{}} }

func (c *TypeCache) set(span ast.Span, t types.Type) { c.m[span] = t }

// Get returns the cached type for span, or Unknown if the span was never
// written (spec §4.5 "conservative default").
func (c *TypeCache) Get(span ast.Span) types.Type {
	if t, ok := c.m[span]; ok {
		return t
	}
	return types.Unknown
}

func (c *TypeCache) Len() int { return len(c.m) }
