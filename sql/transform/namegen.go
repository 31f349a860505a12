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

package transform

import "strconv"

// NameGenerator hands out monotonically increasing suffixes for generated
// names (path_1, path_2, ...) within one transformation. Spec §8's "CTE
// determinism" invariant requires two independent transformations never
// share a counter, so a NameGenerator is always owned by exactly one
// Visitor and never stored at package scope.
type NameGenerator struct {
	next map[string]int
}

func NewNameGenerator() *NameGenerator {
	return &NameGenerator{next: map[string]int{}}
}

// Next returns "<prefix>_<n>" where n starts at 1 and increases per prefix.
func (g *NameGenerator) Next(prefix string) string {
	n := g.next[prefix] + 1
	g.next[prefix] = n
	return prefix + "_" + strconv.Itoa(n)
}
