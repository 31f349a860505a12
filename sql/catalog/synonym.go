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

package catalog

import "github.com/mitchellh/hashstructure"

// ResolveSynonym implements spec §4.1/§6's single-hop lookup: checks
// currentSchema first, then "public". It is the function external DDL
// emitters call directly (spec §6 "also used by external DDL emitters").
// It does not follow chains — a synonym that points at another synonym is
// returned as-is; see ResolveSynonymChain for the terminal-target walk.
func ResolveSynonym(ix *Index, currentSchema, name string) (target ObjectRef, ok bool) {
	t, found := ix.resolveSynonymOnce(currentSchema, name)
	if !found {
		return ObjectRef{}, false
	}
	return ObjectRef{Schema: t.TargetOwner, Name: t.TargetName}, true
}

// visitKey produces a stable hash for a (schema, name) pair, used as the
// visited-set key while walking a synonym chain. A plain string key would
// do as well, but this wiring exercises hashstructure the way a cache
// fronting synonym resolution would (see SPEC_FULL.md §2) and keeps the
// visited set collision-proof even if schema/name ever grow structure.
func visitKey(schema, name string) uint64 {
	h, err := hashstructure.Hash(struct{ Schema, Name string }{lc(schema), lc(name)}, nil)
	if err != nil {
		return 0
	}
	return h
}

// ResolveSynonymChain follows a synonym chain to its terminal (non-synonym)
// target, applying ResolveSynonym repeatedly with a visited set to break
// cycles (spec §4.1 "callers that need the terminal target apply
// resolve_synonym iteratively with a visited set; on cycle, return None and
// record a warning" — the warning is the caller's responsibility, here
// signaled by cyclic=true).
func ResolveSynonymChain(ix *Index, currentSchema, name string) (target ObjectRef, ok bool, cyclic bool) {
	schema, n := currentSchema, name
	visited := map[uint64]bool{visitKey(schema, n): true}
	for {
		next, found := ResolveSynonym(ix, schema, n)
		if !found {
			return ObjectRef{Schema: schema, Name: n}, true, false
		}
		key := visitKey(next.Schema, next.Name)
		if visited[key] {
			return ObjectRef{}, false, true
		}
		visited[key] = true
		schema, n = next.Schema, next.Name
	}
}
