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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSynonymDirect(t *testing.T) {
	ix := NewIndex()
	ix.AddSynonym("hr", "emp_syn", SynonymTarget{TargetOwner: "hr", TargetName: "employees"})

	target, ok := ResolveSynonym(ix, "hr", "emp_syn")
	assert.True(t, ok)
	assert.Equal(t, ObjectRef{Schema: "hr", Name: "employees"}, target)
}

func TestResolveSynonymFallsBackToPublic(t *testing.T) {
	ix := NewIndex()
	ix.AddSynonym("public", "emp_syn", SynonymTarget{TargetOwner: "hr", TargetName: "employees"})

	target, ok := ResolveSynonym(ix, "finance", "emp_syn")
	assert.True(t, ok)
	assert.Equal(t, ObjectRef{Schema: "hr", Name: "employees"}, target)
}

func TestResolveSynonymNotFound(t *testing.T) {
	ix := NewIndex()
	_, ok := ResolveSynonym(ix, "hr", "nonexistent")
	assert.False(t, ok)
}

func TestResolveSynonymChainTerminal(t *testing.T) {
	ix := NewIndex()
	ix.AddSynonym("hr", "a_syn", SynonymTarget{TargetOwner: "hr", TargetName: "b_syn"})
	ix.AddSynonym("hr", "b_syn", SynonymTarget{TargetOwner: "hr", TargetName: "employees"})

	target, ok, cyclic := ResolveSynonymChain(ix, "hr", "a_syn")
	assert.True(t, ok)
	assert.False(t, cyclic)
	assert.Equal(t, ObjectRef{Schema: "hr", Name: "employees"}, target)
}

func TestResolveSynonymChainCycle(t *testing.T) {
	ix := NewIndex()
	ix.AddSynonym("hr", "a_syn", SynonymTarget{TargetOwner: "hr", TargetName: "b_syn"})
	ix.AddSynonym("hr", "b_syn", SynonymTarget{TargetOwner: "hr", TargetName: "a_syn"})

	_, ok, cyclic := ResolveSynonymChain(ix, "hr", "a_syn")
	assert.False(t, ok)
	assert.True(t, cyclic)
}
