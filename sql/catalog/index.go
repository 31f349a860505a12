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

// Package catalog implements the Metadata Index of spec §3/§4.1: an
// immutable, pre-built read-only snapshot of Oracle schema metadata that
// the rest of the pipeline consults but never mutates.
package catalog

import (
	"strings"

	"github.com/Sayiza/orapgsync-sub011/sql/normalize"
	"github.com/Sayiza/orapgsync-sub011/sql/types"
)

// ColumnTypeInfo is the raw (un-mapped) Oracle type of one column, as
// reported by an external metadata extractor.
type ColumnTypeInfo struct {
	OracleType string
	Owner      string // set when OracleType names a user-defined composite
}

// FieldDef is one ordered field of a composite (object) type.
type FieldDef struct {
	Name       string
	OracleType string
}

// ObjectRef names a schema-qualified database object.
type ObjectRef struct {
	Schema string
	Name   string
}

// SynonymTarget is the single-hop resolution of one synonym entry.
type SynonymTarget struct {
	TargetOwner string
	TargetName  string
	DBLink      string // "" if none
}

// Index is the immutable metadata snapshot. Every key is lower-cased on
// entry (spec §3 invariant); construct it once via New*/Add* and then treat
// it as read-only — concurrent transformations (spec §5) share one Index.
type Index struct {
	columns          map[string]map[string]ColumnTypeInfo
	synonyms         map[string]map[string]SynonymTarget
	typeFields       map[string][]FieldDef
	objectTypeNames  map[string]bool
	packageFunctions map[string]bool
	typeMethods      map[string]string
}

func NewIndex() *Index {
	return &Index{
		columns:          map[string]map[string]ColumnTypeInfo{},
		synonyms:         map[string]map[string]SynonymTarget{},
		typeFields:       map[string][]FieldDef{},
		objectTypeNames:  map[string]bool{},
		packageFunctions: map[string]bool{},
		typeMethods:      map[string]string{},
	}
}

func lc(s string) string { return strings.ToLower(s) }

// AddColumn registers one column of one table. tableKey may be bare
// ("employees") or schema-qualified ("hr.employees").
func (ix *Index) AddColumn(tableKey, column string, info ColumnTypeInfo) {
	tk := lc(tableKey)
	if ix.columns[tk] == nil {
		ix.columns[tk] = map[string]ColumnTypeInfo{}
	}
	info.OracleType = lc(info.OracleType)
	info.Owner = lc(info.Owner)
	ix.columns[tk][lc(column)] = info
}

// AddSynonym registers one synonym entry owned by owner ("public" is the
// fallback owner per spec §3).
func (ix *Index) AddSynonym(owner, name string, target SynonymTarget) {
	o := lc(owner)
	if ix.synonyms[o] == nil {
		ix.synonyms[o] = map[string]SynonymTarget{}
	}
	target.TargetOwner = lc(target.TargetOwner)
	target.TargetName = lc(target.TargetName)
	ix.synonyms[o][lc(name)] = target
}

// AddTypeFields registers the ordered field list of a composite type.
func (ix *Index) AddTypeFields(owner, objectType string, fields []FieldDef) {
	key := lc(owner) + "." + lc(objectType)
	out := make([]FieldDef, len(fields))
	for i, f := range fields {
		out[i] = FieldDef{Name: lc(f.Name), OracleType: lc(f.OracleType)}
	}
	ix.typeFields[key] = out
	ix.objectTypeNames[lc(objectType)] = true
}

func (ix *Index) AddPackageFunction(qualifiedName string) {
	ix.packageFunctions[lc(qualifiedName)] = true
}

func (ix *Index) AddTypeMethod(owner, typeName, method, signature string) {
	ix.typeMethods[lc(owner)+"."+lc(typeName)+"."+lc(method)] = signature
}

// ColumnType implements spec §4.1's column_type lookup: try tableKey as
// given, then (if unqualified) with currentSchema prepended.
func (ix *Index) ColumnType(tableKey, column, currentSchema string) (types.Type, bool) {
	info, ok := ix.lookupColumnInfo(tableKey, column, currentSchema)
	if !ok {
		return types.Unknown, false
	}
	return normalize.MapScalarType(info.OracleType), true
}

func (ix *Index) lookupColumnInfo(tableKey, column, currentSchema string) (ColumnTypeInfo, bool) {
	tk, col := lc(tableKey), lc(column)
	if cols, ok := ix.columns[tk]; ok {
		if info, ok := cols[col]; ok {
			return info, true
		}
	}
	if !strings.Contains(tk, ".") && currentSchema != "" {
		qualified := lc(currentSchema) + "." + tk
		if cols, ok := ix.columns[qualified]; ok {
			if info, ok := cols[col]; ok {
				return info, true
			}
		}
	}
	return ColumnTypeInfo{}, false
}

// HasColumn reports whether the index knows column on tableKey (optionally
// schema-qualified, with the same current-schema fallback as ColumnType).
func (ix *Index) HasColumn(tableKey, column, currentSchema string) bool {
	_, ok := ix.lookupColumnInfo(tableKey, column, currentSchema)
	return ok
}

func (ix *Index) TypeFields(owner, objectType string) ([]FieldDef, bool) {
	fs, ok := ix.typeFields[lc(owner)+"."+lc(objectType)]
	return fs, ok
}

func (ix *Index) IsObjectTypeName(name string) bool { return ix.objectTypeNames[lc(name)] }

func (ix *Index) IsPackageFunction(qualifiedName string) bool {
	return ix.packageFunctions[lc(qualifiedName)]
}

func (ix *Index) TypeMethod(owner, typeName, method string) (string, bool) {
	sig, ok := ix.typeMethods[lc(owner)+"."+lc(typeName)+"."+lc(method)]
	return sig, ok
}

// resolveSynonymOnce is the single-hop lookup of spec §4.1: checks
// currentSchema first, then "public".
func (ix *Index) resolveSynonymOnce(currentSchema, name string) (SynonymTarget, bool) {
	n := lc(name)
	if m, ok := ix.synonyms[lc(currentSchema)]; ok {
		if t, ok := m[n]; ok {
			return t, true
		}
	}
	if lc(currentSchema) != "public" {
		if m, ok := ix.synonyms["public"]; ok {
			if t, ok := m[n]; ok {
				return t, true
			}
		}
	}
	return SynonymTarget{}, false
}
