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

// Package sql holds vocabulary shared by every stage of the Oracle-to-
// PostgreSQL transformation pipeline: structured error kinds and the
// diagnostic sink that pass 1 and pass 2 both write to.
package sql

import "gopkg.in/src-d/go-errors.v1"

// Structured error kinds. Every error that crosses a package boundary in
// this module is one of these, never a bare fmt.Errorf — callers match on
// kind with errors.Is / kind.Is(err) rather than string-sniffing messages.
var (
	// ErrParse is returned when the input cannot be recognized as the
	// bounded Oracle SQL/PL-SQL grammar this module targets.
	ErrParse = errors.NewKind("parse error: %s")

	// ErrUnsupportedConstruct is returned when the input is legal Oracle
	// but has no faithful PostgreSQL rewrite this module implements.
	ErrUnsupportedConstruct = errors.NewKind("unsupported construct: %s")

	// ErrSynonymCycle is recorded (never raised) when synonym resolution
	// detects a cycle: ResolveSynonymChain reports cyclic=true and the
	// caller records a warning diagnostic carrying this kind's message.
	ErrSynonymCycle = errors.NewKind("synonym cycle detected resolving %s.%s")

	// ErrAmbiguousColumn is recorded when an unqualified column name
	// matches more than one table in the same scope.
	ErrAmbiguousColumn = errors.NewKind("ambiguous column reference %q in scope")
)
