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

// Package orapgsync is the root of the Oracle-to-PostgreSQL transformation
// engine (spec §1): a two-pass compiler library, not a service. Mirroring
// the teacher's own root engine.go (sqle.Config / sqle.New), this file
// holds the package-level Transform* entry points (spec §6) and the
// per-transformation TransformationContext (spec §3/§8).
package orapgsync

import (
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	sqlpkg "github.com/Sayiza/orapgsync-sub011/sql"
	"github.com/Sayiza/orapgsync-sub011/sql/analyzer"
	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/catalog"
	"github.com/Sayiza/orapgsync-sub011/sql/hierarchy"
	"github.com/Sayiza/orapgsync-sub011/sql/transform"
)

// TransformationResult is the five entry points' uniform return value
// (spec §6): success iff PostgresSQL is non-nil.
type TransformationResult struct {
	PostgresSQL  *string
	ErrorMessage *string
	Diagnostics  []sqlpkg.Diagnostic
	// RunID is the same correlation id stamped on every Diagnostic (spec
	// §7), so a caller can attribute a bare failure with no diagnostics
	// back to the run that produced it.
	RunID string
}

func failure(runID string, err error, diags []sqlpkg.Diagnostic) TransformationResult {
	msg := err.Error()
	return TransformationResult{ErrorMessage: &msg, Diagnostics: diags, RunID: runID}
}

func success(runID, text string, diags []sqlpkg.Diagnostic) TransformationResult {
	return TransformationResult{PostgresSQL: &text, Diagnostics: diags, RunID: runID}
}

// Options configures ambient behavior that spec §3/§6 leaves to the caller:
// a logger sink and an explicit run ID. Either may be left zero; a
// TransformationContext fills in sensible defaults (spec §8's "the pass
// never aborts" extends to "an unconfigured context still runs").
type Options struct {
	Log   *logrus.Logger
	RunID string
}

// TransformationContext is the context of spec §3's C8: the metadata index,
// current schema, run ID and logger. The generated-name counter and the
// diagnostic lists live in the type-analysis pass and the visitor, which
// are built fresh for every transformation, so they never leak between
// concurrent transformations (spec §5, §8 "CTE determinism").
type TransformationContext struct {
	Index         *catalog.Index
	CurrentSchema string
	RunID         string
	log           *logrus.Entry
}

// NewTransformationContext builds the per-transformation context. index is
// shared and read-only across every concurrent call (spec §5); currentSchema
// scopes synonym and unqualified-table resolution.
func NewTransformationContext(index *catalog.Index, currentSchema string, opts Options) *TransformationContext {
	logger := opts.Log
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewV4().String()
	}
	return &TransformationContext{
		Index:         index,
		CurrentSchema: currentSchema,
		RunID:         runID,
		log:           logger.WithField("run_id", runID),
	}
}

// run executes the full two-pass pipeline (spec §5 "parse, type analysis,
// transformation, in this order") over a single parsed root node, using
// emit to produce the final text from the Visitor once pass 1 has run.
func (ctx *TransformationContext) run(parse *ast.ParseResult, emit func(*transform.Visitor) (string, error)) TransformationResult {
	if !parse.OK {
		err := sqlpkg.ErrParse.New(parse.Errors.Error())
		return failure(ctx.RunID, err, nil)
	}

	pass1 := analyzer.NewTypeAnalysisPass(ctx.Index, ctx.CurrentSchema, ctx.log, ctx.RunID)
	cache := pass1.Run(parse.Root)

	v := transform.NewVisitor(ctx.Index, ctx.CurrentSchema, cache, ctx.log, ctx.RunID)
	v.ConnectBy = hierarchy.New()

	text, err := emit(v)
	diags := append(pass1.Diagnostics, v.Diagnostics...)
	if err != nil {
		return failure(ctx.RunID, err, diags)
	}
	return success(ctx.RunID, text, diags)
}

// TransformSelect implements spec §6's transform_select.
func (ctx *TransformationContext) TransformSelect(oracleSQL string) TransformationResult {
	parse := ast.ParseSelectText(oracleSQL)
	return ctx.run(parse, func(v *transform.Visitor) (string, error) {
		sel, ok := parse.Root.(ast.Select)
		if !ok {
			return "", sqlpkg.ErrParse.New("input is not a SELECT")
		}
		return v.EmitSelect(sel)
	})
}

// TransformExpression implements spec §6's transform_expression.
func (ctx *TransformationContext) TransformExpression(oracleExpr string) TransformationResult {
	parse := ast.ParseExpressionText(oracleExpr)
	return ctx.run(parse, func(v *transform.Visitor) (string, error) {
		return v.EmitExpr(parse.Root)
	})
}

// TransformFunction implements spec §6's transform_function.
func (ctx *TransformationContext) TransformFunction(oraclePLSQL string) TransformationResult {
	parse := ast.ParseFunctionText(oraclePLSQL)
	return ctx.run(parse, func(v *transform.Visitor) (string, error) {
		fd, ok := parse.Root.(ast.FuncDecl)
		if !ok {
			return "", sqlpkg.ErrParse.New("input is not a function declaration")
		}
		return v.EmitFuncDecl(fd)
	})
}

// TransformProcedure implements spec §6's transform_procedure.
func (ctx *TransformationContext) TransformProcedure(oraclePLSQL string) TransformationResult {
	parse := ast.ParseProcedureText(oraclePLSQL)
	return ctx.run(parse, func(v *transform.Visitor) (string, error) {
		pd, ok := parse.Root.(ast.ProcDecl)
		if !ok {
			return "", sqlpkg.ErrParse.New("input is not a procedure declaration")
		}
		return v.EmitProcDecl(pd)
	})
}

// ResolveSynonym implements spec §6's resolve_synonym, also usable directly
// by external DDL emitters (spec §6) without building a transformation
// context at all.
func ResolveSynonym(index *catalog.Index, currentSchema, name string) (catalog.ObjectRef, bool) {
	return catalog.ResolveSynonym(index, currentSchema, name)
}
