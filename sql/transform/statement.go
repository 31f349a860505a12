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

import (
	"strings"

	"github.com/Sayiza/orapgsync-sub011/sql/ast"
	"github.com/Sayiza/orapgsync-sub011/sql/normalize"
)

// EmitFuncDecl emits a CREATE FUNCTION body for an Oracle function
// declaration (spec §4.6 "statement-level behaviour").
func (v *Visitor) EmitFuncDecl(fd ast.FuncDecl) (string, error) {
	params, err := v.emitParamList(fd.Params)
	if err != nil {
		return "", err
	}
	body, err := v.emitBlockBody(fd.Body)
	if err != nil {
		return "", err
	}
	returnType := normalize.MapScalarType(fd.ReturnType).PGName
	if returnType == "" {
		returnType = "text"
	}
	name := normalizeQuoted(fd.Name)
	return "CREATE OR REPLACE FUNCTION " + name + "(" + params + ") RETURNS " + returnType +
		" LANGUAGE plpgsql AS $$\nBEGIN\n" + body + "\nEND;\n$$", nil
}

// EmitProcDecl emits a CREATE PROCEDURE body for an Oracle procedure.
func (v *Visitor) EmitProcDecl(pd ast.ProcDecl) (string, error) {
	params, err := v.emitParamList(pd.Params)
	if err != nil {
		return "", err
	}
	body, err := v.emitBlockBody(pd.Body)
	if err != nil {
		return "", err
	}
	name := normalizeQuoted(pd.Name)
	return "CREATE OR REPLACE PROCEDURE " + name + "(" + params + ")" +
		" LANGUAGE plpgsql AS $$\nBEGIN\n" + body + "\nEND;\n$$", nil
}

func (v *Visitor) emitParamList(params []ast.Param) (string, error) {
	parts := make([]string, len(params))
	for i, p := range params {
		pgType := normalize.MapScalarType(p.OraType).PGName
		if pgType == "" {
			pgType = "text"
		}
		text := normalizeQuoted(p.Name) + " " + pgType
		if p.IsOutput {
			text = "OUT " + text
		} else {
			text = "IN " + text
		}
		parts[i] = text
	}
	return strings.Join(parts, ", "), nil
}

func (v *Visitor) emitBlockBody(b *ast.Block) (string, error) {
	if b == nil {
		return "", nil
	}
	var lines []string
	for _, s := range b.Stmts {
		text, err := v.EmitStatement(s)
		if err != nil {
			return "", err
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"), nil
}

// EmitStatement is the PL/SQL statement half of the visitor.
func (v *Visitor) EmitStatement(n ast.Node) (string, error) {
	switch s := n.(type) {
	case ast.Return:
		return v.emitReturn(s)
	case ast.Assign:
		return v.emitAssign(s)
	case ast.Block:
		body, err := v.emitBlockBody(&s)
		if err != nil {
			return "", err
		}
		return "BEGIN\n" + body + "\nEND;", nil
	case ast.If:
		return v.emitIf(s)
	case ast.For:
		return v.emitFor(s)
	default:
		return "", v.unsupported("statement node with no PostgreSQL rewrite")
	}
}

func (v *Visitor) emitReturn(r ast.Return) (string, error) {
	if r.Expr == nil {
		return "RETURN;", nil
	}
	text, err := v.EmitExpr(r.Expr)
	if err != nil {
		return "", err
	}
	return "RETURN " + text + ";", nil
}

func (v *Visitor) emitAssign(a ast.Assign) (string, error) {
	target, err := v.EmitExpr(a.Target)
	if err != nil {
		return "", err
	}
	value, err := v.EmitExpr(a.Value)
	if err != nil {
		return "", err
	}
	return target + " := " + value + ";", nil
}

func (v *Visitor) emitIf(s ast.If) (string, error) {
	cond, err := v.EmitExpr(s.Cond)
	if err != nil {
		return "", err
	}
	thenBody, err := v.emitStatementList(s.Then)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("IF " + cond + " THEN\n" + thenBody)
	for _, ei := range s.ElseIfs {
		eiCond, err := v.EmitExpr(ei.Cond)
		if err != nil {
			return "", err
		}
		eiBody, err := v.emitStatementList(ei.Then)
		if err != nil {
			return "", err
		}
		b.WriteString("\nELSIF " + eiCond + " THEN\n" + eiBody)
	}
	if len(s.Else) > 0 {
		elseBody, err := v.emitStatementList(s.Else)
		if err != nil {
			return "", err
		}
		b.WriteString("\nELSE\n" + elseBody)
	}
	b.WriteString("\nEND IF;")
	return b.String(), nil
}

func (v *Visitor) emitStatementList(stmts []ast.Node) (string, error) {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		text, err := v.EmitStatement(s)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return strings.Join(parts, "\n"), nil
}

// emitFor covers both the numeric range form and the cursor-query form
// (spec §3 "FOR" node covers both; the query form becomes a PL/pgSQL
// "FOR rec IN (query) LOOP").
func (v *Visitor) emitFor(s ast.For) (string, error) {
	body, err := v.emitStatementList(s.Body)
	if err != nil {
		return "", err
	}
	varName := normalizeQuoted(s.Var)
	if s.Query != nil {
		query, err := v.EmitSelect(*s.Query)
		if err != nil {
			return "", err
		}
		return "FOR " + varName + " IN (" + query + ") LOOP\n" + body + "\nEND LOOP;", nil
	}
	lo, err := v.EmitExpr(s.Lo)
	if err != nil {
		return "", err
	}
	hi, err := v.EmitExpr(s.Hi)
	if err != nil {
		return "", err
	}
	return "FOR " + varName + " IN " + lo + ".." + hi + " LOOP\n" + body + "\nEND LOOP;", nil
}
