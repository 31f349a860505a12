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

func normalizeQuoted(id string) string {
	return normalize.QuotePG(normalize.OracleName(id))
}

// directFunctionRemap covers spec §4.6's "Oracle function-name remappings
// (documented table)": a straight name substitution with no argument
// reshaping. Names not in this table pass through unchanged (PostgreSQL
// and Oracle share most scalar function names).
var directFunctionRemap = map[string]string{
	"nvl":         "coalesce",
	"concat":      "concat",
	"rawtohex":    "encode",
	"sys_guid":    "gen_random_uuid",
	"to_char":     "to_char",
	"to_number":   "to_number",
	"to_date":     "to_date",
	"instr":       "strpos",
	"lengthb":     "octet_length",
	"nls_upper":   "upper",
	"nls_lower":   "lower",
	"nls_initcap": "initcap",
}

func (v *Visitor) emitCall(c ast.Call) (string, error) {
	if c.Qualifier != "" {
		return v.emitQualifiedCall(c)
	}
	lname := strings.ToLower(c.Name)
	switch lname {
	case "__list":
		// IN-list sentinel the parser builds for "x IN (a, b, c)" (never a
		// real Oracle function); emit the parenthesized, comma-joined list
		// an IN's right-hand side needs, not a call.
		args := make([]string, len(c.Args))
		for i, a := range c.Args {
			text, err := v.EmitExpr(a)
			if err != nil {
				return "", err
			}
			args[i] = text
		}
		return "(" + strings.Join(args, ", ") + ")", nil
	case "nvl2":
		return v.emitNvl2(c)
	case "decode":
		return v.emitDecode(c)
	case "round", "trunc":
		return v.emitRoundTrunc(lname, c)
	case "sys_connect_by_path":
		// Handled entirely inside sql/hierarchy once a CONNECT BY block
		// delegates to it; reaching here means it was used outside one.
		return "", v.unsupported("SYS_CONNECT_BY_PATH used outside a CONNECT BY query")
	case "connect_by_root", "connect_by_isleaf":
		return "", v.unsupported("CONNECT_BY_ROOT/CONNECT_BY_ISLEAF are not supported outside CONNECT BY rewriting")
	}

	name := lname
	if repl, ok := directFunctionRemap[lname]; ok {
		name = repl
	}
	distinct := ""
	if c.Distinct {
		distinct = "DISTINCT "
	}
	if len(c.Args) == 1 && isStarArg(c.Args[0]) {
		// COUNT(*) is parsed as a single Ident{Parts: ["*"]} argument per
		// the parser's convention; emit the star form rather than a
		// quoted "*" identifier.
		return name + "(*)", nil
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		text, err := v.EmitExpr(a)
		if err != nil {
			return "", err
		}
		args[i] = text
	}
	return name + "(" + distinct + strings.Join(args, ", ") + ")", nil
}

func isStarArg(n ast.Node) bool {
	id, ok := n.(ast.Ident)
	return ok && id.Name() == "*"
}

// emitQualifiedCall handles pkg.func(...) / obj.method(...) calls: the
// metadata index only records that these are known, not how to rewrite
// them (SPEC_FULL.md §4), so they pass through schema-qualified, trusting
// the companion migration of the package/type itself to PostgreSQL.
func (v *Visitor) emitQualifiedCall(c ast.Call) (string, error) {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		text, err := v.EmitExpr(a)
		if err != nil {
			return "", err
		}
		args[i] = text
	}
	qualifier := normalizeQuoted(c.Qualifier)
	name := normalizeQuoted(c.Name)
	return qualifier + "." + name + "(" + strings.Join(args, ", ") + ")", nil
}

// emitNvl2 rewrites NVL2(expr, v1, v2) to the CASE form PostgreSQL has no
// direct equivalent for.
func (v *Visitor) emitNvl2(c ast.Call) (string, error) {
	if len(c.Args) != 3 {
		return "", v.unsupported("NVL2 requires exactly 3 arguments")
	}
	expr, err := v.EmitExpr(c.Args[0])
	if err != nil {
		return "", err
	}
	v1, err := v.EmitExpr(c.Args[1])
	if err != nil {
		return "", err
	}
	v2, err := v.EmitExpr(c.Args[2])
	if err != nil {
		return "", err
	}
	return "CASE WHEN " + expr + " IS NOT NULL THEN " + v1 + " ELSE " + v2 + " END", nil
}

// emitDecode rewrites Oracle DECODE(expr, s1, r1, s2, r2, ..., default) to
// the equivalent CASE expression.
func (v *Visitor) emitDecode(c ast.Call) (string, error) {
	if len(c.Args) < 3 {
		return "", v.unsupported("DECODE requires an expression, at least one search/result pair, and optionally a default")
	}
	expr, err := v.EmitExpr(c.Args[0])
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("CASE")
	pairs := c.Args[1:]
	i := 0
	for ; i+1 < len(pairs); i += 2 {
		search, err := v.EmitExpr(pairs[i])
		if err != nil {
			return "", err
		}
		result, err := v.EmitExpr(pairs[i+1])
		if err != nil {
			return "", err
		}
		b.WriteString(" WHEN " + expr + " = " + search + " THEN " + result)
		b.WriteString(" WHEN " + expr + " IS NULL AND " + search + " IS NULL THEN " + result)
	}
	if i < len(pairs) {
		def, err := v.EmitExpr(pairs[i])
		if err != nil {
			return "", err
		}
		b.WriteString(" ELSE " + def)
	}
	b.WriteString(" END")
	return b.String(), nil
}

// emitRoundTrunc applies spec §4.6's defensive-cast rule: an argument the
// type cache could not resolve gets wrapped in ::numeric so PostgreSQL can
// pick an overload; a DATE-typed argument uses date_trunc semantics for
// TRUNC (ROUND on a DATE has no single-arg PostgreSQL equivalent and is
// left as a function call PostgreSQL itself will reject, matching the
// "fails fast on unsupported" contract rather than guessing a granularity).
func (v *Visitor) emitRoundTrunc(name string, c ast.Call) (string, error) {
	if len(c.Args) == 0 {
		return "", v.unsupported(name + " requires at least one argument")
	}
	arg0Type := categoryOf(c.Args[0], v.Cache)
	argText, err := v.EmitExpr(c.Args[0])
	if err != nil {
		return "", err
	}
	if name == "trunc" && (arg0Type.String() == "DATE" || arg0Type.String() == "TIMESTAMP") {
		if len(c.Args) == 1 {
			return "date_trunc('day', " + argText + ")", nil
		}
		unitText, err := v.EmitExpr(c.Args[1])
		if err != nil {
			return "", err
		}
		return "date_trunc(" + unitText + ", " + argText + ")", nil
	}
	if v.defensiveCastNeeded(c.Args[0]) {
		argText = "(" + argText + ")::numeric"
		v.warn("defensive-cast", name+"() argument could not be typed; inserted an explicit ::numeric cast")
	}
	rest := make([]string, 0, len(c.Args)-1)
	for _, a := range c.Args[1:] {
		t, err := v.EmitExpr(a)
		if err != nil {
			return "", err
		}
		rest = append(rest, t)
	}
	allArgs := append([]string{argText}, rest...)
	return name + "(" + strings.Join(allArgs, ", ") + ")", nil
}
