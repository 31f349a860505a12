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

package hierarchy

import "github.com/Sayiza/orapgsync-sub011/sql/ast"

// walk calls fn for n and every expression node reachable from it. It is
// deliberately narrow: CONNECT BY queries only ever need to scan
// expressions (SELECT list, WHERE, ORDER BY, the CONNECT BY condition and
// START WITH), never statements or nested query blocks, so this does not
// attempt to be a general AST walker.
func walk(n ast.Node, fn func(ast.Node)) {
	if n == nil {
		return
	}
	fn(n)
	switch v := n.(type) {
	case ast.Unary:
		walk(v.X, fn)
	case ast.Binary:
		walk(v.L, fn)
		walk(v.R, fn)
	case ast.Call:
		for _, a := range v.Args {
			walk(a, fn)
		}
	case ast.Paren:
		walk(v.X, fn)
	case ast.Case:
		walk(v.Operand, fn)
		for _, w := range v.Whens {
			walk(w.Cond, fn)
			walk(w.Result, fn)
		}
		walk(v.Else, fn)
	}
}

// visitAllExprs calls fn for every expression node in the parts of sel a
// CONNECT BY rewrite touches: the SELECT list, WHERE, ORDER BY, and the
// CONNECT BY condition/START WITH.
func visitAllExprs(sel ast.Select, fn func(ast.Node)) {
	for _, item := range sel.List {
		walk(item.Expr, fn)
	}
	walk(sel.Where, fn)
	for _, o := range sel.OrderBy {
		walk(o.Expr, fn)
	}
	if sel.ConnectBy != nil {
		walk(sel.ConnectBy.Condition, fn)
		walk(sel.ConnectBy.StartWith, fn)
	}
}
