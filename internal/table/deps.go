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

package table

import "github.com/dolthub/alexdb/internal/parser/ast"

// collectIdents walks e and records every identifier name it references,
// free or not; dependencyNames below records all of them as dependency
// edges, without filtering to registered aggregates and comps.
func collectIdents(e ast.Expr, out map[string]bool) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case ast.IdentExpr:
		out[n.Name] = true
	case ast.BopExpr:
		collectIdents(n.Left, out)
		collectIdents(n.Right, out)
	case ast.UopExpr:
		collectIdents(n.Operand, out)
	case ast.CondExpr:
		collectIdents(n.Cond, out)
		collectIdents(n.Then, out)
		collectIdents(n.Else, out)
	case ast.FunExpr:
		collectIdents(n.Body, out)
	case ast.CallExpr:
		collectIdents(n.Fn, out)
		for _, a := range n.Args {
			collectIdents(a, out)
		}
	case ast.BlockExpr:
		for _, b := range n.Block.Bindings {
			collectIdents(b.Value, out)
		}
		collectIdents(n.Block.Final, out)
	case ast.TupleLit:
		for _, el := range n.Elems {
			collectIdents(el, out)
		}
	case ast.TupleIndex:
		collectIdents(n.Tuple, out)
	case ast.CoerceExpr:
		collectIdents(n.Operand, out)
	}
}

// dependencyNames returns every identifier referenced anywhere in exprs,
// as candidate edges in the aggregate/comp dependency graph. A referenced
// name that is not (yet) a registered aggregate or comp is still recorded:
// a comp may name another comp declared later, and the edge still has to
// be there for checkAcyclic to catch a cycle closed by that later
// declaration, not just one closed by an already-registered name.
func (t *Table) dependencyNames(exprs ...ast.Expr) []string {
	found := make(map[string]bool)
	for _, e := range exprs {
		collectIdents(e, found)
	}
	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	return out
}

// checkAcyclic reports whether registering name with the given direct
// dependencies keeps the aggregate/comp dependency graph acyclic: it
// returns false if the registration would close a cycle, walking t.deps
// (populated by every prior RegisterAggregate/RegisterComp call).
func (t *Table) checkAcyclic(name string, directDeps []string) bool {
	visited := make(map[string]bool)
	var reaches func(n string) bool
	reaches = func(n string) bool {
		if n == name {
			return true
		}
		if visited[n] {
			return false
		}
		visited[n] = true
		for _, d := range t.deps[n] {
			if reaches(d) {
				return true
			}
		}
		return false
	}
	for _, d := range directDeps {
		if reaches(d) {
			return false
		}
	}
	return true
}
