// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exec

import (
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/term"
)

// applyFilterSet keeps only the rows of rows for which every filter named
// by indexes evaluates true, evaluating against snap's Term Store. snap is
// accepted for symmetry with joinPattern's signature even though today's
// builtins don't need it; a future builtin that resolves against the Fact
// Store at a point in time would.
func (e *Engine) applyFilterSet(rows []Row, filters []ir.Expr, indexes []int, slots map[ir.Var]int, snap facts.SnapshotHandle) []Row {
	if len(indexes) == 0 {
		return rows
	}
	var out []Row
	for _, row := range rows {
		keep := true
		for _, fi := range indexes {
			if _, ok := e.evalExpr(row, slots, filters[fi]); !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// evalExpr resolves one FILTER expression node against row, delegating
// Op-named calls to the same rete.BuiltinFunc registry SWRL builtins use.
// ok is false when a referenced variable is unbound, an argument fails to
// typecheck, or (for a predicate-style builtin like lessThan) the
// predicate's condition did not hold.
func (e *Engine) evalExpr(row Row, slots map[ir.Var]int, expr ir.Expr) (term.ID, bool) {
	switch {
	case expr.IsVar:
		v := row[slots[expr.Var]]
		return v, v != term.Zero
	case expr.IsConst:
		return expr.Const, true
	default:
		fn, ok := e.Builtins[expr.Op]
		if !ok {
			return term.Zero, false
		}
		args := make([]term.ID, len(expr.Args))
		for i, a := range expr.Args {
			v, ok := e.evalExpr(row, slots, a)
			if !ok {
				return term.Zero, false
			}
			args[i] = v
		}
		return fn(e.Terms, args)
	}
}
