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
	"github.com/reter-go/reter/facts/cache"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/term"
)

// joinPattern extends every row in rows with pat, binding any of pat's
// variables not already bound in a row and requiring any that are
// already bound to agree with the matching triple. Each row's already-
// bound values are pushed into the Fact Store select as constants — an
// index-assisted nested-loop join that gets the same result a hash join
// keyed on the shared variables would, but does it through the Fact
// Store's existing five-permutation index rather than building a second,
// redundant hash index on top of it.
//
// When a row leaves every one of pat's slots already bound (a fully
// ground lookup — the common case once enough of the join order has run),
// the result is a single yes/no fact, not a relation, so it's worth
// remembering in fc: a later row, or a concurrently-running UNION branch
// against the same snapshot, that probes the identical (s,p,o) again
// skips the Fact Store call entirely.
func (e *Engine) joinPattern(rows []Row, pat ir.Pattern, slots map[ir.Var]int, snap facts.SnapshotHandle, fc cache.FactCache) []Row {
	epoch := snap.Epoch()
	var out []Row
	for _, row := range rows {
		fsPat := bindPattern(pat, row, slots)
		if s, p, o, ground := groundTriple(fsPat); ground {
			if fc.Has(epoch, s, p, o) {
				out = append(out, unifyTriple(pat, row, slots, facts.Triple{Subject: s, Predicate: p, Object: o}))
				continue
			}
			if fc.IsFiction(epoch, s, p, o) {
				continue
			}
			matches := e.Facts.SelectAt(snap, fsPat)
			if len(matches) == 0 {
				fc.AddFiction(epoch, s, p, o)
				continue
			}
			for _, tr := range matches {
				fc.Add(epoch, tr)
				out = append(out, unifyTriple(pat, row, slots, tr))
			}
			continue
		}
		for _, tr := range e.Facts.SelectAt(snap, fsPat) {
			out = append(out, unifyTriple(pat, row, slots, tr))
		}
	}
	return out
}

// groundTriple reports whether fsPat binds all three slots to a constant,
// and if so returns them.
func groundTriple(fsPat facts.Pattern) (s, p, o term.ID, ground bool) {
	if fsPat.Subject == nil || fsPat.Predicate == nil || fsPat.Object == nil {
		return term.Zero, term.Zero, term.Zero, false
	}
	return *fsPat.Subject, *fsPat.Predicate, *fsPat.Object, true
}

// bindPattern turns an ir.Pattern plus a partially-bound row into a
// facts.Pattern: a constant wherever the ir.Pattern slot is itself
// constant or references an already-bound variable, a wildcard
// otherwise.
func bindPattern(pat ir.Pattern, row Row, slots map[ir.Var]int) facts.Pattern {
	var fsPat facts.Pattern
	fsPat.Subject = slotConst(pat.S, row, slots)
	fsPat.Predicate = slotConst(pat.P, row, slots)
	fsPat.Object = slotConst(pat.O, row, slots)
	return fsPat
}

func slotConst(t ir.Term, row Row, slots map[ir.Var]int) *term.ID {
	if !t.IsVar {
		id := t.Const
		return &id
	}
	if v := row[slots[t.Var]]; v != term.Zero {
		return &v
	}
	return nil
}

// unifyTriple binds tr's subject/predicate/object into a clone of row at
// pat's variable slots. It never needs to reject tr: bindPattern already
// pushed every bound variable's value into the Select call as a
// constant, so tr is guaranteed consistent with row by construction.
func unifyTriple(pat ir.Pattern, row Row, slots map[ir.Var]int, tr facts.Triple) Row {
	out := row.clone()
	bindSlot(out, pat.S, tr.Subject, slots)
	bindSlot(out, pat.P, tr.Predicate, slots)
	bindSlot(out, pat.O, tr.Object, slots)
	return out
}

func bindSlot(row Row, t ir.Term, val term.ID, slots map[ir.Var]int) {
	if t.IsVar {
		row[slots[t.Var]] = val
	}
}

// joinRows performs a full natural join of two relations: rows from left
// and right are combined wherever every slot bound in both agrees, taking
// whichever side has a binding for slots bound in only one. This is the
// relation-to-relation join used to compose UNION blocks with the outer
// query and with each other (joining those relations with the outer
// patterns and with each other via shared variables); unlike
// joinPattern it can't push bound values down into an index lookup
// because both sides are already-materialised relations, not a Fact
// Store pattern, so it's a plain nested loop with a per-pair compatibility
// check. Query-engine relation sizes are bounded by the caller's own
// pattern selectivity, not by unindexed bulk data, so this stays cheap in
// practice.
func joinRows(left, right []Row) []Row {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	var out []Row
	for _, l := range left {
		for _, r := range right {
			if merged, ok := mergeRows(l, r); ok {
				out = append(out, merged)
			}
		}
	}
	return out
}

func mergeRows(l, r Row) (Row, bool) {
	out := make(Row, len(l))
	for i := range l {
		switch {
		case l[i] != term.Zero && r[i] != term.Zero:
			if l[i] != r[i] {
				return nil, false
			}
			out[i] = l[i]
		case l[i] != term.Zero:
			out[i] = l[i]
		default:
			out[i] = r[i]
		}
	}
	return out, true
}
