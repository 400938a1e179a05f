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

// Package plan turns a query/ir.Query into a Plan: a variable slot
// numbering and a pattern join order, independent of the query's actual
// bound constants so the same Plan can be reused (keyed by Fingerprint)
// across structurally identical queries.
package plan

import (
	"math"
	"sort"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/reasonerrors"
)

// PatternStep is one step of a join order: which pattern (by index into
// the owning Query.Patterns or Block's pattern list) to join next, the
// slot indices it shares with everything already joined before it (empty
// means a cross product), and which filters become evaluable for the
// first time right after this step.
type PatternStep struct {
	PatternIndex  int
	JoinSlots     []int
	FilterIndexes []int
}

// Block is an independently-planned conjunction of patterns: the body of
// one UNION branch or one MINUS clause.
type Block struct {
	Steps []PatternStep
}

// UnionPlan is one UNION block's compiled branches.
type UnionPlan struct {
	Branches []Block
}

// MinusPlan is one MINUS block's compiled body.
type MinusPlan struct {
	Block Block
}

// OrderSlot is one compiled ORDER BY term.
type OrderSlot struct {
	Slot int
	Desc bool
}

// Plan is the cached, constant-independent compilation of a Query.
type Plan struct {
	VarSlot map[ir.Var]int
	NumVars int

	Steps           []PatternStep
	TrailingFilters []int

	Unions  []UnionPlan
	Minuses []MinusPlan

	SelectSlots  []int
	DescribeSlot *int
	OrderBySlots []OrderSlot
}

type builder struct {
	slots map[ir.Var]int
	next  int
}

func (b *builder) slot(v ir.Var) int {
	if s, ok := b.slots[v]; ok {
		return s
	}
	s := b.next
	b.next++
	b.slots[v] = s
	return s
}

// New plans q against fs: it validates the query shape, chooses a pattern
// join order for the main conjunction and every UNION/MINUS block,
// assigns a stable slot index to every variable the query mentions, and
// decides the earliest point at which each FILTER's variables are all
// bound by the main conjunction (filters that depend on a UNION- or
// MINUS-only variable are evaluated once everything has been joined;
// see query/exec). It returns *reasonerrors.InvalidQuery for a shape
// the join planner can't soundly execute — most notably a Select or
// Describe variable that's bound only inside a MINUS clause, which is
// rejected as an InvalidQuery rather than silently producing an empty
// result.
func New(q *ir.Query, fs *facts.Store) (*Plan, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	b := &builder{slots: make(map[ir.Var]int)}
	for _, v := range q.Select {
		b.slot(v)
	}
	if q.Describe != nil {
		b.slot(*q.Describe)
	}

	mainBound := map[ir.Var]bool{}
	steps, assigned := orderPatterns(q.Patterns, q.Filters, fs, mainBound, b)

	var trailing []int
	for i := range q.Filters {
		if !assigned[i] {
			trailing = append(trailing, i)
		}
	}

	var unions []UnionPlan
	for _, u := range q.Unions {
		var branches []Block
		for _, branch := range u.Branches {
			branchBound := map[ir.Var]bool{}
			branchSteps, _ := orderPatterns(branch, nil, fs, branchBound, b)
			branches = append(branches, Block{Steps: branchSteps})
		}
		unions = append(unions, UnionPlan{Branches: branches})
	}

	var minuses []MinusPlan
	for _, m := range q.Minuses {
		bound := map[ir.Var]bool{}
		steps, _ := orderPatterns(m.Patterns, nil, fs, bound, b)
		minuses = append(minuses, MinusPlan{Block: Block{Steps: steps}})
	}

	p := &Plan{
		VarSlot:         b.slots,
		NumVars:         b.next,
		Steps:           steps,
		TrailingFilters: trailing,
		Unions:          unions,
		Minuses:         minuses,
	}
	for _, v := range q.Select {
		p.SelectSlots = append(p.SelectSlots, b.slot(v))
	}
	if q.Describe != nil {
		s := b.slot(*q.Describe)
		p.DescribeSlot = &s
	}
	for _, o := range q.OrderBy {
		p.OrderBySlots = append(p.OrderBySlots, OrderSlot{Slot: b.slot(o.Var), Desc: o.Desc})
	}
	return p, nil
}

// validate rejects a Query whose Select or Describe variable is reachable
// only through a MINUS block: MINUS variables don't bind into the result,
// so projecting one is a structural error, not an empty-result query.
func validate(q *ir.Query) error {
	boundElsewhere := map[ir.Var]bool{}
	for _, p := range q.Patterns {
		for _, v := range p.AppendVars(nil) {
			boundElsewhere[v] = true
		}
	}
	for _, u := range q.Unions {
		for _, v := range u.AppendVars(nil) {
			boundElsewhere[v] = true
		}
	}

	check := func(v ir.Var) error {
		if !boundElsewhere[v] {
			return &reasonerrors.InvalidQuery{
				Reason: "variable " + string(v) + " is bound only inside a MINUS clause",
			}
		}
		return nil
	}
	for _, v := range q.Select {
		if err := check(v); err != nil {
			return err
		}
	}
	if q.Describe != nil {
		if err := check(*q.Describe); err != nil {
			return err
		}
	}
	return nil
}

// orderPatterns greedily orders patterns by preferring, at each step, the
// unplaced pattern that shares the most already-bound variables with
// everything joined so far (ties broken by how many of its own slots are
// constant, then by the live cardinality of its predicate when the
// predicate itself is a constant — a cheap stand-in for a pre-computed
// predicate cardinality tie-break). When filters is
// non-nil, every filter whose variables all become bound for the first
// time after a given step is attached to that step (push-down); assigned
// reports, by index into filters, which ones were placed.
func orderPatterns(
	patterns []ir.Pattern,
	filters []ir.Expr,
	fs *facts.Store,
	bound map[ir.Var]bool,
	b *builder,
) ([]PatternStep, map[int]bool) {
	remaining := make([]int, len(patterns))
	for i := range patterns {
		remaining[i] = i
	}

	assignedFilter := make(map[int]bool)
	var steps []PatternStep

	for len(remaining) > 0 {
		best, bestScore, bestConst, bestCard := -1, -1, -1, math.MaxInt
		for _, idx := range remaining {
			pat := patterns[idx]
			score, constCount := patternScore(pat, bound)
			card := predicateCardinality(fs, pat)
			if score > bestScore ||
				(score == bestScore && constCount > bestConst) ||
				(score == bestScore && constCount == bestConst && card < bestCard) {
				best, bestScore, bestConst, bestCard = idx, score, constCount, card
			}
		}

		joinSlots := sharedSlots(patterns[best], bound, b)
		for _, v := range patterns[best].AppendVars(nil) {
			bound[v] = true
			b.slot(v)
		}

		step := PatternStep{PatternIndex: best, JoinSlots: joinSlots}
		for fi, f := range filters {
			if assignedFilter[fi] {
				continue
			}
			vars := f.AppendVars(nil)
			if len(vars) == 0 {
				continue
			}
			allBound := true
			for _, v := range vars {
				if !bound[v] {
					allBound = false
					break
				}
			}
			if allBound {
				step.FilterIndexes = append(step.FilterIndexes, fi)
				assignedFilter[fi] = true
			}
		}
		steps = append(steps, step)

		for i, idx := range remaining {
			if idx == best {
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return steps, assignedFilter
}

// patternScore counts how many of pat's variables are already bound
// (the join-selectivity signal) and how many of its slots are constant.
func patternScore(pat ir.Pattern, bound map[ir.Var]bool) (sharedCount, constCount int) {
	for _, t := range [3]ir.Term{pat.S, pat.P, pat.O} {
		if !t.IsVar {
			constCount++
			continue
		}
		if bound[t.Var] {
			sharedCount++
		}
	}
	return sharedCount, constCount
}

func sharedSlots(pat ir.Pattern, bound map[ir.Var]bool, b *builder) []int {
	var out []int
	seen := map[ir.Var]bool{}
	for _, t := range [3]ir.Term{pat.S, pat.P, pat.O} {
		if t.IsVar && bound[t.Var] && !seen[t.Var] {
			out = append(out, b.slot(t.Var))
			seen[t.Var] = true
		}
	}
	sort.Ints(out)
	return out
}

// predicateCardinality estimates the number of live triples a pattern's
// predicate matches, when the predicate slot is itself a constant.
// math.MaxInt ("unknown, don't prefer over a measured pattern") is
// returned when the predicate is a variable.
func predicateCardinality(fs *facts.Store, pat ir.Pattern) int {
	if pat.P.IsVar {
		return math.MaxInt
	}
	pred := pat.P.Const
	return len(fs.Select(facts.Pattern{Predicate: &pred}))
}
