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

// Package exec runs a query/plan.Plan against a facts.Store snapshot:
// the part of the pipeline that actually touches data, as opposed to
// query/plan's constant-independent compilation step.
package exec

import (
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/facts/cache"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/query/plan"
	"github.com/reter-go/reter/rete"
	"github.com/reter-go/reter/term"
)

// Row is one (possibly partial) solution: term IDs indexed by the owning
// Plan's variable slot numbering. An unbound slot holds term.Zero, which
// is never a value a Store hands out, so the sentinel can't collide with
// a real binding.
type Row []term.ID

func newRow(n int) Row { return make(Row, n) }

func (r Row) clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table is a query result: the projected columns, in order, and every
// matching row's values for them.
type Table struct {
	Vars []ir.Var
	Rows [][]term.ID
}

// Engine executes Plans against one Fact Store / Term Store pair.
type Engine struct {
	Facts    *facts.Store
	Terms    *term.Store
	Builtins map[string]rete.BuiltinFunc
}

// New returns an Engine with the default SWRL/FILTER builtin registry.
func New(fs *facts.Store, ts *term.Store) *Engine {
	return &Engine{Facts: fs, Terms: ts, Builtins: rete.DefaultBuiltins()}
}

// Run executes q (compiled as p) against snap and returns the projected
// result table. The caller is responsible for resolving p via a
// query/plan.Cache keyed on q beforehand. A fresh fact cache backs every
// pattern lookup this Run makes, so a pattern probed more than once while
// executing this one query (the same fully-bound (s,p,o) repeated across
// rows, or across a UNION branch and the outer conjunction) only hits the
// Fact Store's indices once.
func (e *Engine) Run(p *plan.Plan, q *ir.Query, snap facts.SnapshotHandle) *Table {
	slots := p.VarSlot
	fc := cache.New()
	rows := []Row{newRow(p.NumVars)}
	rows = e.runBlock(p.Steps, q.Patterns, q.Filters, slots, snap, fc, rows)

	// Every UnionPlan's relation is computed independently of the others
	// and of the outer rows accumulated so far, then joined against both.
	// All union blocks run to completion; none is skipped after the
	// first.
	for i, up := range p.Unions {
		unionRows := e.runUnion(up, q.Unions[i], slots, snap, fc, p.NumVars)
		rows = joinRows(rows, unionRows)
	}

	for i, mp := range p.Minuses {
		rows = e.applyMinus(rows, mp, q.Minuses[i], slots, snap, fc, p.NumVars)
	}

	rows = e.applyFilterSet(rows, q.Filters, p.TrailingFilters, slots, snap)

	return e.project(p, q, rows)
}

// runBlock executes one block's join order (the main conjunction, or one
// UNION branch, or one MINUS body) starting from seed, applying each
// step's push-down filters as soon as its pattern has been joined, and
// returns the resulting rows, short-circuiting as soon as none remain.
func (e *Engine) runBlock(steps []plan.PatternStep, patterns []ir.Pattern, filters []ir.Expr, slots map[ir.Var]int, snap facts.SnapshotHandle, fc cache.FactCache, seed []Row) []Row {
	rows := seed
	for _, step := range steps {
		if len(rows) == 0 {
			return rows
		}
		rows = e.joinPattern(rows, patterns[step.PatternIndex], slots, snap, fc)
		if len(step.FilterIndexes) > 0 {
			rows = e.applyFilterSet(rows, filters, step.FilterIndexes, slots, snap)
		}
	}
	return rows
}
