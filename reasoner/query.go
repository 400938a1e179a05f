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

package reasoner

import (
	"strconv"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/internal/tracing"
	"github.com/reter-go/reter/query/exec"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/term"
)

// run plans (or reuses a cached plan for) q and executes it against snap.
// A query referencing an uninterned constant can't happen here: callers
// build ir.Pattern/ir.Expr from term.IDs they already resolved, and a
// name that was never interned simply never matches anything, so an
// unknown term produces an empty Table rather than an error — there's no
// separate uninterned-constant code path to special-case.
func (r *Reasoner) run(q *ir.Query, snap facts.SnapshotHandle) (*exec.Table, error) {
	span := opentracing.StartSpan("reasoner.query.run")
	defer span.Finish()
	tracing.UpdateMetric(span, r.metrics.QueryDurationSeconds)

	p, err := r.queries.Get(q, r.facts)
	if err != nil {
		return nil, err
	}
	return r.engine.Run(p, q, snap), nil
}

// Select executes q (which must have Select set) against the current
// snapshot and returns the projected result table.
func (r *Reasoner) Select(q *ir.Query) (*exec.Table, error) {
	return r.run(q, r.Snapshot())
}

// Ask executes q (which must have Ask set) and reports whether it has any
// solution.
func (r *Reasoner) Ask(q *ir.Query) (bool, error) {
	t, err := r.run(q, r.Snapshot())
	if err != nil {
		return false, err
	}
	return len(t.Rows) > 0, nil
}

// Describe returns every triple with id as its subject or object: the
// small subgraph a caller would want to inspect to understand what id
// is, the host-facing describe(term) operation — distinct from a query's
// internal Describe(Var) modifier, which only resolves which term(s) a
// pattern matched and leaves expanding them to this method.
func (r *Reasoner) Describe(id term.ID) *exec.Table {
	out := &exec.Table{Vars: []ir.Var{"s", "p", "o"}}
	asSubject := r.facts.Select(facts.Pattern{Subject: &id})
	asObject := r.facts.Select(facts.Pattern{Object: &id})
	for _, tr := range asSubject {
		out.Rows = append(out.Rows, []term.ID{tr.Subject, tr.Predicate, tr.Object})
	}
	for _, tr := range asObject {
		if tr.Subject == id {
			continue // already listed via asSubject
		}
		out.Rows = append(out.Rows, []term.ID{tr.Subject, tr.Predicate, tr.Object})
	}
	return out
}

// RoleAssertions returns every live triple matching the given, possibly
// nil, role/subject/object constants.
func (r *Reasoner) RoleAssertions(role, subj, obj *term.ID) *exec.Table {
	out := &exec.Table{Vars: []ir.Var{"s", "p", "o"}}
	for _, tr := range r.facts.Select(facts.Pattern{Subject: subj, Predicate: role, Object: obj}) {
		out.Rows = append(out.Rows, []term.ID{tr.Subject, tr.Predicate, tr.Object})
	}
	return out
}

// InstancesOf returns every individual the current fact base entails is
// a member of class, for the subset of concept shapes conceptPatterns
// supports.
func (r *Reasoner) InstancesOf(class axiom.ConceptExpr) (*exec.Table, error) {
	next := ir.Var("v0")
	n := 0
	fresh := func() ir.Var {
		n++
		return ir.Var("v" + strconv.Itoa(n))
	}
	patterns, err := conceptPatterns(r.terms, class, next, fresh)
	if err != nil {
		return nil, err
	}
	q := &ir.Query{Select: []ir.Var{next}, Patterns: patterns}
	return r.run(q, r.Snapshot())
}

// SubsumersOf returns every class the loaded SubClassOf/EquivClasses
// axioms entail class is a subclass of, including class itself's direct
// and transitive superclasses, by walking the class-edge graph the
// Inference Driver recorded while loading axioms.
func (r *Reasoner) SubsumersOf(class term.ID) []term.ID {
	return r.walkClassGraph(class, false)
}

// SubsumedBy returns every class entailed to be a subclass of class,
// the reverse walk of SubsumersOf.
func (r *Reasoner) SubsumedBy(class term.ID) []term.ID {
	return r.walkClassGraph(class, true)
}

func (r *Reasoner) walkClassGraph(root term.ID, reversed bool) []term.ID {
	edges := r.driver.ClassEdges()
	table := &exec.Table{Vars: []ir.Var{"sub", "super"}}
	for _, e := range edges {
		if reversed {
			table.Rows = append(table.Rows, []term.ID{e.Super, e.Sub})
		} else {
			table.Rows = append(table.Rows, []term.ID{e.Sub, e.Super})
		}
	}

	reached := r.engine.Traverse(table, root, len(edges)+1)
	seen := map[term.ID]bool{}
	var out []term.ID
	for _, row := range reached.Rows {
		to := row[1]
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	return out
}
