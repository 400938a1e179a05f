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
	"sort"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/query/plan"
	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*term.Store, *facts.Store, *Engine) {
	t.Helper()
	ts := term.NewStore()
	fs := facts.New()
	return ts, fs, New(fs, ts)
}

func runQuery(t *testing.T, ts *term.Store, fs *facts.Store, e *Engine, q *ir.Query) *Table {
	t.Helper()
	p, err := plan.New(q, fs)
	require.NoError(t, err, spew.Sdump(q))
	return e.Run(p, q, fs.Snapshot())
}

func idSet(rows [][]term.ID, col int) []term.ID {
	out := make([]term.ID, len(rows))
	for i, r := range rows {
		out[i] = r[col]
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestRun_JoinAcrossTwoPatterns(t *testing.T) {
	ts, fs, e := newFixture(t)
	knows := ts.InternName("knows")
	likes := ts.InternName("likes")
	alice := ts.InternName("alice")
	bob := ts.InternName("bob")
	cake := ts.InternName("cake")

	fs.Assert(facts.Triple{Subject: alice, Predicate: knows, Object: bob}, "t")
	fs.Assert(facts.Triple{Subject: bob, Predicate: likes, Object: cake}, "t")
	fs.Assert(facts.Triple{Subject: alice, Predicate: likes, Object: cake}, "t")

	q := &ir.Query{
		Select: []ir.Var{"y"},
		Patterns: []ir.Pattern{
			{S: ir.ConstTerm(alice), P: ir.ConstTerm(knows), O: ir.VarTerm("y")},
			{S: ir.VarTerm("y"), P: ir.ConstTerm(likes), O: ir.ConstTerm(cake)},
		},
	}
	table := runQuery(t, ts, fs, e, q)
	require.Len(t, table.Rows, 1)
	require.Equal(t, bob, table.Rows[0][0])
}

func TestRun_TwoUnionBlocksBothContributeRows(t *testing.T) {
	ts, fs, e := newFixture(t)
	typeRole := ts.InternName("type")
	name := ts.InternName("name")
	person := ts.InternName("Person")
	org := ts.InternName("Org")
	alice := ts.InternName("alice")
	acme := ts.InternName("acme")
	aliceLit := ts.InternLiteral("Alice", "xsd:string")
	acmeLit := ts.InternLiteral("Acme", "xsd:string")

	fs.Assert(facts.Triple{Subject: alice, Predicate: typeRole, Object: person}, "t")
	fs.Assert(facts.Triple{Subject: alice, Predicate: name, Object: aliceLit}, "t")
	fs.Assert(facts.Triple{Subject: acme, Predicate: typeRole, Object: org}, "t")
	fs.Assert(facts.Triple{Subject: acme, Predicate: name, Object: acmeLit}, "t")

	// Two independent UNION blocks: one picking the entity's kind, one
	// picking its display name. Neither block should be able to
	// short-circuit the other — every row needs a binding for both x and
	// label.
	q := &ir.Query{
		Select: []ir.Var{"x", "label"},
		Unions: []ir.UnionBlock{
			{Branches: [][]ir.Pattern{
				{{S: ir.VarTerm("x"), P: ir.ConstTerm(typeRole), O: ir.ConstTerm(person)}},
				{{S: ir.VarTerm("x"), P: ir.ConstTerm(typeRole), O: ir.ConstTerm(org)}},
			}},
			{Branches: [][]ir.Pattern{
				{{S: ir.VarTerm("x"), P: ir.ConstTerm(name), O: ir.VarTerm("label")}},
			}},
		},
	}
	table := runQuery(t, ts, fs, e, q)
	require.Len(t, table.Rows, 2, "both the Person and the Org row must survive joining the two union blocks")
	assert := idSet(table.Rows, 0)
	require.ElementsMatch(t, []term.ID{alice, acme}, assert)
}

func TestRun_MinusExcludesMatchingBinding(t *testing.T) {
	ts, fs, e := newFixture(t)
	typeRole := ts.InternName("type")
	person := ts.InternName("Person")
	banned := ts.InternName("banned")
	alice := ts.InternName("alice")
	bob := ts.InternName("bob")

	fs.Assert(facts.Triple{Subject: alice, Predicate: typeRole, Object: person}, "t")
	fs.Assert(facts.Triple{Subject: bob, Predicate: typeRole, Object: person}, "t")
	fs.Assert(facts.Triple{Subject: bob, Predicate: typeRole, Object: banned}, "t")

	q := &ir.Query{
		Select:   []ir.Var{"x"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(typeRole), O: ir.ConstTerm(person)}},
		Minuses: []ir.MinusBlock{{Patterns: []ir.Pattern{
			{S: ir.VarTerm("x"), P: ir.ConstTerm(typeRole), O: ir.ConstTerm(banned)},
		}}},
	}
	table := runQuery(t, ts, fs, e, q)
	require.Len(t, table.Rows, 1)
	require.Equal(t, alice, table.Rows[0][0])
}

func TestRun_FilterDropsRowsFailingBuiltin(t *testing.T) {
	ts, fs, e := newFixture(t)
	age := ts.InternName("age")
	alice := ts.InternName("alice")
	bob := ts.InternName("bob")
	fs.Assert(facts.Triple{Subject: alice, Predicate: age, Object: ts.InternLiteral("30", "xsd:integer")}, "t")
	fs.Assert(facts.Triple{Subject: bob, Predicate: age, Object: ts.InternLiteral("10", "xsd:integer")}, "t")

	threshold := ts.InternLiteral("18", "xsd:integer")
	q := &ir.Query{
		Select:   []ir.Var{"x"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(age), O: ir.VarTerm("a")}},
		Filters:  []ir.Expr{ir.CallExpr("greaterThan", ir.VarExpr("a"), ir.ConstExpr(threshold))},
	}
	table := runQuery(t, ts, fs, e, q)
	require.Len(t, table.Rows, 1)
	require.Equal(t, alice, table.Rows[0][0])
}

func TestRun_DistinctOrderByLimitOffset(t *testing.T) {
	ts, fs, e := newFixture(t)
	age := ts.InternName("age")
	a, b, c := ts.InternName("a"), ts.InternName("b"), ts.InternName("c")
	fs.Assert(facts.Triple{Subject: a, Predicate: age, Object: ts.InternLiteral("5", "xsd:integer")}, "t")
	fs.Assert(facts.Triple{Subject: b, Predicate: age, Object: ts.InternLiteral("1", "xsd:integer")}, "t")
	fs.Assert(facts.Triple{Subject: c, Predicate: age, Object: ts.InternLiteral("9", "xsd:integer")}, "t")

	lim := 2
	off := 1
	q := &ir.Query{
		Select:   []ir.Var{"x"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(age), O: ir.VarTerm("a")}},
		OrderBy:  []ir.OrderKey{{Var: "a"}},
		Limit:    &lim,
		Offset:   &off,
	}
	table := runQuery(t, ts, fs, e, q)
	require.Len(t, table.Rows, 2)
	require.Equal(t, a, table.Rows[0][0])
	require.Equal(t, c, table.Rows[1][0])
}

func TestRun_Ask(t *testing.T) {
	ts, fs, e := newFixture(t)
	knows := ts.InternName("knows")
	alice := ts.InternName("alice")
	bob := ts.InternName("bob")
	fs.Assert(facts.Triple{Subject: alice, Predicate: knows, Object: bob}, "t")

	yes := runQuery(t, ts, fs, e, &ir.Query{Ask: true, Patterns: []ir.Pattern{{S: ir.ConstTerm(alice), P: ir.ConstTerm(knows), O: ir.ConstTerm(bob)}}})
	require.Len(t, yes.Rows, 1)

	no := runQuery(t, ts, fs, e, &ir.Query{Ask: true, Patterns: []ir.Pattern{{S: ir.ConstTerm(bob), P: ir.ConstTerm(knows), O: ir.ConstTerm(alice)}}})
	require.Empty(t, no.Rows)
}

func TestTraverse_BoundedBreadthFirstByEdgeDepth(t *testing.T) {
	ts := term.NewStore()
	a, b, c, d, f, g := ts.InternName("A"), ts.InternName("B"), ts.InternName("C"), ts.InternName("D"), ts.InternName("F"), ts.InternName("G")
	edges := &Table{Vars: []ir.Var{"s", "o"}, Rows: [][]term.ID{
		{a, b}, {b, c}, {b, d}, {ts.InternName("E"), f}, {f, g},
	}}
	e := &Engine{Terms: ts}

	reached := e.Traverse(edges, a, 2)
	require.ElementsMatch(t, [][]term.ID{{a, b}, {b, c}, {b, d}}, reached.Rows)

	none := e.Traverse(edges, ts.InternName("NONEXISTENT"), 2)
	require.Empty(t, none.Rows)

	zero := e.Traverse(edges, a, 0)
	require.Empty(t, zero.Rows)
}
