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

package plan

import (
	"testing"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/reasonerrors"
	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_OrdersPatternsByMostBoundFirst(t *testing.T) {
	ts := term.NewStore()
	fs := facts.New()
	typeRole := ts.InternName("type")
	worksAt := ts.InternName("worksAt")

	// First pattern binds nothing new beyond "x"; second joins on "x"
	// (bound by the first) and adds "y" — should be
	// ordered after the first since it shares a variable with it.
	q := &ir.Query{
		Select: []ir.Var{"x"},
		Patterns: []ir.Pattern{
			{S: ir.VarTerm("x"), P: ir.ConstTerm(typeRole), O: ir.ConstTerm(ts.InternName("Person"))},
			{S: ir.VarTerm("x"), P: ir.ConstTerm(worksAt), O: ir.VarTerm("y")},
		},
	}
	p, err := New(q, fs)
	require.NoError(t, err)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, 0, p.Steps[0].PatternIndex)
	assert.Equal(t, 1, p.Steps[1].PatternIndex)
	assert.NotEmpty(t, p.Steps[1].JoinSlots, "second step should join on the shared slot for x")
}

func TestNew_PushesFilterDownToEarliestBoundStep(t *testing.T) {
	ts := term.NewStore()
	fs := facts.New()
	ageRole := ts.InternName("age")

	q := &ir.Query{
		Select:   []ir.Var{"x"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(ageRole), O: ir.VarTerm("a")}},
		Filters:  []ir.Expr{ir.CallExpr("greaterThan", ir.VarExpr("a"), ir.ConstExpr(ts.InternLiteral("18", "xsd:integer")))},
	}
	p, err := New(q, fs)
	require.NoError(t, err)
	require.Len(t, p.Steps, 1)
	assert.Equal(t, []int{0}, p.Steps[0].FilterIndexes)
	assert.Empty(t, p.TrailingFilters)
}

func TestNew_TrailingFilterWhenVariableComesFromUnion(t *testing.T) {
	ts := term.NewStore()
	fs := facts.New()
	role := ts.InternName("knows")

	q := &ir.Query{
		Select: []ir.Var{"x"},
		Unions: []ir.UnionBlock{{Branches: [][]ir.Pattern{
			{{S: ir.VarTerm("x"), P: ir.ConstTerm(role), O: ir.VarTerm("y")}},
		}}},
		Filters: []ir.Expr{ir.CallExpr("equal", ir.VarExpr("y"), ir.ConstExpr(1))},
	}
	p, err := New(q, fs)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, p.TrailingFilters, "a filter over a union-only variable can't be pushed into the main join")
}

func TestNew_RejectsSelectBoundOnlyInsideMinus(t *testing.T) {
	q := &ir.Query{
		Select: []ir.Var{"y"},
		Minuses: []ir.MinusBlock{{Patterns: []ir.Pattern{
			{S: ir.VarTerm("x"), P: ir.ConstTerm(1), O: ir.VarTerm("y")},
		}}},
	}
	_, err := New(q, facts.New())
	require.Error(t, err)
	var invalid *reasonerrors.InvalidQuery
	assert.ErrorAs(t, err, &invalid)
}

func TestFingerprint_IgnoresConstantValuesAndVariableSpelling(t *testing.T) {
	q1 := &ir.Query{
		Select:   []ir.Var{"x"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(1), O: ir.ConstTerm(2)}},
	}
	q2 := &ir.Query{
		Select:   []ir.Var{"a"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("a"), P: ir.ConstTerm(99), O: ir.ConstTerm(100)}},
	}
	assert.Equal(t, Fingerprint(q1), Fingerprint(q2))
}

func TestFingerprint_DistinguishesDifferentShapes(t *testing.T) {
	q1 := &ir.Query{Select: []ir.Var{"x"}, Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(1), O: ir.ConstTerm(2)}}}
	q2 := &ir.Query{Select: []ir.Var{"x"}, Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.VarTerm("x"), O: ir.ConstTerm(2)}}}
	assert.NotEqual(t, Fingerprint(q1), Fingerprint(q2))
}

func TestCache_ReusesPlanAcrossStructurallyIdenticalQueries(t *testing.T) {
	fs := facts.New()
	c := NewCache()

	q1 := &ir.Query{Select: []ir.Var{"x"}, Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(1), O: ir.ConstTerm(2)}}}
	q2 := &ir.Query{Select: []ir.Var{"x"}, Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(3), O: ir.ConstTerm(4)}}}

	p1, err := c.Get(q1, fs)
	require.NoError(t, err)
	p2, err := c.Get(q2, fs)
	require.NoError(t, err)
	assert.Same(t, p1, p2, "same shape, different constants, should hit the same cached Plan")
}
