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
	"testing"

	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/infer"
	"github.com/reter-go/reter/internal/testutil"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasoner_LoadAxiomsThenAssert_SubsumptionDerivesAcrossBoth(t *testing.T) {
	r := New()
	terms := testutil.Terms{Store: termsOf(r)}

	events := r.LoadAxioms([]axiom.Axiom{
		terms.SubClassOf("onto", "Person", "Animal"),
		terms.ClassAssertion("data", "alice", "Person"),
	})
	assert.Empty(t, events)

	table, err := r.Select(&ir.Query{
		Select:   []ir.Var{"x"},
		Patterns: []ir.Pattern{{S: ir.VarTerm("x"), P: ir.ConstTerm(terms.ID(term.NameType)), O: ir.ConstTerm(terms.ID("Animal"))}},
	})
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, terms.ID("alice"), table.Rows[0][0])
}

func TestReasoner_RetractSource_RemovesDerivedFact(t *testing.T) {
	r := New()
	terms := testutil.Terms{Store: termsOf(r)}

	r.LoadAxioms([]axiom.Axiom{
		terms.SubClassOf("onto", "Person", "Animal"),
		terms.ClassAssertion("batch-1", "alice", "Person"),
	})

	ask := func() bool {
		ok, err := r.Ask(&ir.Query{Ask: true, Patterns: []ir.Pattern{
			{S: ir.ConstTerm(terms.ID("alice")), P: ir.ConstTerm(terms.ID(term.NameType)), O: ir.ConstTerm(terms.ID("Animal"))},
		}})
		require.NoError(t, err)
		return ok
	}
	require.True(t, ask(), "alice should be derived an Animal before retraction")

	r.RetractSource("batch-1")
	assert.False(t, ask(), "retracting the source of the ClassAssertion should cascade to the derived fact")
}

func TestReasoner_Describe_ListsTriplesAsSubjectAndObject(t *testing.T) {
	r := New()
	terms := testutil.Terms{Store: termsOf(r)}
	alice := terms.ID("alice")
	bob := terms.ID("bob")
	knows := terms.ID("knows")

	r.Assert(facts.Triple{Subject: alice, Predicate: knows, Object: bob}, "t")
	r.Assert(facts.Triple{Subject: bob, Predicate: knows, Object: alice}, "t")

	table := r.Describe(alice)
	require.Len(t, table.Rows, 2)
}

func TestReasoner_InstancesOf_ConjunctionOfAtomicAndSome(t *testing.T) {
	r := New()
	terms := testutil.Terms{Store: termsOf(r)}
	person := terms.Class("Person")
	worksAt := terms.ID("worksAt")
	acme := terms.ID("Acme")

	r.LoadAxioms([]axiom.Axiom{
		terms.ClassAssertion("data", "alice", "Person"),
		terms.ClassAssertion("data", "Acme", "Company"),
	})
	r.Assert(facts.Triple{Subject: terms.ID("alice"), Predicate: worksAt, Object: acme}, "data")
	r.Assert(facts.Triple{Subject: terms.ID("bob"), Predicate: worksAt, Object: acme}, "data")

	expr := axiom.And{Left: person, Right: axiom.Some{Role: worksAt, Of: terms.Class("Company")}}
	table, err := r.InstancesOf(expr)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1, "only alice is both a Person and works at Acme")
	assert.Equal(t, terms.ID("alice"), table.Rows[0][0])
}

func TestReasoner_InstancesOf_RejectsUnsupportedShape(t *testing.T) {
	r := New()
	_, err := r.InstancesOf(axiom.Not{Of: axiom.Top{}})
	assert.Error(t, err)
}

func TestReasoner_SubsumersOf_WalksTransitiveHierarchy(t *testing.T) {
	r := New()
	terms := testutil.Terms{Store: termsOf(r)}
	r.LoadAxioms([]axiom.Axiom{
		terms.SubClassOf("onto", "Postcard", "Stationary"),
		terms.SubClassOf("onto", "Stationary", "Product"),
	})

	supers := r.SubsumersOf(terms.ID("Postcard"))
	assert.ElementsMatch(t, []term.ID{terms.ID("Stationary"), terms.ID("Product")}, supers)

	subs := r.SubsumedBy(terms.ID("Product"))
	assert.ElementsMatch(t, []term.ID{terms.ID("Stationary"), terms.ID("Postcard")}, subs)
}

func TestReasoner_WithSWRLDisabled_RejectsSwrlRuleAsEvent(t *testing.T) {
	r := New(WithSWRL(false))
	terms := testutil.Terms{Store: termsOf(r)}
	x := axiom.SwrlTerm{IsVar: true, Var: "x"}
	rule := axiom.SwrlRule{
		Body: []axiom.SwrlAtom{{Class: terms.Class("Person"), Args: []axiom.SwrlTerm{x}}},
		Head: []axiom.SwrlAtom{{Class: terms.Class("Animal"), Args: []axiom.SwrlTerm{x}}},
	}
	events := r.LoadAxioms([]axiom.Axiom{rule})
	require.Len(t, events, 1)
	assert.Equal(t, infer.NonRLAxiom, events[0].Kind)
}

func TestReasoner_MultipleInstancesDoNotShareState(t *testing.T) {
	r1 := New()
	r2 := New()
	t1 := testutil.Terms{Store: termsOf(r1)}
	t2 := testutil.Terms{Store: termsOf(r2)}

	r1.Assert(facts.Triple{Subject: t1.ID("a"), Predicate: t1.ID("p"), Object: t1.ID("b")}, "t")

	ok, err := r2.Ask(&ir.Query{Ask: true, Patterns: []ir.Pattern{
		{S: ir.ConstTerm(t2.ID("a")), P: ir.ConstTerm(t2.ID("p")), O: ir.ConstTerm(t2.ID("b"))},
	}})
	require.NoError(t, err)
	assert.False(t, ok, "a second Reasoner must not see the first one's facts")
}

// termsOf exposes the private term.Store a Reasoner owns, for tests that
// need to intern the same names the Reasoner will resolve queries
// against.
func termsOf(r *Reasoner) *term.Store {
	return r.terms
}
