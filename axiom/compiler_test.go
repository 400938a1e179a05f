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

package axiom

import (
	"testing"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/rete"
	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarness() (*term.Store, *facts.Store, *rete.Network, *Compiler) {
	ts := term.NewStore()
	fs := facts.New()
	net := rete.New(fs, ts)
	return ts, fs, net, NewCompiler(ts, fs, net)
}

func TestCompile_SubClassOf_DerivesOnAssertion(t *testing.T) {
	ts, fs, net, c := newHarness()
	person := ts.InternName("Person")
	animal := ts.InternName("Animal")
	alice := ts.InternName("Alice")

	typeRole := ts.InternName(term.NameType)

	require.NoError(t, c.Compile(SubClassOf{Sub: Atomic{Name: person}, Super: Atomic{Name: animal}}))
	require.NoError(t, c.Compile(ClassAssertion{Individual: alice, Class: Atomic{Name: person}}))
	personTriple := facts.Triple{Subject: alice, Predicate: typeRole, Object: person}
	net.Dispatch(rete.Insert, personTriple, mustID(t, fs, personTriple))

	res := fs.Select(facts.Pattern{Subject: &alice, Predicate: &typeRole})
	var gotAnimal bool
	for _, tr := range res {
		if tr.Object == animal {
			gotAnimal = true
		}
	}
	assert.True(t, gotAnimal, "Alice should be derived as an Animal")
}

func TestCompile_RoleChain_PropertyComposition(t *testing.T) {
	ts, fs, net, c := newHarness()
	hasPart := ts.InternName("hasPart")
	locatedIn := ts.InternName("locatedIn")
	a, b, d := ts.InternName("a"), ts.InternName("b"), ts.InternName("d")

	require.NoError(t, c.Compile(RoleChain{First: hasPart, Second: locatedIn, Super: locatedIn}))
	c.facts.Assert(facts.Triple{Subject: a, Predicate: hasPart, Object: b}, "x")
	net.Dispatch(rete.Insert, facts.Triple{Subject: a, Predicate: hasPart, Object: b}, mustID(t, fs, facts.Triple{Subject: a, Predicate: hasPart, Object: b}))
	c.facts.Assert(facts.Triple{Subject: b, Predicate: locatedIn, Object: d}, "x")
	net.Dispatch(rete.Insert, facts.Triple{Subject: b, Predicate: locatedIn, Object: d}, mustID(t, fs, facts.Triple{Subject: b, Predicate: locatedIn, Object: d}))

	res := fs.Select(facts.Pattern{Subject: &a, Predicate: &locatedIn})
	var gotD bool
	for _, tr := range res {
		if tr.Object == d {
			gotD = true
		}
	}
	assert.True(t, gotD, "a locatedIn d should be derived via the property chain")
}

func TestCompile_FunctionalRole_DerivesSameAs(t *testing.T) {
	ts, fs, net, c := newHarness()
	hasMother := ts.InternName("hasMother")
	x, m1, m2 := ts.InternName("x"), ts.InternName("m1"), ts.InternName("m2")

	require.NoError(t, c.Compile(FunctionalRole{Role: hasMother}))
	t1 := facts.Triple{Subject: x, Predicate: hasMother, Object: m1}
	c.facts.Assert(t1, "x")
	net.Dispatch(rete.Insert, t1, mustID(t, fs, t1))
	t2 := facts.Triple{Subject: x, Predicate: hasMother, Object: m2}
	c.facts.Assert(t2, "x")
	net.Dispatch(rete.Insert, t2, mustID(t, fs, t2))

	sameAs := ts.InternName(term.NameSameAs)
	res := fs.Select(facts.Pattern{Subject: &m1, Predicate: &sameAs, Object: &m2})
	assert.Len(t, res, 1, "two fillers of a functional role should be derived sameAs")
}

func TestCompile_TransitiveAndCardinality_Rejected(t *testing.T) {
	ts, _, _, c := newHarness()
	hasPart := ts.InternName("hasPart")
	whole := ts.InternName("Whole")

	require.NoError(t, c.Compile(TransitiveRole{Role: hasPart}))
	err := c.Compile(SubClassOf{
		Sub:   Atomic{Name: whole},
		Super: MaxCard{N: 1, Role: hasPart, Of: Top{}},
	})
	require.Error(t, err)
	var warn *NonRLAxiomWarning
	require.ErrorAs(t, err, &warn)
}

func mustID(t *testing.T, fs *facts.Store, tr facts.Triple) facts.TripleID {
	id, ok := fs.IDOf(tr)
	require.True(t, ok)
	return id
}
