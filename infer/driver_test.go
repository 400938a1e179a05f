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

package infer

import (
	"testing"

	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/rete"
	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver() (*term.Store, *facts.Store, *Driver) {
	ts := term.NewStore()
	fs := facts.New()
	net := rete.New(fs, ts)
	return ts, fs, New(ts, fs, net)
}

func TestDriver_LoadAxioms_SubsumptionFires(t *testing.T) {
	ts, fs, d := newDriver()
	person := ts.InternName("Person")
	animal := ts.InternName("Animal")
	alice := ts.InternName("Alice")

	events := d.LoadAxioms([]axiom.Axiom{
		axiom.SubClassOf{Sub: axiom.Atomic{Name: person}, Super: axiom.Atomic{Name: animal}},
		axiom.ClassAssertion{Individual: alice, Class: axiom.Atomic{Name: person}},
	})
	assert.Empty(t, events)

	typeRole := ts.InternName(term.NameType)
	_, ok := fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	assert.True(t, ok, "Alice should be derived an Animal")
}

func TestDriver_LoadAxioms_OutOfOrderRuleThenData(t *testing.T) {
	ts, fs, d := newDriver()
	person := ts.InternName("Person")
	animal := ts.InternName("Animal")
	alice := ts.InternName("Alice")
	typeRole := ts.InternName(term.NameType)

	// Data loaded before the rule that should classify it.
	d.LoadAxioms([]axiom.Axiom{
		axiom.ClassAssertion{Individual: alice, Class: axiom.Atomic{Name: person}},
	})
	_, ok := fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	assert.False(t, ok, "nothing should classify Alice as an Animal yet")

	d.LoadAxioms([]axiom.Axiom{
		axiom.SubClassOf{Sub: axiom.Atomic{Name: person}, Super: axiom.Atomic{Name: animal}},
	})
	_, ok = fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	assert.True(t, ok, "compiling the rule later should seed against the already-loaded fact")
}

func TestDriver_RetractSource_CascadesDerivedTriple(t *testing.T) {
	ts, fs, d := newDriver()
	person := ts.InternName("Person")
	animal := ts.InternName("Animal")
	alice := ts.InternName("Alice")
	typeRole := ts.InternName(term.NameType)

	d.LoadAxioms([]axiom.Axiom{
		axiom.SubClassOf{Sub: axiom.Atomic{Name: person}, Super: axiom.Atomic{Name: animal}},
	})
	ca := axiom.ClassAssertion{Individual: alice, Class: axiom.Atomic{Name: person}}
	ca.Source = "batch-1"
	d.LoadAxioms([]axiom.Axiom{ca})

	_, ok := fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	require.True(t, ok)

	report := d.RetractSource("batch-1")
	assert.True(t, report.Found)

	_, ok = fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: person})
	assert.False(t, ok, "the asserted fact should be gone")
	_, ok = fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	assert.False(t, ok, "the derived fact should cascade away once its only justification is gone")
}

func TestDriver_CheckConsistency_FlagsDisjointClasses(t *testing.T) {
	ts, _, d := newDriver()
	cat := ts.InternName("Cat")
	dog := ts.InternName("Dog")
	rex := ts.InternName("Rex")

	events := d.LoadAxioms([]axiom.Axiom{
		axiom.DisjointClasses{A: axiom.Atomic{Name: cat}, B: axiom.Atomic{Name: dog}},
		axiom.ClassAssertion{Individual: rex, Class: axiom.Atomic{Name: cat}},
		axiom.ClassAssertion{Individual: rex, Class: axiom.Atomic{Name: dog}},
	})

	var found bool
	for _, e := range events {
		if e.Kind == InconsistentOntology {
			found = true
		}
	}
	assert.True(t, found, "instance of two disjoint classes should be flagged")
}
