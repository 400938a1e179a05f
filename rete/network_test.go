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

package rete

import (
	"testing"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHarness() (*term.Store, *facts.Store, *Network) {
	ts := term.NewStore()
	fs := facts.New()
	return ts, fs, New(fs, ts)
}

func assertTriple(fs *facts.Store, tr facts.Triple) facts.TripleID {
	res := fs.Assert(tr, "test")
	return res.ID
}

// TestCompile_SharesAlphaNodeAcrossProductions verifies that two
// productions whose LHS patterns pin the same predicate to the same
// constant resolve to a single shared AlphaNode rather than one each.
func TestCompile_SharesAlphaNodeAcrossProductions(t *testing.T) {
	ts, _, net := newHarness()
	typeRole := ts.InternName(term.NameType)
	person := ts.InternName("Person")
	animal := ts.InternName("Animal")
	mammal := ts.InternName("Mammal")

	pat := Pattern{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(person)}
	net.Compile(&Production{
		LHS: []Pattern{pat},
		RHS: []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(animal)}},
		NumVars: 1,
	})
	net.Compile(&Production{
		LHS: []Pattern{pat},
		RHS: []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(mammal)}},
		NumVars: 1,
	})

	stats := net.Stats()
	assert.Equal(t, 1, stats.AlphaNodes, "identical LHS shapes should share one AlphaNode")
	assert.Equal(t, 2, stats.SharedAlphaTaps, "each production still gets its own tap on the shared node")
}

// TestDispatch_PropagatesThroughJoinToTerminal exercises a two-antecedent
// production (a property chain) end to end: asserting both legs derives
// the composed edge.
func TestDispatch_PropagatesThroughJoinToTerminal(t *testing.T) {
	ts, fs, net := newHarness()
	hasPart := ts.InternName("hasPart")
	x, y, z := ts.InternName("X"), ts.InternName("Y"), ts.InternName("Z")

	net.Compile(&Production{
		LHS: []Pattern{
			{S: VarSlotOf(0), P: ConstSlot(hasPart), O: VarSlotOf(1)},
			{S: VarSlotOf(1), P: ConstSlot(hasPart), O: VarSlotOf(2)},
		},
		RHS:     []Pattern{{S: VarSlotOf(0), P: ConstSlot(hasPart), O: VarSlotOf(2)}},
		NumVars: 3,
	})

	xy := facts.Triple{Subject: x, Predicate: hasPart, Object: y}
	yz := facts.Triple{Subject: y, Predicate: hasPart, Object: z}
	net.Dispatch(Insert, xy, assertTriple(fs, xy))
	net.Dispatch(Insert, yz, assertTriple(fs, yz))

	_, ok := fs.IDOf(facts.Triple{Subject: x, Predicate: hasPart, Object: z})
	assert.True(t, ok, "X hasPart Z should be derived by the chain")
}

// TestRetractProductions_UndoesDerivedFact verifies that retracting a
// production's source tag removes whatever it alone derived, without
// needing to retract the underlying asserted facts.
func TestRetractProductions_UndoesDerivedFact(t *testing.T) {
	ts, fs, net := newHarness()
	typeRole := ts.InternName(term.NameType)
	person := ts.InternName("Person")
	animal := ts.InternName("Animal")
	alice := ts.InternName("Alice")

	net.Compile(&Production{
		LHS:       []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(person)}},
		RHS:       []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(animal)}},
		NumVars:   1,
		SourceTag: "rule-tag",
	})

	aliceType := facts.Triple{Subject: alice, Predicate: typeRole, Object: person}
	net.Dispatch(Insert, aliceType, assertTriple(fs, aliceType))

	_, ok := fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	require.True(t, ok, "Alice should be classified an Animal")

	removed := net.RetractProductions("rule-tag")
	assert.Equal(t, 1, removed)

	_, ok = fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	assert.False(t, ok, "retracting the rule's source should undo its sole derivation")
	_, ok = fs.IDOf(aliceType)
	assert.True(t, ok, "the underlying asserted fact is untouched by retracting the rule")

	assert.Equal(t, 0, net.Stats().Productions)
}

// TestRetractProductions_LeavesSharedFactIntact checks that a fact
// derived by two different rules (one retracted, one not) survives on
// the surviving rule's justification.
func TestRetractProductions_LeavesSharedFactIntact(t *testing.T) {
	ts, fs, net := newHarness()
	typeRole := ts.InternName(term.NameType)
	cat := ts.InternName("Cat")
	tabby := ts.InternName("Tabby")
	animal := ts.InternName("Animal")
	alice := ts.InternName("Alice")

	net.Compile(&Production{
		LHS:       []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(cat)}},
		RHS:       []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(animal)}},
		NumVars:   1,
		SourceTag: "rule-a",
	})
	net.Compile(&Production{
		LHS:       []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(tabby)}},
		RHS:       []Pattern{{S: VarSlotOf(0), P: ConstSlot(typeRole), O: ConstSlot(animal)}},
		NumVars:   1,
		SourceTag: "rule-b",
	})

	t1 := facts.Triple{Subject: alice, Predicate: typeRole, Object: cat}
	t2 := facts.Triple{Subject: alice, Predicate: typeRole, Object: tabby}
	net.Dispatch(Insert, t1, assertTriple(fs, t1))
	net.Dispatch(Insert, t2, assertTriple(fs, t2))

	net.RetractProductions("rule-a")

	_, ok := fs.IDOf(facts.Triple{Subject: alice, Predicate: typeRole, Object: animal})
	assert.True(t, ok, "rule-b's justification should keep Animal membership alive")
}
