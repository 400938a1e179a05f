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
	"errors"

	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/rete"
	"github.com/reter-go/reter/term"
)

type pendingDelta struct {
	triple facts.Triple
	id     facts.TripleID
}

type classPair struct{ a, b term.ID }

// Driver wires the Term Store, Fact Store, RETE Network and Axiom
// Compiler together and owns the two operations that must see the whole
// picture: loading a batch of axioms to a fixed point, and retracting a
// source tag with its full cascade.
type Driver struct {
	terms    *term.Store
	facts    *facts.Store
	network  *rete.Network
	compiler *axiom.Compiler
	sameAs   *facts.SameAsIndex

	pending []pendingDelta

	disjointClasses []classPair
	irreflexive     map[term.ID]bool
	asymmetric      map[term.ID]bool

	// classEdges records every Sub ⊑ Super pair between two Atomic
	// concepts seen in a SubClassOf or EquivClasses axiom. The subsumption
	// relation itself isn't asserted as a triple (only the productions
	// that derive instance membership are), so this is the only place the
	// class hierarchy survives for reasoner.SubsumersOf/SubsumedBy to walk.
	classEdges []classPair
}

// New returns a Driver over the given Term Store, Fact Store and
// Network, with its own Axiom Compiler.
func New(terms *term.Store, store *facts.Store, network *rete.Network) *Driver {
	d := &Driver{
		terms:       terms,
		facts:       store,
		network:     network,
		sameAs:      facts.NewSameAsIndex(),
		irreflexive: make(map[term.ID]bool),
		asymmetric:  make(map[term.ID]bool),
	}
	d.compiler = axiom.NewCompiler(terms, store, network)
	d.compiler.SetOnAssert(func(tr facts.Triple, id facts.TripleID) {
		d.pending = append(d.pending, pendingDelta{triple: tr, id: id})
	})
	return d
}

// LoadAxioms compiles every axiom in order. An axiom the Compiler rejects
// as outside the supported profile is skipped (recorded as a NonRLAxiom
// Event) rather than aborting the whole batch. Once every axiom has been
// compiled, every ground fact newly asserted along the way is dispatched
// into the network and the network is pumped to quiescence, and the
// resulting fact base is checked for the inconsistencies this driver
// tracks.
func (d *Driver) LoadAxioms(axioms []axiom.Axiom) []Event {
	var events []Event
	for _, ax := range axioms {
		d.noteConsistencyAxiom(ax)
		if err := d.compiler.Compile(ax); err != nil {
			var warn *axiom.NonRLAxiomWarning
			msg := err.Error()
			if errors.As(err, &warn) {
				msg = warn.Error()
			}
			events = append(events, Event{Kind: NonRLAxiom, Message: msg, Axiom: ax})
		}
	}
	d.drainPending()
	events = append(events, d.CheckConsistency()...)
	return events
}

// Assert records a single ground fact outside of axiom loading (the
// reasoner's direct host-facing Assert operation) and propagates it
// through the network.
func (d *Driver) Assert(tr facts.Triple, source facts.SourceTag) {
	res := d.facts.Assert(tr, source)
	if res.Added {
		d.network.Dispatch(rete.Insert, tr, res.ID)
	}
}

func (d *Driver) drainPending() {
	for len(d.pending) > 0 {
		batch := d.pending
		d.pending = nil
		for _, p := range batch {
			d.network.Dispatch(rete.Insert, p.triple, p.id)
		}
	}
}

func (d *Driver) noteConsistencyAxiom(ax axiom.Axiom) {
	switch a := ax.(type) {
	case axiom.DisjointClasses:
		na, okA := atomicName(a.A)
		nb, okB := atomicName(a.B)
		if okA && okB {
			d.disjointClasses = append(d.disjointClasses, classPair{na, nb})
		}
	case axiom.IrreflexiveRole:
		d.irreflexive[a.Role] = true
	case axiom.AsymmetricRole:
		d.asymmetric[a.Role] = true
	case axiom.SubClassOf:
		d.noteClassEdge(a.Sub, a.Super)
	case axiom.EquivClasses:
		d.noteClassEdge(a.A, a.B)
		d.noteClassEdge(a.B, a.A)
	}
}

func (d *Driver) noteClassEdge(sub, super axiom.ConceptExpr) {
	ns, okS := atomicName(sub)
	nd, okD := atomicName(super)
	if okS && okD {
		d.classEdges = append(d.classEdges, classPair{ns, nd})
	}
}

// ClassEdges returns every Sub ⊑ Super pair recorded between two Atomic
// concepts, for reasoner.SubsumersOf/SubsumedBy to walk as a graph.
func (d *Driver) ClassEdges() []struct{ Sub, Super term.ID } {
	out := make([]struct{ Sub, Super term.ID }, len(d.classEdges))
	for i, p := range d.classEdges {
		out[i] = struct{ Sub, Super term.ID }{p.a, p.b}
	}
	return out
}

func atomicName(expr axiom.ConceptExpr) (term.ID, bool) {
	a, ok := expr.(axiom.Atomic)
	if !ok {
		return term.Zero, false
	}
	return a.Name, true
}

// RetractSource undoes every ground assertion tagged with source, and
// every production (DL axiom or SWRL rule) compiled from that source,
// letting the Fact Store's counting-based invalidation cascade through
// whatever else depended on either. It propagates the resulting removals
// back through the network so any derived triple that's no longer
// justified is retracted in turn.
func (d *Driver) RetractSource(source facts.SourceTag) facts.RetractReport {
	report := d.facts.RetractSource(source)
	for i, tr := range report.Dead {
		d.network.Dispatch(rete.Remove, tr, report.DeadIDs[i])
	}
	if d.network.RetractProductions(source) > 0 {
		report.Found = true
	}
	return report
}

// CheckConsistency scans the live fact base for the inconsistencies this
// driver tracks: an individual related to itself by an Irreflexive role,
// a role relating a pair in both directions when it's Asymmetric, and an
// instance typed into two classes declared DisjointClasses.
func (d *Driver) CheckConsistency() []Event {
	var events []Event
	typeRole := d.terms.InternName(term.NameType)

	for role := range d.irreflexive {
		r := role
		for _, tr := range d.facts.Select(facts.Pattern{Predicate: &r}) {
			if tr.Subject == tr.Object {
				events = append(events, Event{
					Kind:    InconsistentOntology,
					Message: "irreflexive role relates an individual to itself",
					A:       tr.Subject, B: tr.Subject,
				})
			}
		}
	}

	for role := range d.asymmetric {
		r := role
		for _, tr := range d.facts.Select(facts.Pattern{Predicate: &r}) {
			if _, ok := d.facts.IDOf(facts.Triple{Subject: tr.Object, Predicate: role, Object: tr.Subject}); ok {
				events = append(events, Event{
					Kind:    InconsistentOntology,
					Message: "asymmetric role relates a pair in both directions",
					A:       tr.Subject, B: tr.Object,
				})
			}
		}
	}

	for _, pair := range d.disjointClasses {
		a, b := pair.a, pair.b
		for _, tr := range d.facts.Select(facts.Pattern{Predicate: &typeRole, Object: &a}) {
			if _, ok := d.facts.IDOf(facts.Triple{Subject: tr.Subject, Predicate: typeRole, Object: b}); ok {
				events = append(events, Event{
					Kind:    InconsistentOntology,
					Message: "instance belongs to two disjoint classes",
					A:       pair.a, B: pair.b,
				})
			}
		}
	}

	events = append(events, d.checkSameAsConflicts()...)
	return events
}

// checkSameAsConflicts folds every live owl:sameAs triple into the
// equivalence index, then flags any pair also related by
// owl:differentFrom — the one inconsistency this profile can detect
// without a full tableau reasoner.
func (d *Driver) checkSameAsConflicts() []Event {
	sameAs := d.terms.InternName(term.NameSameAs)
	differentFrom := d.terms.InternName(term.NameDifferentFrom)

	for _, tr := range d.facts.Select(facts.Pattern{Predicate: &sameAs}) {
		d.sameAs.Merge(tr.Subject, tr.Object)
	}

	var events []Event
	for _, tr := range d.facts.Select(facts.Pattern{Predicate: &differentFrom}) {
		if d.sameAs.SameClass(tr.Subject, tr.Object) {
			events = append(events, Event{
				Kind:    InconsistentOntology,
				Message: "individuals are related by both sameAs and differentFrom",
				A:       tr.Subject, B: tr.Object,
			})
		}
	}
	return events
}
