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
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/term"
)

// alphaTap maps one shared AlphaNode's matches into a single Production's
// local variable numbering. An AlphaNode may carry many taps, one per
// (production, LHS position) pair that references its pattern shape.
type alphaTap struct {
	slotVar [3]mapping // S, P, O
	numVars int
	next    chainLink
	// owner is the production this tap was compiled for, so retracting
	// that production's source can pull just this tap back out of the
	// AlphaNode without disturbing taps other productions share it with.
	owner *Production
}

// mapping describes how one pattern slot feeds a production-local token:
// either it's a constant (already filtered by the AlphaNode, nothing to
// record) or it binds a variable.
type mapping struct {
	isVar bool
	v     VarSlot
}

func varMapping(s Slot) mapping {
	if s.IsVar {
		return mapping{isVar: true, v: s.Var}
	}
	return mapping{}
}

// apply extends tok with this tap's variable bindings from a matched
// triple, returning the extended token. tok is never mutated in place —
// siblings of the same alpha match may be fanned out to other taps.
func (a *alphaTap) apply(tok token, tr facts.Triple, id facts.TripleID) token {
	bindings := make([]term.ID, a.numVars)
	copy(bindings, tok.bindings)
	out := token{
		bindings:    bindings,
		antecedents: append(append([]facts.TripleID(nil), tok.antecedents...), id),
	}
	vals := [3]term.ID{tr.Subject, tr.Predicate, tr.Object}
	for i, m := range a.slotVar {
		if m.isVar {
			out.bindings[m.v] = vals[i]
		}
	}
	return out
}

// AlphaNode filters the Fact Store against one pattern shape and fans
// every match out to every tap registered against it, across however many
// productions reference that shape. It is the unit of sharing in the
// network: two LHS patterns from different productions that pin the same
// constant slots to the same values resolve to one AlphaNode.
type AlphaNode struct {
	sh    shape
	tmpl  Pattern // representative pattern used to build facts.Pattern selects
	taps  []*alphaTap
	match map[facts.TripleID]facts.Triple
}

func newAlphaNode(sh shape, tmpl Pattern) *AlphaNode {
	return &AlphaNode{sh: sh, tmpl: tmpl, match: make(map[facts.TripleID]facts.Triple)}
}

func (a *AlphaNode) selectPattern() facts.Pattern {
	var p facts.Pattern
	if a.sh.sConst {
		v := a.sh.sVal
		p.Subject = &v
	}
	if a.sh.pConst {
		v := a.sh.pVal
		p.Predicate = &v
	}
	if a.sh.oConst {
		v := a.sh.oVal
		p.Object = &v
	}
	return p
}

// onFact handles one +/- delta from the Fact Store: if the triple matches
// this node's constant slots, its membership set is updated and every
// tap fans the same-signed delta out to its downstream chain, so an
// insert and its later matching retract walk the identical set of join
// paths.
func (a *AlphaNode) onFact(net *Network, sign Sign, tr facts.Triple, id facts.TripleID) {
	if !a.matches(tr) {
		return
	}
	if sign == Insert {
		a.match[id] = tr
	} else {
		delete(a.match, id)
	}
	for _, tap := range a.taps {
		net.enqueueFromAlpha(tap.next, sign, tap.apply(token{}, tr, id))
	}
}

func (a *AlphaNode) matches(tr facts.Triple) bool {
	if a.sh.sConst && tr.Subject != a.sh.sVal {
		return false
	}
	if a.sh.pConst && tr.Predicate != a.sh.pVal {
		return false
	}
	if a.sh.oConst && tr.Object != a.sh.oVal {
		return false
	}
	return true
}

// seed replays every currently-matching fact through a newly registered
// tap, so a production compiled after data was already loaded still fires
// against the existing fact base.
func (a *AlphaNode) seed(net *Network, tap *alphaTap) {
	for id, tr := range a.match {
		net.enqueueFromAlpha(tap.next, Insert, tap.apply(token{}, tr, id))
	}
}

// removeTap drops every tap belonging to owner from this node, so a
// retracted production stops receiving future deltas through it. Other
// productions sharing the node are unaffected.
func (a *AlphaNode) removeTap(owner *Production) {
	kept := a.taps[:0]
	for _, t := range a.taps {
		if t.owner != owner {
			kept = append(kept, t)
		}
	}
	a.taps = kept
}
