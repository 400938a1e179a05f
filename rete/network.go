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

// event is one unit of work on the Network's propagation queue. Keeping a
// single FIFO of events (rather than recursive calls between nodes) is
// what gives the network breadth-first delta propagation: every fact one
// hop away from the triggering change is processed before anything two
// hops away.
type event interface {
	run(net *Network)
}

type factEvent struct {
	sign   Sign
	triple facts.Triple
	id     facts.TripleID
}

func (e factEvent) run(net *Network) {
	for _, a := range net.alphaNodesFor(e.triple) {
		a.onFact(net, e.sign, e.triple, e.id)
	}
}

type tokenEvent struct {
	link chainLink
	sign Sign
	tok  token
}

func (e tokenEvent) run(net *Network) { e.link.onToken(net, e.sign, e.tok) }

// Stats reports node-sharing counts, useful for diagnosing whether a
// batch of similarly-shaped axioms collapsed onto shared alpha nodes as
// expected.
type Stats struct {
	AlphaNodes   int
	BetaNodes    int
	Productions  int
	SharedAlphaTaps int
}

// Network is the discrimination network for one reasoner instance: a set
// of shared AlphaNodes feeding per-production beta/builtin/terminal
// chains, wired against a single Fact Store.
type Network struct {
	facts    *facts.Store
	terms    *term.Store
	builtins map[string]BuiltinFunc

	alphaByShape map[shape]*AlphaNode
	alphaList    []*AlphaNode
	byPredicate  map[term.ID][]*AlphaNode
	wildcardPred []*AlphaNode

	productions []*Production
	betaNodes   int

	queue []event
}

// New returns an empty Network wired against store and terms, with the
// default SWRL builtin registry.
func New(store *facts.Store, terms *term.Store) *Network {
	return &Network{
		facts:        store,
		terms:        terms,
		builtins:     DefaultBuiltins(),
		alphaByShape: make(map[shape]*AlphaNode),
		byPredicate:  make(map[term.ID][]*AlphaNode),
	}
}

// RegisterBuiltin adds or overrides a builtin in this network's registry.
// Must be called before Compile for any production that references it.
func (n *Network) RegisterBuiltin(name string, fn BuiltinFunc) {
	n.builtins[name] = fn
}

func (n *Network) alphaNodesFor(tr facts.Triple) []*AlphaNode {
	out := append([]*AlphaNode(nil), n.wildcardPred...)
	out = append(out, n.byPredicate[tr.Predicate]...)
	return out
}

func (n *Network) getOrCreateAlpha(p Pattern) *AlphaNode {
	sh := patternShape(p)
	if a, ok := n.alphaByShape[sh]; ok {
		return a
	}
	a := newAlphaNode(sh, p)
	n.alphaByShape[sh] = a
	n.alphaList = append(n.alphaList, a)
	if sh.pConst {
		n.byPredicate[sh.pVal] = append(n.byPredicate[sh.pVal], a)
	} else {
		n.wildcardPred = append(n.wildcardPred, a)
	}
	// Seed this alpha node's membership from the live fact base so a
	// production compiled after data was already loaded sees it.
	for _, tr := range n.facts.Select(a.selectPattern()) {
		id, ok := n.facts.IDOf(tr)
		if ok {
			a.match[id] = tr
		}
	}
	return a
}

func (n *Network) enqueueFromAlpha(next chainLink, sign Sign, tok token) {
	n.queue = append(n.queue, tokenEvent{link: next, sign: sign, tok: tok})
}

func (n *Network) propagate(next chainLink, sign Sign, tok token) {
	if next == nil {
		return
	}
	n.queue = append(n.queue, tokenEvent{link: next, sign: sign, tok: tok})
}

func (n *Network) deriveTriple(tr facts.Triple, just facts.Justification) {
	res := n.facts.Derive(tr, just)
	if res.Added {
		n.queue = append(n.queue, factEvent{sign: Insert, triple: tr, id: res.ID})
	}
}

func (n *Network) retractJustification(tr facts.Triple, just facts.Justification) {
	id, ok := n.facts.IDOf(tr)
	if !ok {
		return
	}
	if n.facts.UndoJustification(id, just) {
		n.queue = append(n.queue, factEvent{sign: Remove, triple: tr, id: id})
	}
}

// Pump drains the event queue to quiescence. It's exported so the
// Inference Driver can run Dispatch calls and Pump separately when it
// needs to interleave diagnostics between rounds.
func (n *Network) Pump() {
	for len(n.queue) > 0 {
		e := n.queue[0]
		n.queue = n.queue[1:]
		e.run(n)
	}
}

// Dispatch injects an external delta (an assertion or a source
// retraction processed by the Fact Store) into the network and runs it
// to quiescence.
func (n *Network) Dispatch(sign Sign, tr facts.Triple, id facts.TripleID) {
	n.queue = append(n.queue, factEvent{sign: sign, triple: tr, id: id})
	n.Pump()
}

// RetractProductions removes every production compiled with the given
// source tag: each of its live tokens is re-fired as a Remove so whatever
// it derived loses that justification (falling out of the Fact Store
// entirely unless some other justification or assertion still supports
// it), its taps are pulled out of whatever AlphaNodes they shared with
// other productions, and it is dropped from the production list. It
// returns the number of productions removed.
func (n *Network) RetractProductions(tag facts.SourceTag) int {
	if tag == "" {
		return 0
	}
	kept := n.productions[:0]
	removed := 0
	for _, p := range n.productions {
		if p.SourceTag != tag {
			kept = append(kept, p)
			continue
		}
		removed++
		if p.terminal != nil {
			live := p.terminal.live
			p.terminal.live = nil
			for _, tok := range live {
				p.terminal.onToken(n, Remove, tok)
			}
		}
		for _, a := range p.alphas {
			a.removeTap(p)
		}
	}
	n.productions = kept
	n.Pump()
	return removed
}

// Stats reports the current size of the network, for diagnosing sharing.
func (n *Network) Stats() Stats {
	taps := 0
	for _, a := range n.alphaList {
		taps += len(a.taps)
	}
	return Stats{
		AlphaNodes:      len(n.alphaList),
		BetaNodes:       n.betaNodes,
		Productions:     len(n.productions),
		SharedAlphaTaps: taps,
	}
}
