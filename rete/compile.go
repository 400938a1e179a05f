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

// Compile wires a Production into the network: one alpha tap per LHS
// pattern (sharing AlphaNodes across productions wherever two patterns
// have the same constant-slot shape), a left-deep chain of BetaNodes
// joining on whatever variables each new pattern shares with everything
// already joined, the production's builtin chain, and a TerminalNode.
//
// A production compiled after facts already exist is seeded against the
// current matching set of every alpha node it touches, so a rule added
// mid-session (for example by a newly loaded SWRL rule) fires against
// data that was already there rather than only against future deltas.
func (n *Network) Compile(p *Production) {
	p.ID = len(n.productions)
	n.productions = append(n.productions, p)

	terminal := &TerminalNode{production: p}
	var tail chainLink = terminal
	if len(p.Builtins) > 0 {
		tail = &BuiltinNode{calls: p.Builtins, fns: n.builtins, terms: n.terms, next: terminal}
	}

	if len(p.LHS) == 0 {
		p.terminal = terminal
		return
	}

	bound := map[VarSlot]bool{}

	firstPat := p.LHS[0]
	firstAlpha := n.getOrCreateAlpha(firstPat)
	firstTap := &alphaTap{numVars: p.NumVars, slotVar: slotMappings(firstPat), owner: p}
	markBound(bound, firstPat)

	p.terminal = terminal
	p.alphas = append(p.alphas, firstAlpha)
	p.taps = append(p.taps, firstTap)

	var pendingBeta *BetaNode
	for i := 1; i < len(p.LHS); i++ {
		pat := p.LHS[i]
		beta := newBetaNode(sharedVars(bound, pat))
		n.betaNodes++

		if i == 1 {
			firstTap.next = leftAdapter{beta}
		} else {
			pendingBeta.next = leftAdapter{beta}
		}

		alpha := n.getOrCreateAlpha(pat)
		tap := &alphaTap{numVars: p.NumVars, slotVar: slotMappings(pat), owner: p}
		tap.next = rightAdapter{beta}
		alpha.taps = append(alpha.taps, tap)
		alpha.seed(n, tap)
		p.alphas = append(p.alphas, alpha)
		p.taps = append(p.taps, tap)

		markBound(bound, pat)
		pendingBeta = beta
	}

	if pendingBeta != nil {
		pendingBeta.next = tail
	} else {
		firstTap.next = tail
	}

	firstAlpha.taps = append(firstAlpha.taps, firstTap)
	firstAlpha.seed(n, firstTap)

	n.Pump()
}

func slotMappings(p Pattern) [3]mapping {
	return [3]mapping{varMapping(p.S), varMapping(p.P), varMapping(p.O)}
}

func markBound(bound map[VarSlot]bool, p Pattern) {
	for _, s := range [3]Slot{p.S, p.P, p.O} {
		if s.IsVar {
			bound[s.Var] = true
		}
	}
}

// sharedVars returns, in a stable order, the variables of pat that are
// already present in bound — the join key a new pattern's alpha tap must
// match against everything already joined on the left.
func sharedVars(bound map[VarSlot]bool, pat Pattern) []VarSlot {
	var out []VarSlot
	seen := map[VarSlot]bool{}
	for _, s := range [3]Slot{pat.S, pat.P, pat.O} {
		if s.IsVar && bound[s.Var] && !seen[s.Var] {
			out = append(out, s.Var)
			seen[s.Var] = true
		}
	}
	return out
}
