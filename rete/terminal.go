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

// BuiltinNode runs a production's ordered builtin chain against each
// token that survives its beta joins. A predicate-style call (Bind ==
// nil) drops the token on failure; a function-style call (Bind != nil)
// extends the token's bindings and always continues.
type BuiltinNode struct {
	calls []BuiltinCall
	fns   map[string]BuiltinFunc
	terms *term.Store
	next  chainLink
}

func (n *BuiltinNode) onToken(net *Network, sign Sign, tok token) {
	for _, call := range n.calls {
		args := make([]term.ID, len(call.Args))
		for i, s := range call.Args {
			args[i] = resolveSlot(s, tok)
		}
		fn, ok := n.fns[call.Name]
		if !ok {
			return
		}
		result, ok := fn(n.terms, args)
		if !ok {
			return
		}
		if call.Bind != nil {
			tok.bindings[*call.Bind] = result
		}
	}
	net.propagate(n.next, sign, tok)
}

func resolveSlot(s Slot, tok token) term.ID {
	if s.IsVar {
		return tok.bindings[s.Var]
	}
	return s.Const
}

// TerminalNode instantiates a production's RHS templates against a
// surviving token and derives the resulting triples into the Fact Store,
// justified by the token's antecedent TripleIDs. It keeps the set of
// tokens currently contributing a derivation so Network.RetractProductions
// can unwind every one of them when this production's source is retracted.
type TerminalNode struct {
	production *Production
	live       []token
}

func (n *TerminalNode) onToken(net *Network, sign Sign, tok token) {
	just := tok.justification()
	for _, rhs := range n.production.RHS {
		triple := instantiate(rhs, tok)
		if sign == Insert {
			net.deriveTriple(triple, just)
		} else {
			net.retractJustification(triple, just)
		}
	}
	if sign == Insert {
		n.live = append(n.live, tok)
	} else {
		n.live = removeToken(n.live, tok)
	}
}

func removeToken(live []token, tok token) []token {
	for i, t := range live {
		if sameAntecedents(t.antecedents, tok.antecedents) {
			return append(live[:i], live[i+1:]...)
		}
	}
	return live
}

func instantiate(p Pattern, tok token) facts.Triple {
	return facts.Triple{
		Subject:   resolveSlot(p.S, tok),
		Predicate: resolveSlot(p.P, tok),
		Object:    resolveSlot(p.O, tok),
	}
}
