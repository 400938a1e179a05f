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
	"encoding/binary"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/term"
)

// BetaNode is a two-input hash join: it holds the accumulated left token
// set (everything joined so far in a production's left-deep chain) and a
// fresh right token set (one alpha pattern's matches, remapped to this
// production's variables), and joins them on keyVars — the variables the
// right pattern shares with everything already joined on the left.
//
// Both sides use set semantics with duplicate-tuple firings: the same
// binding tuple can be produced by more than one combination of
// antecedent facts, and each combination is emitted (and later retracted)
// independently so counting-based justification invalidation in the Fact
// Store sees every contributing derivation.
type BetaNode struct {
	keyVars     []VarSlot
	leftBuckets map[string][]token
	rightBuckets map[string][]token
	next        chainLink
}

func newBetaNode(keyVars []VarSlot) *BetaNode {
	return &BetaNode{
		keyVars:      keyVars,
		leftBuckets:  make(map[string][]token),
		rightBuckets: make(map[string][]token),
	}
}

func (b *BetaNode) key(tok token) string {
	buf := make([]byte, 4*len(b.keyVars))
	for i, v := range b.keyVars {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], uint32(tok.bindings[v]))
	}
	return string(buf)
}

func (b *BetaNode) onLeft(net *Network, sign Sign, tok token) {
	k := b.key(tok)
	b.leftBuckets[k] = addOrRemoveToken(b.leftBuckets[k], sign, tok)
	for _, r := range b.rightBuckets[k] {
		net.propagate(b.next, sign, combine(tok, r))
	}
}

func (b *BetaNode) onRight(net *Network, sign Sign, tok token) {
	k := b.key(tok)
	b.rightBuckets[k] = addOrRemoveToken(b.rightBuckets[k], sign, tok)
	for _, l := range b.leftBuckets[k] {
		net.propagate(b.next, sign, combine(l, tok))
	}
}

func addOrRemoveToken(bucket []token, sign Sign, tok token) []token {
	if sign == Insert {
		return append(bucket, tok)
	}
	for i, t := range bucket {
		if sameAntecedents(t.antecedents, tok.antecedents) {
			return append(bucket[:i], bucket[i+1:]...)
		}
	}
	return bucket
}

func sameAntecedents(a, b []facts.TripleID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func combine(l, r token) token {
	bindings := make([]term.ID, len(l.bindings))
	for i := range bindings {
		if l.bindings[i] != term.Zero {
			bindings[i] = l.bindings[i]
		} else {
			bindings[i] = r.bindings[i]
		}
	}
	antecedents := make([]facts.TripleID, 0, len(l.antecedents)+len(r.antecedents))
	antecedents = append(antecedents, l.antecedents...)
	antecedents = append(antecedents, r.antecedents...)
	return token{bindings: bindings, antecedents: antecedents}
}

// leftAdapter and rightAdapter let a BetaNode be wired as either side of
// a join while satisfying the uniform chainLink interface.
type leftAdapter struct{ b *BetaNode }
type rightAdapter struct{ b *BetaNode }

func (a leftAdapter) onToken(net *Network, sign Sign, tok token)  { a.b.onLeft(net, sign, tok) }
func (a rightAdapter) onToken(net *Network, sign Sign, tok token) { a.b.onRight(net, sign, tok) }
