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

// Sign distinguishes a fact becoming true from a fact becoming false, the
// two directions a delta can flow through the network.
type Sign int

const (
	Insert Sign = 1
	Remove Sign = -1
)

// token is one partial (or, at a terminal, complete) variable binding
// flowing through a production's beta/builtin chain, together with the
// TripleIDs of every antecedent fact that contributed to it. antecedents
// becomes the Justification recorded against whatever the terminal node
// derives.
type token struct {
	bindings    []term.ID
	antecedents []facts.TripleID
}

func (t token) justification() facts.Justification {
	return facts.Justification(append([]facts.TripleID(nil), t.antecedents...))
}

// chainLink is anything that can receive a token delta: a BetaNode, a
// BuiltinNode, or a TerminalNode. AlphaNodes are not chainLinks — they
// emit through alphaTap, which adapts their shared matches into a token
// for the first chainLink of each production that references them.
type chainLink interface {
	onToken(net *Network, sign Sign, tok token)
}
