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

import "github.com/reter-go/reter/facts"

// BuiltinCall is one builtin evaluation step in a Production's chain. Name
// selects a registered BuiltinFunc; Args are slots into the production's
// binding tuple (constants or already-bound variables); if Bind is
// non-nil the call's return value is bound to that fresh variable rather
// than treated as a pass/fail filter.
type BuiltinCall struct {
	Name string
	Args []Slot
	Bind *VarSlot
}

// Production is one compiled rule: a left-deep join of LHS patterns
// (antecedents), an ordered chain of builtin evaluations run once all the
// variables they reference are bound, and a set of RHS templates
// (consequents) instantiated and derived into the Fact Store for every
// surviving binding tuple.
type Production struct {
	ID       int
	LHS      []Pattern
	Builtins []BuiltinCall
	RHS      []Pattern
	NumVars  int

	// SourceTag lets Network.RetractProductions pull this production back
	// out of the network, the same way facts.Store.RetractSource pulls a
	// batch of asserted triples back out of the fact base.
	SourceTag facts.SourceTag

	// terminal, taps and alphas are compile-time bookkeeping Network.Compile
	// fills in, used only by Network.RetractProductions to unwind this
	// production's effect on the network when its source is retracted.
	terminal *TerminalNode
	taps     []*alphaTap
	alphas   []*AlphaNode
}
