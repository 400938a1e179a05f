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
	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/term"
)

// EventKind distinguishes the diagnostics a Driver can raise while
// loading axioms or checking consistency.
type EventKind int

const (
	// NonRLAxiom records an axiom the Compiler rejected as outside the
	// supported profile; the axiom was skipped, not loaded.
	NonRLAxiom EventKind = iota
	// InconsistentOntology records an inconsistency CheckConsistency found:
	// an individual related to itself by an Irreflexive role, a pair related
	// both ways by an Asymmetric role, a pair both sameAs and differentFrom,
	// or an instance typed into two DisjointClasses.
	InconsistentOntology
)

// Event is one diagnostic raised during LoadAxioms or CheckConsistency.
type Event struct {
	Kind    EventKind
	Message string

	// Axiom is set for a NonRLAxiom event.
	Axiom axiom.Axiom
	// A, B are set for an InconsistentOntology event: the two individuals
	// (or the individual and itself, for a self-contradiction) found
	// inconsistent; for a DisjointClasses violation, the two disjoint
	// classes instead.
	A, B term.ID
}
