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

// Package facts is the indexed working memory of an OWL 2 RL reasoner: a
// set of (Triple, Derivation) pairs with five index permutations for
// O(1)-ish selective lookup, epoch-stamped snapshots, and source/
// justification-tagged provenance so a caller can retract by source and
// have derived facts disappear with it.
package facts

import (
	"fmt"

	"github.com/reter-go/reter/term"
)

// Triple is a single (subject, predicate, object) fact. Class assertions
// are encoded as (individual, PredType, Class).
type Triple struct {
	Subject   term.ID
	Predicate term.ID
	Object    term.ID
}

func (t Triple) String() string {
	return fmt.Sprintf("(%v %v %v)", t.Subject, t.Predicate, t.Object)
}

// TripleID identifies a specific Triple within one Store for the lifetime
// of that Store. Unlike term.ID it is never exposed outside this package
// except as an opaque handle used in Justification lists — callers outside
// facts/infer/rete have no need to hold one.
type TripleID uint64

// SourceTag is an opaque label attached to asserted triples for bulk
// retraction (e.g. a file path, or an upstream extractor's batch id).
type SourceTag string

// Justification is the list of base triples whose conjunction, under one
// successful production firing, derived a triple. TripleID order within a
// Justification has no meaning beyond being the set of antecedents.
type Justification []TripleID
