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

package facts

import "github.com/reter-go/reter/term"

// SameAsIndex tracks owl:sameAs equivalence classes with a union-find over
// term.ID: each class has a canonical-representative pointer, and
// Canonical redirects a non-canonical id to it. It does not rewrite
// existing triples in the Store, and no terminal node does either (the
// Functional/HasKey productions only derive owl:sameAs triples); this type
// only answers "what's the canonical id for x" and "merge x and y".
type SameAsIndex struct {
	parent map[term.ID]term.ID
}

// NewSameAsIndex returns an empty equivalence index.
func NewSameAsIndex() *SameAsIndex {
	return &SameAsIndex{parent: make(map[term.ID]term.ID)}
}

// Canonical returns the representative of id's equivalence class. An id
// that's never been merged is its own representative.
func (u *SameAsIndex) Canonical(id term.ID) term.ID {
	root := id
	for p, ok := u.parent[root]; ok; p, ok = u.parent[root] {
		root = p
	}
	// Path-compress so repeated lookups of the same chain are O(1).
	for cur := id; cur != root; {
		next := u.parent[cur]
		u.parent[cur] = root
		cur = next
	}
	return root
}

// Merge unifies a and b's equivalence classes and returns the surviving
// representative. Ties are broken by choosing the smaller term.ID so the
// choice is deterministic given the same merge order, matching the Term
// Store's "two calls with byte-equal inputs return the same id" style
// determinism contract.
func (u *SameAsIndex) Merge(a, b term.ID) term.ID {
	ra, rb := u.Canonical(a), u.Canonical(b)
	if ra == rb {
		return ra
	}
	winner, loser := ra, rb
	if rb < ra {
		winner, loser = rb, ra
	}
	u.parent[loser] = winner
	return winner
}

// SameClass reports whether a and b are currently in the same equivalence
// class.
func (u *SameAsIndex) SameClass(a, b term.ID) bool {
	return u.Canonical(a) == u.Canonical(b)
}
