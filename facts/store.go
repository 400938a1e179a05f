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

import (
	"sync"

	"github.com/reter-go/reter/term"
)

// Store is the Fact Store: the indexed working memory of triples and
// their provenance. The zero value isn't usable; construct with New.
type Store struct {
	mu sync.RWMutex

	byTriple map[Triple]TripleID
	byID     map[TripleID]*record
	nextID   TripleID

	indices map[permutation]*index

	// epoch is the monotonic counter snapshots are stamped with. It
	// advances once per completed mutation (assert/derive that produced a
	// delta, or a retraction step), never mid-mutation, so a snapshot
	// taken during propagation only ever sees fully-applied epochs.
	epoch uint64
}

// New returns an empty Fact Store. It holds no owl:Thing/owl:Nothing
// triples of its own; the Term Store interns those names, and such
// triples appear only when an axiom or assertion produces them.
func New() *Store {
	s := &Store{
		byTriple: make(map[Triple]TripleID),
		byID:     make(map[TripleID]*record),
		indices:  make(map[permutation]*index, len(allPermutations)),
	}
	for _, p := range allPermutations {
		s.indices[p] = newIndex(p)
	}
	return s
}

// AssertResult reports the outcome of Assert/Derive.
type AssertResult struct {
	// Added is true only if the triple was previously absent.
	Added bool
	// ID is the TripleID for this triple, whether newly created or
	// pre-existing.
	ID TripleID
	// Delta lists the triples that newly became visible as a result of
	// this call: empty unless Added is true.
	Delta []Triple
}

// Assert records triple as externally asserted, tagged with source. If the
// triple already exists, source is merged into its existing SourceTags and
// Added is false (idempotent on duplicate asserted triples).
func (s *Store) Assert(triple Triple, source SourceTag) AssertResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byTriple[triple]; ok {
		rec := s.byID[id]
		rec.derivation.IsAsserted = true
		rec.derivation.SourceTags[source] = struct{}{}
		return AssertResult{Added: false, ID: id}
	}

	id := s.insertLocked(triple)
	rec := s.byID[id]
	rec.derivation.IsAsserted = true
	rec.derivation.SourceTags[source] = struct{}{}
	return AssertResult{Added: true, ID: id, Delta: []Triple{triple}}
}

// Derive records triple as produced by a production firing with the given
// justification. If the triple already exists, the justification is
// appended (multiply-derived) and Delta is empty: re-propagation is
// unnecessary because the triple was already visible.
func (s *Store) Derive(triple Triple, justification Justification) AssertResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byTriple[triple]; ok {
		rec := s.byID[id]
		rec.derivation.Justifications = append(rec.derivation.Justifications, justification)
		return AssertResult{Added: false, ID: id}
	}

	id := s.insertLocked(triple)
	rec := s.byID[id]
	rec.derivation.Justifications = append(rec.derivation.Justifications, justification)
	return AssertResult{Added: true, ID: id, Delta: []Triple{triple}}
}

func (s *Store) insertLocked(triple Triple) TripleID {
	s.nextID++
	id := s.nextID
	s.epoch++
	rec := &record{
		id:         id,
		triple:     triple,
		derivation: newDerivation(),
		birth:      s.epoch,
		death:      epochNeverDied,
	}
	s.byTriple[triple] = id
	s.byID[id] = rec
	for _, ix := range s.indices {
		ix.insert(triple, id)
	}
	return id
}

// removeLocked tombstones a record: it stops being visible to new
// snapshots as of the next epoch, but stays addressable by TripleID so
// any Justification lists still referencing it remain well-formed (they
// simply no longer resolve to a live fact).
func (s *Store) removeLocked(id TripleID) {
	rec, ok := s.byID[id]
	if !ok || rec.death != epochNeverDied {
		return
	}
	s.epoch++
	rec.death = s.epoch
	delete(s.byTriple, rec.triple)
	for _, ix := range s.indices {
		ix.remove(rec.triple)
	}
}

// Get resolves a TripleID to its Triple and current Derivation. ok is
// false if the id was never minted by this Store.
func (s *Store) Get(id TripleID) (Triple, *Derivation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return Triple{}, nil, false
	}
	return rec.triple, rec.derivation, true
}

// IDOf returns the TripleID of triple if it's currently live.
func (s *Store) IDOf(triple Triple) (TripleID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byTriple[triple]
	return id, ok
}

// Epoch returns the current epoch counter, useful for tests that want to
// assert something didn't advance it.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// SnapshotHandle is a cheap, read-only view of the Fact Store as of the
// epoch it was taken at. Queries run against a SnapshotHandle see a fixed
// point in time regardless of concurrent assertions.
type SnapshotHandle struct {
	store *Store
	epoch uint64
}

// Epoch returns the epoch this handle is pinned to.
func (h SnapshotHandle) Epoch() uint64 { return h.epoch }

// Snapshot returns a SnapshotHandle pinned to the current epoch.
func (s *Store) Snapshot() SnapshotHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SnapshotHandle{store: s, epoch: s.epoch}
}

// Pattern is a select(s?,p?,o?) pattern: a nil pointer leaves the slot a
// wildcard.
type Pattern struct {
	Subject   *term.ID
	Predicate *term.ID
	Object    *term.ID
}

// Select enumerates every live triple matching pattern as of the current
// epoch (i.e. the live fact base, not a pinned snapshot). It picks
// whichever of the five indices covers the most leading bound slots.
func (s *Store) Select(pattern Pattern) []Triple {
	return s.SelectAt(s.Snapshot(), pattern)
}

// SelectAt enumerates every triple matching pattern that was visible at
// handle's epoch.
func (s *Store) SelectAt(handle SnapshotHandle, pattern Pattern) []Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	perm, nbound := pickPermutation(pattern.Subject != nil, pattern.Predicate != nil, pattern.Object != nil)
	bound := boundSlots(perm, pattern, nbound)
	prefix := encodePrefix(perm, bound)

	var out []Triple
	s.indices[perm].scanPrefix(prefix, func(id TripleID) bool {
		rec := s.byID[id]
		if rec.visibleAt(handle.epoch) {
			out = append(out, rec.triple)
		}
		return true
	})
	return out
}

// boundSlots returns, in the order perm encodes them, the first nbound
// values that are actually bound in pattern.
func boundSlots(perm permutation, pattern Pattern, nbound int) []term.ID {
	full := [3]*term.ID{}
	switch perm {
	case permSPO:
		full = [3]*term.ID{pattern.Subject, pattern.Predicate, pattern.Object}
	case permPOS:
		full = [3]*term.ID{pattern.Predicate, pattern.Object, pattern.Subject}
	case permOSP:
		full = [3]*term.ID{pattern.Object, pattern.Subject, pattern.Predicate}
	case permPSO:
		full = [3]*term.ID{pattern.Predicate, pattern.Subject, pattern.Object}
	case permSOP:
		full = [3]*term.ID{pattern.Subject, pattern.Object, pattern.Predicate}
	}
	out := make([]term.ID, 0, nbound)
	for i := 0; i < nbound; i++ {
		out = append(out, *full[i])
	}
	return out
}
