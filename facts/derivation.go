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

// Derivation is the provenance record every triple in the Store carries.
// A record is only ever visible (not a tombstone) while IsAsserted is
// true or Justifications is non-empty.
type Derivation struct {
	IsAsserted     bool
	SourceTags     map[SourceTag]struct{}
	Justifications []Justification
}

func newDerivation() *Derivation {
	return &Derivation{SourceTags: make(map[SourceTag]struct{})}
}

// live reports whether this derivation still justifies the triple's
// presence in the store.
func (d *Derivation) live() bool {
	return d.IsAsserted || len(d.Justifications) > 0
}

// record is the full bookkeeping the Store keeps per triple: the
// derivation, and the epoch range it was alive for (used by snapshots).
type record struct {
	id         TripleID
	triple     Triple
	derivation *Derivation
	// birth is the epoch at which the triple first became visible.
	birth uint64
	// death is the epoch at which the triple was removed, or the sentinel
	// epochNeverDied while still live.
	death uint64
}

const epochNeverDied = ^uint64(0)

// visibleAt reports whether this record is part of the fact base as
// observed by a reader holding a snapshot taken at the given epoch.
func (r *record) visibleAt(epoch uint64) bool {
	return r.birth <= epoch && epoch < r.death
}
