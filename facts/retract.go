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

// RetractReport summarises the effect of RetractSource.
type RetractReport struct {
	// Found is false if tag was never seen: a no-op, not an error.
	Found bool
	// Dead lists the triples that are no longer live as a direct result of
	// losing this source tag (not counting any further cascade through
	// the RETE network — that's the Inference Driver's job). DeadIDs is
	// the parallel list of their TripleIDs, for callers that need to
	// remove the same triple from an index keyed by id (an AlphaNode's
	// match set, for instance) rather than re-look it up by value.
	Dead    []Triple
	DeadIDs []TripleID
}

// RetractSource removes tag from every triple's SourceTags. A triple that
// then has neither IsAsserted nor any Justifications is removed outright;
// one that loses IsAsserted but still has justifications is demoted to
// derivation-only and stays live.
func (s *Store) RetractSource(tag SourceTag) RetractReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := RetractReport{}
	for id, rec := range s.byID {
		if rec.death != epochNeverDied {
			continue
		}
		d := rec.derivation
		if _, tagged := d.SourceTags[tag]; !tagged {
			continue
		}
		report.Found = true
		delete(d.SourceTags, tag)
		if len(d.SourceTags) == 0 {
			d.IsAsserted = false
		}
		if !d.live() {
			report.Dead = append(report.Dead, rec.triple)
			report.DeadIDs = append(report.DeadIDs, id)
			s.removeLocked(id)
		}
	}
	return report
}

// UndoJustification removes one occurrence of justification from id's
// derivation: a derived triple's justification list length gates its
// removal, so the same triple rederived by two different rule firings
// survives the retraction of either one alone. It returns
// (removedEntirely=true) if, after removing that justification, the
// triple has neither remaining justifications nor IsAsserted set, in which
// case it has also been removed from the Store — the caller (the
// Inference Driver) must propagate a further -delta for it.
func (s *Store) UndoJustification(id TripleID, justification Justification) (removedEntirely bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok || rec.death != epochNeverDied {
		return false
	}
	d := rec.derivation
	idx := indexOfJustification(d.Justifications, justification)
	if idx < 0 {
		return false
	}
	d.Justifications = append(d.Justifications[:idx], d.Justifications[idx+1:]...)
	if !d.live() {
		s.removeLocked(id)
		return true
	}
	return false
}

func indexOfJustification(list []Justification, target Justification) int {
	for i, j := range list {
		if justificationEqual(j, target) {
			return i
		}
	}
	return -1
}

func justificationEqual(a, b Justification) bool {
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
