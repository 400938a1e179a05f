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
	"testing"

	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTriple(s, p, o uint32) Triple {
	return Triple{Subject: term.ID(s), Predicate: term.ID(p), Object: term.ID(o)}
}

func Test_Assert_IdempotentOnDuplicate(t *testing.T) {
	s := New()
	tr := mkTriple(1, 2, 3)
	r1 := s.Assert(tr, SourceTag("a"))
	r2 := s.Assert(tr, SourceTag("b"))
	assert.True(t, r1.Added)
	assert.False(t, r2.Added)
	_, d, ok := s.Get(r1.ID)
	require.True(t, ok)
	assert.True(t, d.IsAsserted)
	assert.Len(t, d.SourceTags, 2)
}

func Test_Derive_DuplicateAppendsJustificationNoDelta(t *testing.T) {
	s := New()
	tr := mkTriple(1, 2, 3)
	r1 := s.Derive(tr, Justification{1})
	r2 := s.Derive(tr, Justification{2})
	assert.True(t, r1.Added)
	assert.False(t, r2.Added)
	assert.Empty(t, r2.Delta)
	_, d, _ := s.Get(r1.ID)
	assert.Len(t, d.Justifications, 2)
}

func Test_Select_PicksPermutationByBoundSlots(t *testing.T) {
	s := New()
	s.Assert(mkTriple(1, 2, 3), "x")
	s.Assert(mkTriple(1, 2, 4), "x")
	s.Assert(mkTriple(5, 2, 3), "x")

	p := term.ID(2)
	got := s.Select(Pattern{Predicate: &p})
	assert.Len(t, got, 3)

	subj := term.ID(1)
	got = s.Select(Pattern{Subject: &subj, Predicate: &p})
	assert.Len(t, got, 2)
}

func Test_RetractSource_RemovesUnjustifiedTriple(t *testing.T) {
	s := New()
	tr := mkTriple(1, 2, 3)
	s.Assert(tr, "tagA")
	report := s.RetractSource("tagA")
	assert.True(t, report.Found)
	assert.Equal(t, []Triple{tr}, report.Dead)
	_, ok := s.IDOf(tr)
	assert.False(t, ok)
}

func Test_RetractSource_DemotesWhenJustificationRemains(t *testing.T) {
	s := New()
	tr := mkTriple(1, 2, 3)
	res := s.Assert(tr, "tagA")
	s.Derive(tr, Justification{42})
	report := s.RetractSource("tagA")
	assert.True(t, report.Found)
	assert.Empty(t, report.Dead)
	_, d, ok := s.Get(res.ID)
	require.True(t, ok)
	assert.False(t, d.IsAsserted)
	assert.Len(t, d.Justifications, 1)
}

func Test_RetractSource_UnknownTagIsNoop(t *testing.T) {
	s := New()
	s.Assert(mkTriple(1, 2, 3), "tagA")
	report := s.RetractSource("nope")
	assert.False(t, report.Found)
}

func Test_UndoJustification_CountingInvalidation(t *testing.T) {
	s := New()
	tr := mkTriple(1, 2, 3)
	res := s.Derive(tr, Justification{10})
	s.Derive(tr, Justification{20})
	s.Derive(tr, Justification{30})

	removed := s.UndoJustification(res.ID, Justification{10})
	assert.False(t, removed, "2 justifications remain, triple survives")
	removed = s.UndoJustification(res.ID, Justification{20})
	assert.False(t, removed)
	removed = s.UndoJustification(res.ID, Justification{30})
	assert.True(t, removed, "last justification removed, triple should die")

	_, ok := s.IDOf(tr)
	assert.False(t, ok)
}

func Test_Snapshot_IsolatesFromLaterAssertions(t *testing.T) {
	s := New()
	s.Assert(mkTriple(1, 2, 3), "x")
	snap := s.Snapshot()
	s.Assert(mkTriple(4, 5, 6), "x")

	subj := term.ID(4)
	got := s.SelectAt(snap, Pattern{Subject: &subj})
	assert.Empty(t, got, "snapshot taken before the assertion must not reveal it")

	got = s.Select(Pattern{Subject: &subj})
	assert.Len(t, got, 1, "the live store does see it")
}

func Test_SameAsIndex_MergeAndCanonical(t *testing.T) {
	u := NewSameAsIndex()
	a, b, c := term.ID(5), term.ID(2), term.ID(9)
	u.Merge(a, b)
	u.Merge(b, c)
	assert.True(t, u.SameClass(a, c))
	assert.Equal(t, term.ID(2), u.Canonical(a))
}
