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

package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_InternName_Deterministic(t *testing.T) {
	s := NewStore()
	a := s.InternName("Person")
	b := s.InternName("Person")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, s.InternName("Animal"))
}

func Test_InternLiteral_NormalisesEquivalentDecimals(t *testing.T) {
	s := NewStore()
	a := s.InternLiteral("1.0", "decimal")
	b := s.InternLiteral("1.00", "decimal")
	assert.Equal(t, a, b, "1.0 and 1.00 should collapse to the same LiteralId")
}

func Test_InternLiteral_DifferentDatatypesDontCollide(t *testing.T) {
	s := NewStore()
	a := s.InternLiteral("1", "integer")
	b := s.InternLiteral("1", "string")
	assert.NotEqual(t, a, b)
}

func Test_NamedAndLiteralSpacesDontCollide(t *testing.T) {
	s := NewStore()
	n := s.InternName("alice")
	l := s.InternLiteral("alice", "string")
	assert.NotEqual(t, n, l)
	assert.False(t, n.IsLiteral())
	assert.True(t, l.IsLiteral())
}

func Test_ReservedVocabularyInterned(t *testing.T) {
	s := NewStore()
	id, ok := s.TryName(NameThing)
	assert.True(t, ok)
	assert.Equal(t, KindName, s.Lookup(id).Kind)
}

func Test_CompareLiterals_Numeric(t *testing.T) {
	a := NewLiteral("1", "integer")
	b := NewLiteral("2", "integer")
	assert.Equal(t, Less, CompareLiterals(a, b))
	assert.Equal(t, Greater, CompareLiterals(b, a))
}

func Test_CompareLiterals_IncomparableAcrossDatatypes(t *testing.T) {
	a := NewLiteral("1", "integer")
	b := NewLiteral("true", "boolean")
	assert.Equal(t, Incomparable, CompareLiterals(a, b))
}

func Test_CompareLiterals_StringsLexicographic(t *testing.T) {
	a := NewLiteral("alice", "string")
	b := NewLiteral("bob", "string")
	assert.Equal(t, Less, CompareLiterals(a, b))
}

func Test_CompareLiterals_UnknownDatatypeIsOpaque(t *testing.T) {
	a := NewLiteral("x", "some:weird-type")
	assert.Equal(t, DatatypeOpaque, a.Tag)
	b := NewLiteral("x", "some:weird-type")
	assert.Equal(t, Equal, CompareLiterals(a, b))
}

func Test_TryLookup_UnknownID(t *testing.T) {
	s := NewStore()
	_, ok := s.TryLookup(ID(999999))
	assert.False(t, ok)
}
