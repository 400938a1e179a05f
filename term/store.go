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
	"fmt"
	"sync"
)

// Store interns names and literals into dense ids and provides the
// bidirectional mapping back to their Term. It is write-mostly append: the
// only mutation is handing out a new id for a never-seen name or literal
// key, so reads and writes share one RWMutex — a striped or lock-free map
// would only pay for itself at a scale well beyond one reasoner instance.
type Store struct {
	mu sync.RWMutex

	names    map[string]ID
	literals map[interface{}]ID
	terms    map[ID]Term
	nextName uint32
	nextLit  uint32
}

// Reserved names interned by every Store at construction time.
const (
	NameThing         = "owl:Thing"
	NameNothing       = "owl:Nothing"
	NameType          = "rdf:type"
	NameSameAs        = "owl:sameAs"
	NameDifferentFrom = "owl:differentFrom"
)

// NewStore returns an empty Store with the reserved vocabulary
// (Thing/Nothing/type/sameAs/differentFrom) already interned.
func NewStore() *Store {
	return NewStoreWithHint(0)
}

// NewStoreWithHint is NewStore with its interning maps pre-sized for
// roughly capacityHint distinct names/literals, for a caller that knows
// about how large an ontology plus its data will be and wants to avoid
// incremental map growth while loading it.
func NewStoreWithHint(capacityHint int) *Store {
	s := &Store{
		names:    make(map[string]ID, capacityHint),
		literals: make(map[interface{}]ID, capacityHint),
		terms:    make(map[ID]Term, capacityHint),
	}
	for _, name := range []string{NameThing, NameNothing, NameType, NameSameAs, NameDifferentFrom} {
		s.InternName(name)
	}
	return s
}

// InternName returns the ID for text, minting a new one on first sight.
// Two calls with byte-equal text always return the same id.
func (s *Store) InternName(text string) ID {
	s.mu.RLock()
	if id, ok := s.names[text]; ok {
		s.mu.RUnlock()
		return id
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.names[text]; ok {
		return id
	}
	s.nextName++
	id := ID(s.nextName)
	s.names[text] = id
	s.terms[id] = Term{ID: id, Kind: KindName, Name: text}
	return id
}

// InternLiteral returns the ID for the literal described by lex/datatype,
// minting a new one on first sight. Literals that normalise to the same
// parsed value under the same tag collapse to one id, per the Term
// Store's determinism contract (e.g. "1.0" and "1.00" as xsd:decimal).
func (s *Store) InternLiteral(lex, datatype string) ID {
	lit := NewLiteral(lex, datatype)
	key := lit.Key()

	s.mu.RLock()
	if id, ok := s.literals[key]; ok {
		s.mu.RUnlock()
		return id
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.literals[key]; ok {
		return id
	}
	s.nextLit++
	id := ID(s.nextLit) | literalBit
	s.literals[key] = id
	s.terms[id] = Term{ID: id, Kind: KindLiteral, Literal: lit}
	return id
}

// Lookup resolves id back to its Term. It panics on an id this Store never
// minted — a programming error, not a recoverable runtime condition.
func (s *Store) Lookup(id ID) Term {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.terms[id]
	if !ok {
		panic(fmt.Sprintf("term.Store.Lookup: unknown id %v", id))
	}
	return t
}

// TryLookup is the non-panicking form of Lookup, used by the query engine
// where an unrecognised constant must produce an empty result rather than
// abort.
func (s *Store) TryLookup(id ID) (Term, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.terms[id]
	return t, ok
}

// TryName resolves a name to its ID without interning it, returning false
// if the name was never seen. Used by the query engine to translate a
// constant in a query pattern without accidentally growing the Store for
// every typo'd query.
func (s *Store) TryName(text string) (ID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.names[text]
	return id, ok
}

// IsLiteral reports whether id identifies a literal rather than a name.
func (s *Store) IsLiteral(id ID) bool {
	return id.IsLiteral()
}

// CompareLiteralIDs resolves both ids and compares them with
// CompareLiterals; it panics if either id isn't a literal.
func (s *Store) CompareLiteralIDs(a, b ID) Ordering {
	ta := s.Lookup(a)
	tb := s.Lookup(b)
	if ta.Kind != KindLiteral || tb.Kind != KindLiteral {
		panic("term.Store.CompareLiteralIDs: non-literal id")
	}
	return CompareLiterals(ta.Literal, tb.Literal)
}
