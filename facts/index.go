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
	"bytes"
	"encoding/binary"

	"github.com/google/btree"
	"github.com/reter-go/reter/term"
)

// permutation names one of the five index orderings a Triple's slots can
// be arranged in. The three-letter name gives the order the (subject,
// predicate, object) slots are encoded into the index's key.
type permutation int

const (
	permSPO permutation = iota
	permPOS
	permOSP
	permPSO
	permSOP
)

var allPermutations = [...]permutation{permSPO, permPOS, permOSP, permPSO, permSOP}

// encodeKey builds the ordered byte key for a Triple under a permutation.
// Each slot is a fixed-width big-endian uint32 so byte-lexicographic order
// on the encoded key matches numeric order on the permuted slots — this is
// what lets a btree range scan answer a partially-bound select.
func encodeKey(perm permutation, t Triple) []byte {
	buf := make([]byte, 12)
	a, b, c := permute(perm, t)
	binary.BigEndian.PutUint32(buf[0:4], uint32(a))
	binary.BigEndian.PutUint32(buf[4:8], uint32(b))
	binary.BigEndian.PutUint32(buf[8:12], uint32(c))
	return buf
}

// encodePrefix encodes only the leading n bound slots of a select pattern
// under perm, for use as a btree range bound.
func encodePrefix(perm permutation, bound []term.ID) []byte {
	buf := make([]byte, 4*len(bound))
	for i, id := range bound {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], uint32(id))
	}
	return buf
}

func permute(perm permutation, t Triple) (a, b, c term.ID) {
	switch perm {
	case permSPO:
		return t.Subject, t.Predicate, t.Object
	case permPOS:
		return t.Predicate, t.Object, t.Subject
	case permOSP:
		return t.Object, t.Subject, t.Predicate
	case permPSO:
		return t.Predicate, t.Subject, t.Object
	case permSOP:
		return t.Subject, t.Object, t.Predicate
	default:
		panic("facts: unknown permutation")
	}
}

// pickPermutation chooses the most selective of the five permutations for
// a select(s?,p?,o?) pattern: the one whose encoded key prefix covers the
// most leading bound slots.
func pickPermutation(sBound, pBound, oBound bool) (permutation, int) {
	switch {
	case sBound && pBound && oBound:
		return permSPO, 3
	case sBound && pBound:
		return permSPO, 2
	case pBound && oBound:
		return permPOS, 2
	case sBound && oBound:
		return permSOP, 2
	case sBound:
		return permSPO, 1
	case pBound:
		return permPOS, 1
	case oBound:
		return permOSP, 1
	default:
		return permSPO, 0
	}
}

// indexItem is a btree.Item: an encoded key paired with the TripleID it
// resolves to. Ordering is purely by key bytes.
type indexItem struct {
	key []byte
	id  TripleID
}

func (it indexItem) Less(other btree.Item) bool {
	return bytes.Compare(it.key, other.(indexItem).key) < 0
}

// index is one of the five permutation orderings, backed by an in-memory
// B-tree (github.com/google/btree) of encoded keys, supporting range
// enumeration by shared prefix over an append-mostly working set.
type index struct {
	perm permutation
	tree *btree.BTree
}

func newIndex(perm permutation) *index {
	return &index{perm: perm, tree: btree.New(32)}
}

func (ix *index) insert(t Triple, id TripleID) {
	ix.tree.ReplaceOrInsert(indexItem{key: encodeKey(ix.perm, t), id: id})
}

func (ix *index) remove(t Triple) {
	ix.tree.Delete(indexItem{key: encodeKey(ix.perm, t)})
}

// scanPrefix enumerates every entry whose key starts with the given
// prefix, calling emit for each matching TripleID. Enumeration order is
// the index's byte order, which is an implementation detail callers must
// not rely on for anything beyond determinism within one scan.
func (ix *index) scanPrefix(prefix []byte, emit func(TripleID) bool) {
	start := indexItem{key: prefix}
	ix.tree.AscendGreaterOrEqual(start, func(item btree.Item) bool {
		ii := item.(indexItem)
		if !bytes.HasPrefix(ii.key, prefix) {
			return false
		}
		return emit(ii.id)
	})
}
