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

import "time"

// Ordering is the result of comparing two literals.
type Ordering int

const (
	// Incomparable is returned instead of an error when two literals can't
	// be meaningfully ordered (different, unrelated datatypes).
	Incomparable Ordering = -2
	Less         Ordering = -1
	Equal        Ordering = 0
	Greater      Ordering = 1
)

// ordered is the set of builtin numeric/string types CompareOrdered accepts.
// Kept small and explicit rather than constraints.Ordered from
// golang.org/x/exp/constraints: the reasoner only ever compares the
// handful of primitive types literals normalise to.
type ordered interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64 | ~float64 | ~string
}

// CompareOrdered compares two values of the same ordered type. A single
// generic implementation stands in for what would otherwise be a
// per-type Less function, one for each of the primitive types literals
// normalise to.
func CompareOrdered[T ordered](a, b T) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// CompareLiterals implements the Term Store's cmp_literal contract:
// numeric datatypes compare by magnitude, dateTime/duration by canonical
// form, strings lexicographically, and comparisons across unrelated
// datatypes or against an opaque literal return Incomparable rather than
// erroring.
func CompareLiterals(a, b Literal) Ordering {
	numeric := func(t DatatypeTag) bool { return t == DatatypeInteger || t == DatatypeDecimal }
	if a.Tag != b.Tag && !(numeric(a.Tag) && numeric(b.Tag)) {
		return Incomparable
	}
	switch a.Tag {
	case DatatypeInteger, DatatypeDecimal:
		af, aok := a.ParsedValue.(float64)
		bf, bok := b.ParsedValue.(float64)
		if !aok || !bok {
			return Incomparable
		}
		return CompareOrdered(af, bf)
	case DatatypeBoolean:
		ab, aok := a.ParsedValue.(bool)
		bb, bok := b.ParsedValue.(bool)
		if !aok || !bok {
			return Incomparable
		}
		if ab == bb {
			return Equal
		}
		if !ab && bb {
			return Less
		}
		return Greater
	case DatatypeDateTime:
		at, aok := a.ParsedValue.(time.Time)
		bt, bok := b.ParsedValue.(time.Time)
		if !aok || !bok {
			return Incomparable
		}
		switch {
		case at.Before(bt):
			return Less
		case at.After(bt):
			return Greater
		default:
			return Equal
		}
	case DatatypeDuration:
		ad, aok := a.ParsedValue.(time.Duration)
		bd, bok := b.ParsedValue.(time.Duration)
		if !aok || !bok {
			return Incomparable
		}
		return CompareOrdered(ad, bd)
	case DatatypeString:
		return CompareOrdered(a.Lexical, b.Lexical)
	default:
		// Opaque literals only compare equal/incomparable by lexical form;
		// ordering an opaque value is meaningless.
		if a.Lexical == b.Lexical {
			return Equal
		}
		return Incomparable
	}
}
