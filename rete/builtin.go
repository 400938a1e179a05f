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

package rete

import (
	"strconv"
	"strings"

	"github.com/reter-go/reter/term"
)

// BuiltinFunc evaluates one SWRL builtin against already-interned
// arguments and the Term Store used to resolve literal values. ok is
// false for a predicate-style builtin (ge, lt, ...) whose condition did
// not hold; result is meaningless when ok is false. For a function-style
// builtin (add, stringConcat, ...) ok is always true once the arguments
// typecheck and result is the value to bind.
type BuiltinFunc func(store *term.Store, args []term.ID) (result term.ID, ok bool)

// DefaultBuiltins is the registry of builtins the Axiom Compiler can
// reference by name when translating a SWRL rule. Callers may register
// additional functions into a private copy before compiling.
func DefaultBuiltins() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		"equal":        cmpBuiltin(func(o term.Ordering) bool { return o == term.Equal }),
		"notEqual":     cmpBuiltin(func(o term.Ordering) bool { return o != term.Equal }),
		"lessThan":     cmpBuiltin(func(o term.Ordering) bool { return o == term.Less }),
		"lessThanOrEqual": cmpBuiltin(func(o term.Ordering) bool {
			return o == term.Less || o == term.Equal
		}),
		"greaterThan": cmpBuiltin(func(o term.Ordering) bool { return o == term.Greater }),
		"greaterThanOrEqual": cmpBuiltin(func(o term.Ordering) bool {
			return o == term.Greater || o == term.Equal
		}),
		"add":           arithBuiltin(func(a, b float64) float64 { return a + b }),
		"subtract":      arithBuiltin(func(a, b float64) float64 { return a - b }),
		"multiply":      arithBuiltin(func(a, b float64) float64 { return a * b }),
		"divide":        arithBuiltin(func(a, b float64) float64 { return a / b }),
		"stringConcat":  stringConcatBuiltin,
		"stringLength":  stringLengthBuiltin,
		"containsSubstring": containsBuiltin,
	}
}

func cmpBuiltin(accept func(term.Ordering) bool) BuiltinFunc {
	return func(store *term.Store, args []term.ID) (term.ID, bool) {
		if len(args) != 2 {
			return term.Zero, false
		}
		a, okA := store.TryLookup(args[0])
		b, okB := store.TryLookup(args[1])
		if !okA || !okB || a.Kind != term.KindLiteral || b.Kind != term.KindLiteral {
			return term.Zero, false
		}
		return term.Zero, accept(term.CompareLiterals(a.Literal, b.Literal))
	}
}

func arithBuiltin(fn func(a, b float64) float64) BuiltinFunc {
	return func(store *term.Store, args []term.ID) (term.ID, bool) {
		if len(args) != 2 {
			return term.Zero, false
		}
		a, okA := numericValue(store, args[0])
		b, okB := numericValue(store, args[1])
		if !okA || !okB {
			return term.Zero, false
		}
		result := fn(a, b)
		return store.InternLiteral(formatFloat(result), "xsd:decimal"), true
	}
}

func numericValue(store *term.Store, id term.ID) (float64, bool) {
	t, ok := store.TryLookup(id)
	if !ok || t.Kind != term.KindLiteral {
		return 0, false
	}
	switch v := t.Literal.ParsedValue.(type) {
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func stringConcatBuiltin(store *term.Store, args []term.ID) (term.ID, bool) {
	var sb strings.Builder
	for _, id := range args {
		t, ok := store.TryLookup(id)
		if !ok {
			return term.Zero, false
		}
		sb.WriteString(t.String())
	}
	return store.InternLiteral(sb.String(), "xsd:string"), true
}

func stringLengthBuiltin(store *term.Store, args []term.ID) (term.ID, bool) {
	if len(args) != 1 {
		return term.Zero, false
	}
	t, ok := store.TryLookup(args[0])
	if !ok || t.Kind != term.KindLiteral {
		return term.Zero, false
	}
	n := len([]rune(t.Literal.Lexical))
	return store.InternLiteral(formatFloat(float64(n)), "xsd:integer"), true
}

func containsBuiltin(store *term.Store, args []term.ID) (term.ID, bool) {
	if len(args) != 2 {
		return term.Zero, false
	}
	a, okA := store.TryLookup(args[0])
	b, okB := store.TryLookup(args[1])
	if !okA || !okB {
		return term.Zero, false
	}
	return term.Zero, strings.Contains(a.Literal.Lexical, b.Literal.Lexical)
}

// formatFloat renders an arithmetic builtin's result so it round-trips
// through NewLiteral's xsd:decimal parser.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
