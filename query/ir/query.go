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

package ir

// Query is the host-facing conjunctive query contract: a basic
// conjunction of patterns, zero or more UNION and MINUS blocks, FILTER
// predicates, and the usual result modifiers.
//
// Two UNION blocks in the same Query are never evaluated with a
// single-block short-circuit: query/plan and query/exec compute each
// block's relation independently and join both into the outer result (and
// into each other) by shared variables. Returning early once the first
// UNION block produces rows, ignoring a second block still present in the
// query, is the documented correctness hazard this IR is designed to
// make structurally impossible to reproduce — Unions is a slice, and
// every element is planned and executed.
type Query struct {
	// Select lists the projected variables. Exactly one of Select,
	// Ask, or Describe applies to a given Query.
	Select   []Var
	Ask      bool
	Describe *Var

	Patterns []Pattern
	Unions   []UnionBlock
	Minuses  []MinusBlock
	Filters  []Expr

	Distinct bool
	OrderBy  []OrderKey
	Limit    *int
	Offset   *int
}
