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

// UnionBlock is a UNION of independent branches, each itself a
// conjunction of patterns. Its result is the concatenation of every
// branch's matches, columns aligned by variable name — and, when more
// than one UnionBlock appears in the same Query, each block's relation is
// computed independently and then joined against the outer patterns and
// against every other block's relation by shared variables (never
// short-circuited to just one block; see Query's doc comment).
type UnionBlock struct {
	Branches [][]Pattern
}

// AppendVars appends every variable referenced by any branch of u.
func (u UnionBlock) AppendVars(out []Var) []Var {
	for _, branch := range u.Branches {
		for _, p := range branch {
			out = p.AppendVars(out)
		}
	}
	return out
}

// MinusBlock is a MINUS clause: a conjunction of patterns anti-joined
// against the accumulated solution on whatever variables they share with
// it. Variables that appear only inside a MinusBlock never bind into the
// result.
type MinusBlock struct {
	Patterns []Pattern
}

// AppendVars appends every variable referenced by m's patterns.
func (m MinusBlock) AppendVars(out []Var) []Var {
	for _, p := range m.Patterns {
		out = p.AppendVars(out)
	}
	return out
}

// OrderKey is one ORDER BY term.
type OrderKey struct {
	Var  Var
	Desc bool
}
