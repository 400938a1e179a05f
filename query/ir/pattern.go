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

// Package ir is the conjunctive query IR a caller builds by hand (or a
// SPARQL-ish surface syntax, out of scope here, translates into): triple
// patterns, UNION/MINUS blocks, a FILTER expression tree, and the usual
// DISTINCT/ORDER BY/LIMIT/OFFSET modifiers.
package ir

import "github.com/reter-go/reter/term"

// Var is a query-scoped variable name, without the "?" sigil surface
// syntax would use.
type Var string

// Term is one slot of a triple pattern: a bound constant or a variable.
type Term struct {
	IsVar bool
	Var   Var
	Const term.ID
}

// VarTerm returns a variable Term.
func VarTerm(v Var) Term { return Term{IsVar: true, Var: v} }

// ConstTerm returns a bound Term.
func ConstTerm(id term.ID) Term { return Term{Const: id} }

// Pattern is one triple pattern: each of S/P/O is independently constant
// or variable.
type Pattern struct {
	S, P, O Term
}

// AppendVars appends every variable p references, in S,P,O order, to out.
func (p Pattern) AppendVars(out []Var) []Var {
	for _, t := range [3]Term{p.S, p.P, p.O} {
		if t.IsVar {
			out = append(out, t.Var)
		}
	}
	return out
}
