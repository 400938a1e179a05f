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

// Package rete is the discrimination network: alpha nodes (single-pattern
// filters with constant-slot pins), beta nodes (two-input hash joins on
// shared variables), builtin nodes (datatype comparisons/arithmetic), and
// terminal production nodes that assert consequent triples back into the
// Fact Store.
package rete

import "github.com/reter-go/reter/term"

// VarSlot is a production-local variable index. Var numbering is scoped
// to one Production's beta/builtin chain — it has no meaning outside it,
// which is what lets the same AlphaNode be shared by productions that
// number their variables differently.
type VarSlot int

// Slot is one position of a Pattern: either a bound Constant or a Var
// reference into the production-local binding tuple.
type Slot struct {
	IsVar bool
	Var   VarSlot  // valid when IsVar
	Const term.ID  // valid when !IsVar
}

// ConstSlot returns a constant Slot.
func ConstSlot(id term.ID) Slot { return Slot{Const: id} }

// VarSlotOf returns a variable Slot referencing v.
func VarSlotOf(v VarSlot) Slot { return Slot{IsVar: true, Var: v} }

// Pattern is a triple pattern: each of S/P/O is independently constant or
// variable.
type Pattern struct {
	S, P, O Slot
}

// shape is the structural dedup key alpha nodes share on: which slots are
// constant, and their values. Two patterns with the same shape (even from
// different productions, with differently-numbered variables in the
// variable slots) share one AlphaNode.
type shape struct {
	sConst, pConst, oConst bool
	sVal, pVal, oVal       term.ID
}

func patternShape(p Pattern) shape {
	sh := shape{sConst: !p.S.IsVar, pConst: !p.P.IsVar, oConst: !p.O.IsVar}
	if sh.sConst {
		sh.sVal = p.S.Const
	}
	if sh.pConst {
		sh.pVal = p.P.Const
	}
	if sh.oConst {
		sh.oVal = p.O.Const
	}
	return sh
}
