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

package axiom

import "github.com/reter-go/reter/term"

// ConceptExpr is the tagged-sum root of concept expressions. isConceptExpr
// is unexported so every implementation must live in this package, which
// is what lets compiler passes exhaustively type-switch over it.
type ConceptExpr interface {
	isConceptExpr()
}

// Atomic is a named concept, e.g. Person.
type Atomic struct{ Name term.ID }

// Top is owl:Thing.
type Top struct{}

// Bottom is owl:Nothing.
type Bottom struct{}

// And is C ⊓ D.
type And struct{ Left, Right ConceptExpr }

// Or is C ⊔ D.
type Or struct{ Left, Right ConceptExpr }

// Not is ¬C.
type Not struct{ Of ConceptExpr }

// Some is ∃R.C.
type Some struct {
	Role term.ID
	Of   ConceptExpr
}

// Only is ∀R.C.
type Only struct {
	Role term.ID
	Of   ConceptExpr
}

// HasValue is R:{i} (∃R.{i}).
type HasValue struct {
	Role       term.ID
	Individual term.ID
}

// HasSelf is ∃R.Self.
type HasSelf struct{ Role term.ID }

// MinCard is ≥n R.C.
type MinCard struct {
	N    int
	Role term.ID
	Of   ConceptExpr
}

// MaxCard is ≤n R.C.
type MaxCard struct {
	N    int
	Role term.ID
	Of   ConceptExpr
}

// ExactCard is =n R.C.
type ExactCard struct {
	N    int
	Role term.ID
	Of   ConceptExpr
}

// OneOf is {i1, ..., in}.
type OneOf struct{ Individuals []term.ID }

func (Atomic) isConceptExpr()    {}
func (Top) isConceptExpr()       {}
func (Bottom) isConceptExpr()    {}
func (And) isConceptExpr()       {}
func (Or) isConceptExpr()        {}
func (Not) isConceptExpr()       {}
func (Some) isConceptExpr()      {}
func (Only) isConceptExpr()      {}
func (HasValue) isConceptExpr()  {}
func (HasSelf) isConceptExpr()   {}
func (MinCard) isConceptExpr()   {}
func (MaxCard) isConceptExpr()   {}
func (ExactCard) isConceptExpr() {}
func (OneOf) isConceptExpr()     {}
