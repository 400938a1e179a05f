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

// Package axiom defines the abstract axiom IR the core accepts — the only
// input shape it understands — and the Axiom Compiler that translates it
// into RETE productions and direct fact assertions.
//
// Axiom and ConceptExpr are modelled as tagged sums (an interface plus a
// fixed set of implementing structs with exhaustive type-switch handling),
// not a polymorphic class hierarchy: this keeps compiler passes as plain
// pattern matches and makes every node trivially comparable/serialisable.
package axiom

import "github.com/reter-go/reter/term"

// SourceTag is this package's own string type for facts.SourceTag, so
// callers building an Axiom IR don't need to import facts directly just to
// tag an axiom; it is converted to facts.SourceTag when compiled.
type SourceTag string

// Axiom is the tagged-sum root of the axiom IR. Every concrete axiom type
// in this package implements it.
type Axiom interface {
	// Tag returns this source tag, or "" if the axiom was loaded without
	// one and so cannot later be retracted by tag.
	Tag() SourceTag
}

// base is embedded by every Axiom implementation to carry the optional
// SourceTag.
type base struct {
	Source SourceTag
}

func (b base) Tag() SourceTag { return b.Source }

// ClassAssertion is C(i): individual i is an instance of concept C.
type ClassAssertion struct {
	base
	Individual term.ID
	Class      ConceptExpr
}

// RoleAssertion is R(i,j): individual i relates to individual j via role R.
type RoleAssertion struct {
	base
	Role    term.ID
	Subject term.ID
	Object  term.ID
}

// DataAssertion is R(i, lit): individual i relates to a typed literal via
// a data property R.
type DataAssertion struct {
	base
	Role    term.ID
	Subject term.ID
	Value   term.ID // a literal ID, per term.Store.InternLiteral
}

// SubClassOf is C ⊑ D.
type SubClassOf struct {
	base
	Sub, Super ConceptExpr
}

// EquivClasses is C ≡ D.
type EquivClasses struct {
	base
	A, B ConceptExpr
}

// DisjointClasses is DisjointClasses(C,D).
type DisjointClasses struct {
	base
	A, B ConceptExpr
}

// SubRole is R ⊑ S.
type SubRole struct {
	base
	Sub, Super term.ID
}

// EquivRoles is R ≡ S.
type EquivRoles struct {
	base
	A, B term.ID
}

// DisjointRoles is DisjointRoles(R,S).
type DisjointRoles struct {
	base
	A, B term.ID
}

// InverseRoles is R ≡ S⁻.
type InverseRoles struct {
	base
	R, S term.ID
}

// RoleChain is R ∘ S ⊑ T.
type RoleChain struct {
	base
	First, Second, Super term.ID
}

// FunctionalRole is Functional(R).
type FunctionalRole struct {
	base
	Role term.ID
}

// InverseFunctionalRole is InverseFunctional(R).
type InverseFunctionalRole struct {
	base
	Role term.ID
}

// TransitiveRole is Transitive(R).
type TransitiveRole struct {
	base
	Role term.ID
}

// SymmetricRole is Symmetric(R).
type SymmetricRole struct {
	base
	Role term.ID
}

// AsymmetricRole is Asymmetric(R).
type AsymmetricRole struct {
	base
	Role term.ID
}

// ReflexiveRole is Reflexive(R).
type ReflexiveRole struct {
	base
	Role term.ID
}

// IrreflexiveRole is Irreflexive(R).
type IrreflexiveRole struct {
	base
	Role term.ID
}

// SameAs is sameAs(i,j).
type SameAs struct {
	base
	A, B term.ID
}

// DifferentFrom is differentFrom(i,j).
type DifferentFrom struct {
	base
	A, B term.ID
}

// HasKey is HasKey(C, k1...kn): within C, the tuple of key roles
// functionally determines the individual.
type HasKey struct {
	base
	Class ConceptExpr
	Keys  []term.ID
}

// DatatypeDefinition associates a name with a datatype tag. The compiler
// accepts it and ignores it: it generates no rules from it and validates
// nothing against it.
type DatatypeDefinition struct {
	base
	Name     term.ID
	Datatype string
}

// SwrlAtom is one atom of a SWRL rule body or head: either a class atom
// C(x), a role atom R(x,y), or a builtin call.
type SwrlAtom struct {
	// Exactly one of Class, Role, or Builtin is set.
	Class   ConceptExpr
	Role    term.ID
	Builtin *BuiltinCall

	// Args are the SWRL argument variables/constants for this atom, in
	// the atom's declared arity order. For a Class atom there's 1; for a
	// Role atom there are 2; for a Builtin atom there are len(args).
	Args []SwrlTerm
}

// SwrlTerm is either a rule-scoped variable or a ground constant.
type SwrlTerm struct {
	IsVar bool
	Var   string  // valid when IsVar
	Const term.ID // valid when !IsVar
}

// BuiltinCall names a builtin predicate/function (ge, lt, stringLength,
// matches, ...) and is shared between SWRL atoms and productions.
type BuiltinCall struct {
	Name string
	Args []SwrlTerm
}

// SwrlRule is a SWRL rule: Body atoms (conjunction) imply Head atoms.
type SwrlRule struct {
	base
	Body []SwrlAtom
	Head []SwrlAtom
}
