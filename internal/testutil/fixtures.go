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

// Package testutil holds small fixture builders for this module's package
// tests (the reasoner package's tests use it): a Terms helper for naming
// individuals/classes/roles tersely, and constructors for the handful of
// axiom/triple shapes that recur in them.
package testutil

import (
	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/term"
)

// Terms wraps a term.Store with short, name-indexed helpers so a test can
// write Terms.ID("Person") instead of re-interning the same string at
// every call site.
type Terms struct {
	*term.Store
}

// NewTerms returns a Terms wrapping a fresh term.Store.
func NewTerms() Terms {
	return Terms{term.NewStore()}
}

// ID interns name and returns its id, exactly like term.Store.InternName
// but named to read well in test fixtures: Terms.ID("worksAt").
func (t Terms) ID(name string) term.ID {
	return t.InternName(name)
}

// IDs interns every name in names, in order.
func (t Terms) IDs(names ...string) []term.ID {
	out := make([]term.ID, len(names))
	for i, n := range names {
		out[i] = t.ID(n)
	}
	return out
}

// Lit interns a literal with the given lexical form and datatype.
func (t Terms) Lit(lex, datatype string) term.ID {
	return t.InternLiteral(lex, datatype)
}

// Triple builds a facts.Triple from three names, interning each, for
// tests that assert against a facts.Store directly rather than through an
// axiom.
func (t Terms) Triple(s, p, o string) facts.Triple {
	return facts.Triple{Subject: t.ID(s), Predicate: t.ID(p), Object: t.ID(o)}
}

// Class returns an axiom.Atomic concept expression for name.
func (t Terms) Class(name string) axiom.ConceptExpr {
	return axiom.Atomic{Name: t.ID(name)}
}

// ClassAssertion builds a ClassAssertion(individual, class) axiom tagged
// with source. The embedding base type is unexported, so the tag is set
// through the promoted Source field rather than a composite literal.
func (t Terms) ClassAssertion(source, individual, class string) axiom.ClassAssertion {
	ca := axiom.ClassAssertion{Individual: t.ID(individual), Class: t.Class(class)}
	ca.Source = axiom.SourceTag(source)
	return ca
}

// RoleAssertion builds a RoleAssertion(role, subject, object) axiom
// tagged with source.
func (t Terms) RoleAssertion(source, role, subject, object string) axiom.RoleAssertion {
	ra := axiom.RoleAssertion{Role: t.ID(role), Subject: t.ID(subject), Object: t.ID(object)}
	ra.Source = axiom.SourceTag(source)
	return ra
}

// SubClassOf builds a sub ⊑ super axiom between two atomic classes,
// tagged with source.
func (t Terms) SubClassOf(source, sub, super string) axiom.SubClassOf {
	sc := axiom.SubClassOf{Sub: t.Class(sub), Super: t.Class(super)}
	sc.Source = axiom.SourceTag(source)
	return sc
}
