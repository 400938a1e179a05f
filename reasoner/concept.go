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

package reasoner

import (
	"fmt"

	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/internal/errorsx"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/term"
)

// conceptPatterns translates a concept expression into the patterns that
// test membership of variable x in it, using the same translation
// axiom.Compiler's compileAntecedent uses for each of these shapes when
// building a production's LHS, but emitting
// query/ir.Pattern for a one-off InstancesOf query instead of rete.Pattern
// for a standing production:
//
//	Atomic   -> ?x rdf:type C
//	C ⊓ D    -> the patterns for C, then for D
//	∃R.C     -> ?x R ?y, ?y rdf:type C  (y fresh)
//	{i}      -> ?x R i           (HasValue)
//	∃R.Self  -> ?x R ?x          (HasSelf)
//
// Every other concept shape InstancesOf might be asked about (Top,
// Bottom, Or, Not, Only, cardinality restrictions, OneOf) would require
// either enumerating every individual in the Fact Store or reasoning the
// query engine's join planner can't soundly express, so they're rejected
// rather than silently approximated. compileAntecedent accepts two of
// these, Top (no pattern) and a minimum cardinality of at most 1; this
// function rejects both.
func conceptPatterns(terms *term.Store, expr axiom.ConceptExpr, x ir.Var, fresh func() ir.Var) ([]ir.Pattern, error) {
	typeRole := terms.InternName(term.NameType)
	switch cls := expr.(type) {
	case axiom.Atomic:
		return []ir.Pattern{{S: ir.VarTerm(x), P: ir.ConstTerm(typeRole), O: ir.ConstTerm(cls.Name)}}, nil
	case axiom.And:
		left, err := conceptPatterns(terms, cls.Left, x, fresh)
		if err != nil {
			return nil, err
		}
		right, err := conceptPatterns(terms, cls.Right, x, fresh)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	case axiom.Some:
		y := fresh()
		inner, err := conceptPatterns(terms, cls.Of, y, fresh)
		if err != nil {
			return nil, err
		}
		edge := ir.Pattern{S: ir.VarTerm(x), P: ir.ConstTerm(cls.Role), O: ir.VarTerm(y)}
		return append([]ir.Pattern{edge}, inner...), nil
	case axiom.HasValue:
		return []ir.Pattern{{S: ir.VarTerm(x), P: ir.ConstTerm(cls.Role), O: ir.ConstTerm(cls.Individual)}}, nil
	case axiom.HasSelf:
		return []ir.Pattern{{S: ir.VarTerm(x), P: ir.ConstTerm(cls.Role), O: ir.VarTerm(x)}}, nil
	default:
		return nil, errorsx.Wrapf(fmt.Errorf("concept expression %T", expr), "instances_of: unsupported concept shape")
	}
}
