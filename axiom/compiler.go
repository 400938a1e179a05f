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

import (
	"fmt"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/rete"
	"github.com/reter-go/reter/term"
)

// NonRLAxiomWarning is returned (never panics) when an axiom falls
// outside the profile this compiler implements: a concept expression
// whose right-hand side would need to mint a fresh existential individual
// to satisfy, or a role marked both Transitive and participating in a
// cardinality restriction. The caller decides whether to skip the axiom,
// abort loading, or surface it to an operator.
type NonRLAxiomWarning struct {
	Axiom  Axiom
	Reason string
}

func (w *NonRLAxiomWarning) Error() string {
	return fmt.Sprintf("axiom outside supported profile: %s", w.Reason)
}

// Compiler translates the axiom IR into RETE productions (registered into
// a rete.Network) and, for axioms with no antecedent to wait on, direct
// fact assertions. One Compiler is bound to one Term Store, Fact Store
// and Network for its lifetime.
type Compiler struct {
	terms   *term.Store
	facts   *facts.Store
	network *rete.Network

	nextVar rete.VarSlot
	// cardinalityRoles records every role referenced by a Min/Max/Exact
	// cardinality restriction compiled so far, so a later TransitiveRole
	// axiom on the same role can be rejected (and vice versa).
	cardinalityRoles map[term.ID]bool
	transitiveRoles  map[term.ID]bool

	// onAssert, if set, is called for every ground triple newly added to
	// the Fact Store while compiling an axiom. The Inference Driver uses
	// this to learn which deltas it must push into the network.
	onAssert func(facts.Triple, facts.TripleID)
}

// NewCompiler returns a Compiler wired against the given stores and
// network.
func NewCompiler(terms *term.Store, factStore *facts.Store, network *rete.Network) *Compiler {
	return &Compiler{
		terms:            terms,
		facts:            factStore,
		network:          network,
		cardinalityRoles: make(map[term.ID]bool),
		transitiveRoles:  make(map[term.ID]bool),
	}
}

// SetOnAssert installs fn as the callback invoked for every newly added
// ground triple. Passing nil disables the callback.
func (c *Compiler) SetOnAssert(fn func(facts.Triple, facts.TripleID)) {
	c.onAssert = fn
}

// assert asserts tr tagged with source, notifying onAssert if this was a
// new triple.
func (c *Compiler) assert(tr facts.Triple, source facts.SourceTag) {
	res := c.facts.Assert(tr, source)
	if res.Added && c.onAssert != nil {
		c.onAssert(tr, res.ID)
	}
}

// Compile translates one axiom. It either asserts ground facts directly,
// registers one or more rete.Productions, or returns a *NonRLAxiomWarning
// if ax needs constructs outside the supported profile.
func (c *Compiler) Compile(ax Axiom) error {
	tag := facts.SourceTag(ax.Tag())
	switch a := ax.(type) {
	case ClassAssertion:
		return c.compileClassAssertion(a, tag)
	case RoleAssertion:
		c.assert(facts.Triple{Subject: a.Subject, Predicate: a.Role, Object: a.Object}, tag)
		return nil
	case DataAssertion:
		c.assert(facts.Triple{Subject: a.Subject, Predicate: a.Role, Object: a.Value}, tag)
		return nil
	case SubClassOf:
		return c.compileSubClassOf(a, tag)
	case EquivClasses:
		if err := c.compileSubClassOf(SubClassOf{base: a.base, Sub: a.A, Super: a.B}, tag); err != nil {
			return err
		}
		return c.compileSubClassOf(SubClassOf{base: a.base, Sub: a.B, Super: a.A}, tag)
	case DisjointClasses:
		return c.compileDisjointClasses(a, tag)
	case SubRole:
		c.compileSubRole(a.Sub, a.Super, tag)
		return nil
	case EquivRoles:
		c.compileSubRole(a.A, a.B, tag)
		c.compileSubRole(a.B, a.A, tag)
		return nil
	case DisjointRoles:
		return nil // not compiled into productions, and not tracked by the Inference Driver's consistency check either
	case InverseRoles:
		c.compileInverseRoles(a, tag)
		return nil
	case RoleChain:
		c.compileRoleChain(a, tag)
		return nil
	case FunctionalRole:
		c.compileFunctionalRole(a, tag)
		return nil
	case InverseFunctionalRole:
		c.compileInverseFunctionalRole(a, tag)
		return nil
	case TransitiveRole:
		if c.cardinalityRoles[a.Role] {
			return &NonRLAxiomWarning{Axiom: ax, Reason: "role is both Transitive and used in a cardinality restriction"}
		}
		c.transitiveRoles[a.Role] = true
		c.compileTransitiveRole(a, tag)
		return nil
	case SymmetricRole:
		c.compileSymmetricRole(a, tag)
		return nil
	case AsymmetricRole, ReflexiveRole, IrreflexiveRole:
		return nil // not rule-generating; the Inference Driver checks Asymmetric and Irreflexive, Reflexive is not checked
	case SameAs:
		c.assert(facts.Triple{Subject: a.A, Predicate: c.terms.InternName(term.NameSameAs), Object: a.B}, tag)
		return nil
	case DifferentFrom:
		c.assert(facts.Triple{Subject: a.A, Predicate: c.terms.InternName(term.NameDifferentFrom), Object: a.B}, tag)
		return nil
	case HasKey:
		return c.compileHasKey(a, tag)
	case DatatypeDefinition:
		return nil // ignored: nothing is compiled from it and nothing is validated against it
	case SwrlRule:
		return c.compileSwrlRule(a, tag)
	default:
		return fmt.Errorf("axiom: unknown axiom type %T", ax)
	}
}

func (c *Compiler) freshVar() rete.VarSlot {
	v := c.nextVar
	c.nextVar++
	return v
}

func (c *Compiler) typeRole() term.ID { return c.terms.InternName(term.NameType) }

// compileClassAssertion asserts C(i) directly when C is atomic (Top as
// owl:Thing), and decomposes And into its conjuncts. Every other concept
// shape is rejected with a NonRLAxiomWarning; no production is compiled
// for it.
func (c *Compiler) compileClassAssertion(a ClassAssertion, tag facts.SourceTag) error {
	switch cls := a.Class.(type) {
	case Atomic:
		c.assert(facts.Triple{Subject: a.Individual, Predicate: c.typeRole(), Object: cls.Name}, tag)
		return nil
	case Top:
		c.assert(facts.Triple{Subject: a.Individual, Predicate: c.typeRole(), Object: c.terms.InternName(term.NameThing)}, tag)
		return nil
	case And:
		if err := c.compileClassAssertion(ClassAssertion{base: a.base, Individual: a.Individual, Class: cls.Left}, tag); err != nil {
			return err
		}
		return c.compileClassAssertion(ClassAssertion{base: a.base, Individual: a.Individual, Class: cls.Right}, tag)
	default:
		return &NonRLAxiomWarning{Axiom: a, Reason: "class assertion against a non-atomic, non-conjunctive concept expression is not supported as ground input"}
	}
}

// compileSubClassOf is the core of the profile: C ⊑ D becomes a
// production whose body matches C's shape and whose head asserts
// membership in D. Every concept shape on the left-hand side that the
// profile supports is handled; shapes needing a fresh existential on the
// right (e.g. D = ∃R.E with no corresponding R-edge already present)
// are rejected rather than silently dropped.
func (c *Compiler) compileSubClassOf(a SubClassOf, tag facts.SourceTag) error {
	if err := c.noteCardinalityRoles(a.Sub); err != nil {
		return err
	}
	if err := c.noteCardinalityRoles(a.Super); err != nil {
		return err
	}

	x := c.freshVar()
	body, bindErr := c.compileAntecedent(a.Sub, x)
	if bindErr != nil {
		return bindErr
	}
	head, err := c.compileConsequent(a.Super, x)
	if err != nil {
		return err
	}
	p := &rete.Production{LHS: body, RHS: head, NumVars: int(c.nextVar), SourceTag: tag}
	c.network.Compile(p)
	return nil
}

// compileAntecedent compiles a concept expression into the LHS patterns
// that test whether individual var is a member of it, per spec table:
//   Atomic         -> ?x rdf:type C
//   Top            -> no pattern
//   C ⊓ D          -> the patterns for C, then for D
//   ∃R.C           -> ?x R ?y, ?y rdf:type C  (y fresh)
//   ∃R.{i}         -> ?x R i   (HasValue)
//   ∃R.Self        -> ?x R ?x  (HasSelf)
//   ≥n R.C         -> no pattern for n = 0, as ∃R.C for n = 1
// Every other shape, and ≥n R.C with n > 1, is rejected with a
// NonRLAxiomWarning.
func (c *Compiler) compileAntecedent(expr ConceptExpr, x rete.VarSlot) ([]rete.Pattern, error) {
	switch cls := expr.(type) {
	case Atomic:
		return []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(c.typeRole()), O: rete.ConstSlot(cls.Name)}}, nil
	case Top:
		return nil, nil // ?x type owl:Thing is true of everything already typed; no antecedent needed
	case And:
		left, err := c.compileAntecedent(cls.Left, x)
		if err != nil {
			return nil, err
		}
		right, err := c.compileAntecedent(cls.Right, x)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	case Some:
		y := c.freshVar()
		inner, err := c.compileAntecedent(cls.Of, y)
		if err != nil {
			return nil, err
		}
		edge := rete.Pattern{S: rete.VarSlotOf(x), P: rete.ConstSlot(cls.Role), O: rete.VarSlotOf(y)}
		return append([]rete.Pattern{edge}, inner...), nil
	case HasValue:
		return []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(cls.Role), O: rete.ConstSlot(cls.Individual)}}, nil
	case HasSelf:
		return []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(cls.Role), O: rete.VarSlotOf(x)}}, nil
	case MinCard:
		if cls.N < 1 {
			return nil, nil // "at least zero" holds vacuously
		}
		// Only n=1 is expressible as a plain edge test; n>1 would need
		// counting distinct fillers, which the antecedent side can't do.
		if cls.N > 1 {
			return nil, &NonRLAxiomWarning{Reason: "minimum cardinality greater than 1 cannot appear on the left of a subsumption in this profile"}
		}
		y := c.freshVar()
		inner, err := c.compileAntecedent(cls.Of, y)
		if err != nil {
			return nil, err
		}
		edge := rete.Pattern{S: rete.VarSlotOf(x), P: rete.ConstSlot(cls.Role), O: rete.VarSlotOf(y)}
		return append([]rete.Pattern{edge}, inner...), nil
	default:
		return nil, &NonRLAxiomWarning{Reason: fmt.Sprintf("concept expression %T cannot appear on the left of a subsumption in this profile", expr)}
	}
}

// noteCardinalityRoles walks expr for Min/Max/ExactCard restrictions and
// records their roles, rejecting one that's already marked Transitive —
// the profile forbids combining unbounded role composition with exact
// counting on the same role.
func (c *Compiler) noteCardinalityRoles(expr ConceptExpr) error {
	var role term.ID
	var found bool
	switch cls := expr.(type) {
	case MinCard:
		role, found = cls.Role, true
	case MaxCard:
		role, found = cls.Role, true
	case ExactCard:
		role, found = cls.Role, true
	case And:
		if err := c.noteCardinalityRoles(cls.Left); err != nil {
			return err
		}
		return c.noteCardinalityRoles(cls.Right)
	case Or:
		if err := c.noteCardinalityRoles(cls.Left); err != nil {
			return err
		}
		return c.noteCardinalityRoles(cls.Right)
	case Not:
		return c.noteCardinalityRoles(cls.Of)
	case Some:
		return c.noteCardinalityRoles(cls.Of)
	case Only:
		return c.noteCardinalityRoles(cls.Of)
	}
	if !found {
		return nil
	}
	if c.transitiveRoles[role] {
		return &NonRLAxiomWarning{Reason: "role is used in a cardinality restriction and is also Transitive"}
	}
	c.cardinalityRoles[role] = true
	return nil
}

// compileConsequent compiles a concept expression into the RHS triple
// templates to derive once var is known to be a member, rejecting any
// shape that would require minting an individual that doesn't already
// exist in the antecedent's bindings (the defining restriction of OWL 2
// RL's consequent grammar).
func (c *Compiler) compileConsequent(expr ConceptExpr, x rete.VarSlot) ([]rete.Pattern, error) {
	switch cls := expr.(type) {
	case Atomic:
		return []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(c.typeRole()), O: rete.ConstSlot(cls.Name)}}, nil
	case Top:
		return []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(c.typeRole()), O: rete.ConstSlot(c.terms.InternName(term.NameThing))}}, nil
	case Bottom:
		return []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(c.typeRole()), O: rete.ConstSlot(c.terms.InternName(term.NameNothing))}}, nil
	case And:
		left, err := c.compileConsequent(cls.Left, x)
		if err != nil {
			return nil, err
		}
		right, err := c.compileConsequent(cls.Right, x)
		if err != nil {
			return nil, err
		}
		return append(left, right...), nil
	default:
		return nil, &NonRLAxiomWarning{Reason: fmt.Sprintf("concept expression %T on the right of a subsumption would require asserting an existential individual, which is outside this profile", expr)}
	}
}

func (c *Compiler) compileDisjointClasses(a DisjointClasses, tag facts.SourceTag) error {
	// DisjointClasses(C,D) does not itself derive new triples in the
	// supported profile; inconsistency arising from a shared instance is
	// surfaced by the Inference Driver's consistency diagnostics rather
	// than by deriving owl:Nothing membership through a production.
	return nil
}

// compileSubRole is R ⊑ S: ?x R ?y -> ?x S ?y.
func (c *Compiler) compileSubRole(sub, super term.ID, tag facts.SourceTag) {
	x, y := c.freshVar(), c.freshVar()
	p := &rete.Production{
		LHS:     []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(sub), O: rete.VarSlotOf(y)}},
		RHS:     []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(super), O: rete.VarSlotOf(y)}},
		NumVars: int(c.nextVar),
		SourceTag: tag,
	}
	c.network.Compile(p)
}

// compileInverseRoles is R ≡ S⁻: ?x R ?y -> ?y S ?x, and symmetrically.
func (c *Compiler) compileInverseRoles(a InverseRoles, tag facts.SourceTag) {
	x, y := c.freshVar(), c.freshVar()
	c.network.Compile(&rete.Production{
		LHS:       []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(a.R), O: rete.VarSlotOf(y)}},
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(y), P: rete.ConstSlot(a.S), O: rete.VarSlotOf(x)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
	x2, y2 := c.freshVar(), c.freshVar()
	c.network.Compile(&rete.Production{
		LHS:       []rete.Pattern{{S: rete.VarSlotOf(x2), P: rete.ConstSlot(a.S), O: rete.VarSlotOf(y2)}},
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(y2), P: rete.ConstSlot(a.R), O: rete.VarSlotOf(x2)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
}

// compileRoleChain is R ∘ S ⊑ T: ?x R ?y ∧ ?y S ?z -> ?x T ?z.
func (c *Compiler) compileRoleChain(a RoleChain, tag facts.SourceTag) {
	x, y, z := c.freshVar(), c.freshVar(), c.freshVar()
	c.network.Compile(&rete.Production{
		LHS: []rete.Pattern{
			{S: rete.VarSlotOf(x), P: rete.ConstSlot(a.First), O: rete.VarSlotOf(y)},
			{S: rete.VarSlotOf(y), P: rete.ConstSlot(a.Second), O: rete.VarSlotOf(z)},
		},
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(a.Super), O: rete.VarSlotOf(z)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
}

// compileTransitiveRole is Transitive(R): a degenerate role chain R∘R⊑R.
func (c *Compiler) compileTransitiveRole(a TransitiveRole, tag facts.SourceTag) {
	c.compileRoleChain(RoleChain{base: a.base, First: a.Role, Second: a.Role, Super: a.Role}, tag)
}

func (c *Compiler) compileSymmetricRole(a SymmetricRole, tag facts.SourceTag) {
	x, y := c.freshVar(), c.freshVar()
	c.network.Compile(&rete.Production{
		LHS:       []rete.Pattern{{S: rete.VarSlotOf(x), P: rete.ConstSlot(a.Role), O: rete.VarSlotOf(y)}},
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(y), P: rete.ConstSlot(a.Role), O: rete.VarSlotOf(x)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
}

// compileFunctionalRole is Functional(R): two distinct fillers of the
// same functional role on the same subject are sameAs.
// ?x R ?y1 ∧ ?x R ?y2 -> ?y1 sameAs ?y2
func (c *Compiler) compileFunctionalRole(a FunctionalRole, tag facts.SourceTag) {
	x, y1, y2 := c.freshVar(), c.freshVar(), c.freshVar()
	sameAs := c.terms.InternName(term.NameSameAs)
	c.network.Compile(&rete.Production{
		LHS: []rete.Pattern{
			{S: rete.VarSlotOf(x), P: rete.ConstSlot(a.Role), O: rete.VarSlotOf(y1)},
			{S: rete.VarSlotOf(x), P: rete.ConstSlot(a.Role), O: rete.VarSlotOf(y2)},
		},
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(y1), P: rete.ConstSlot(sameAs), O: rete.VarSlotOf(y2)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
}

// compileInverseFunctionalRole is InverseFunctional(R): two distinct
// subjects sharing the same filler are sameAs.
// ?x1 R ?y ∧ ?x2 R ?y -> ?x1 sameAs ?x2
func (c *Compiler) compileInverseFunctionalRole(a InverseFunctionalRole, tag facts.SourceTag) {
	x1, x2, y := c.freshVar(), c.freshVar(), c.freshVar()
	sameAs := c.terms.InternName(term.NameSameAs)
	c.network.Compile(&rete.Production{
		LHS: []rete.Pattern{
			{S: rete.VarSlotOf(x1), P: rete.ConstSlot(a.Role), O: rete.VarSlotOf(y)},
			{S: rete.VarSlotOf(x2), P: rete.ConstSlot(a.Role), O: rete.VarSlotOf(y)},
		},
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(x1), P: rete.ConstSlot(sameAs), O: rete.VarSlotOf(x2)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
}

// compileHasKey is HasKey(C, k1..kn): two instances of C agreeing on every
// key role are sameAs. Compiled as a single production whose LHS holds C's
// patterns for both instances and, for every key role, one edge from each
// instance to a shared fresh filler variable.
func (c *Compiler) compileHasKey(a HasKey, tag facts.SourceTag) error {
	if len(a.Keys) == 0 {
		return &NonRLAxiomWarning{Axiom: a, Reason: "HasKey with no key roles"}
	}
	x1, x2 := c.freshVar(), c.freshVar()
	clsBody1, err := c.compileAntecedent(a.Class, x1)
	if err != nil {
		return err
	}
	clsBody2, err := c.compileAntecedent(a.Class, x2)
	if err != nil {
		return err
	}
	lhs := append(clsBody1, clsBody2...)
	for _, key := range a.Keys {
		v := c.freshVar()
		lhs = append(lhs,
			rete.Pattern{S: rete.VarSlotOf(x1), P: rete.ConstSlot(key), O: rete.VarSlotOf(v)},
			rete.Pattern{S: rete.VarSlotOf(x2), P: rete.ConstSlot(key), O: rete.VarSlotOf(v)},
		)
	}
	sameAs := c.terms.InternName(term.NameSameAs)
	c.network.Compile(&rete.Production{
		LHS:       lhs,
		RHS:       []rete.Pattern{{S: rete.VarSlotOf(x1), P: rete.ConstSlot(sameAs), O: rete.VarSlotOf(x2)}},
		NumVars:   int(c.nextVar),
		SourceTag: tag,
	})
	return nil
}

// compileSwrlRule translates a SWRL rule directly: each body atom becomes
// either an LHS pattern or a builtin call, each head atom an RHS
// template. SWRL variable names are resolved to VarSlots per rule, since
// SWRL rules (unlike OWL axioms) name their own variables instead of
// structurally implying them.
func (c *Compiler) compileSwrlRule(rule SwrlRule, tag facts.SourceTag) error {
	vars := map[string]rete.VarSlot{}
	resolve := func(t SwrlTerm) rete.Slot {
		if !t.IsVar {
			return rete.ConstSlot(t.Const)
		}
		if v, ok := vars[t.Var]; ok {
			return rete.VarSlotOf(v)
		}
		v := c.freshVar()
		vars[t.Var] = v
		return rete.VarSlotOf(v)
	}

	var lhs []rete.Pattern
	var builtins []rete.BuiltinCall
	for _, atom := range rule.Body {
		switch {
		case atom.Builtin != nil:
			args := make([]rete.Slot, len(atom.Builtin.Args))
			for i, t := range atom.Builtin.Args {
				args[i] = resolve(t)
			}
			builtins = append(builtins, rete.BuiltinCall{Name: atom.Builtin.Name, Args: args})
		case atom.Role != term.Zero:
			if len(atom.Args) != 2 {
				return &NonRLAxiomWarning{Reason: "SWRL role atom must have exactly two arguments"}
			}
			lhs = append(lhs, rete.Pattern{S: resolve(atom.Args[0]), P: rete.ConstSlot(atom.Role), O: resolve(atom.Args[1])})
		case atom.Class != nil:
			if len(atom.Args) != 1 {
				return &NonRLAxiomWarning{Reason: "SWRL class atom must have exactly one argument"}
			}
			atomVars := c.nextVar
			body, err := c.swrlClassAntecedent(atom.Class, resolve(atom.Args[0]))
			if err != nil {
				return err
			}
			_ = atomVars
			lhs = append(lhs, body...)
		}
	}

	var rhs []rete.Pattern
	for _, atom := range rule.Head {
		switch {
		case atom.Role != term.Zero && len(atom.Args) == 2:
			rhs = append(rhs, rete.Pattern{S: resolve(atom.Args[0]), P: rete.ConstSlot(atom.Role), O: resolve(atom.Args[1])})
		case atom.Class != nil && len(atom.Args) == 1:
			cls, ok := atom.Class.(Atomic)
			if !ok {
				return &NonRLAxiomWarning{Reason: "SWRL head class atom must be atomic"}
			}
			rhs = append(rhs, rete.Pattern{S: resolve(atom.Args[0]), P: rete.ConstSlot(c.typeRole()), O: rete.ConstSlot(cls.Name)})
		default:
			return &NonRLAxiomWarning{Reason: "unsupported SWRL head atom shape"}
		}
	}

	c.network.Compile(&rete.Production{LHS: lhs, Builtins: builtins, RHS: rhs, NumVars: int(c.nextVar), SourceTag: tag})
	return nil
}

// swrlClassAntecedent compiles a SWRL class atom's concept into LHS
// patterns against an already-resolved slot (which may be a constant if
// the SWRL atom's argument was ground).
func (c *Compiler) swrlClassAntecedent(expr ConceptExpr, slot rete.Slot) ([]rete.Pattern, error) {
	if slot.IsVar {
		return c.compileAntecedent(expr, slot.Var)
	}
	// A ground argument: bind a throwaway variable and require it equal
	// the constant via the pattern's own slot instead of a fresh var.
	v := c.freshVar()
	patterns, err := c.compileAntecedent(expr, v)
	if err != nil {
		return nil, err
	}
	for i := range patterns {
		rewriteVar(&patterns[i].S, v, slot)
		rewriteVar(&patterns[i].P, v, slot)
		rewriteVar(&patterns[i].O, v, slot)
	}
	return patterns, nil
}

func rewriteVar(s *rete.Slot, target rete.VarSlot, replacement rete.Slot) {
	if s.IsVar && s.Var == target {
		*s = replacement
	}
}
