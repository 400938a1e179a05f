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

import "github.com/reter-go/reter/term"

// Expr is one node of a FILTER expression tree: a variable reference, a
// literal constant, or a call to a named operator. The operator names are
// deliberately the same ones SWRL builtins use (rete.DefaultBuiltins) —
// FILTER and SWRL builtin evaluation share one registry.
type Expr struct {
	IsVar   bool
	Var     Var
	IsConst bool
	Const   term.ID

	// Op and Args are set when this node is neither a var nor a const.
	Op   string
	Args []Expr
}

// VarExpr returns a variable-reference Expr.
func VarExpr(v Var) Expr { return Expr{IsVar: true, Var: v} }

// ConstExpr returns a constant Expr.
func ConstExpr(id term.ID) Expr { return Expr{IsConst: true, Const: id} }

// CallExpr returns an operator-call Expr.
func CallExpr(op string, args ...Expr) Expr { return Expr{Op: op, Args: args} }

// AppendVars appends every variable e (or any of its arguments,
// recursively) references to out.
func (e Expr) AppendVars(out []Var) []Var {
	if e.IsVar {
		return append(out, e.Var)
	}
	for _, a := range e.Args {
		out = a.AppendVars(out)
	}
	return out
}
