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

import (
	"testing"

	"github.com/reter-go/reter/term"
	"github.com/stretchr/testify/assert"
)

func TestPattern_AppendVars(t *testing.T) {
	c := term.ID(7)
	p := Pattern{S: VarTerm("x"), P: ConstTerm(c), O: VarTerm("y")}
	assert.Equal(t, []Var{"x", "y"}, p.AppendVars(nil))
}

func TestPattern_AppendVars_AllConst(t *testing.T) {
	p := Pattern{S: ConstTerm(1), P: ConstTerm(2), O: ConstTerm(3)}
	assert.Empty(t, p.AppendVars(nil))
}

func TestUnionBlock_AppendVars_AcrossBranches(t *testing.T) {
	u := UnionBlock{Branches: [][]Pattern{
		{{S: VarTerm("x"), P: ConstTerm(1), O: VarTerm("y")}},
		{{S: VarTerm("x"), P: ConstTerm(2), O: VarTerm("z")}},
	}}
	assert.Equal(t, []Var{"x", "y", "x", "z"}, u.AppendVars(nil))
}

func TestMinusBlock_AppendVars(t *testing.T) {
	m := MinusBlock{Patterns: []Pattern{{S: VarTerm("x"), P: ConstTerm(1), O: VarTerm("y")}}}
	assert.Equal(t, []Var{"x", "y"}, m.AppendVars(nil))
}

func TestExpr_AppendVars_Nested(t *testing.T) {
	e := CallExpr("lessThan", VarExpr("x"), CallExpr("add", VarExpr("y"), ConstExpr(5)))
	assert.Equal(t, []Var{"x", "y"}, e.AppendVars(nil))
}

func TestExpr_AppendVars_ConstOnly(t *testing.T) {
	e := ConstExpr(42)
	assert.Empty(t, e.AppendVars(nil))
}
