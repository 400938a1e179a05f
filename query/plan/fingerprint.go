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

package plan

import (
	"fmt"
	"strings"

	"github.com/reter-go/reter/query/ir"
)

// Fingerprint returns a structural key for q: two queries with the same
// pattern shapes (which slots are constant vs. variable, which variables
// co-occur where) but different constant values or variable spellings
// produce the same fingerprint. Cache uses this to hit the same compiled
// Plan across queries that differ only in their bound constants.
func Fingerprint(q *ir.Query) string {
	fp := &fingerprinter{slots: make(map[ir.Var]int)}
	var sb strings.Builder
	fp.writeQuery(&sb, q)
	return sb.String()
}

type fingerprinter struct {
	slots map[ir.Var]int
	next  int
}

func (fp *fingerprinter) slot(v ir.Var) int {
	if s, ok := fp.slots[v]; ok {
		return s
	}
	s := fp.next
	fp.next++
	fp.slots[v] = s
	return s
}

func (fp *fingerprinter) writeTerm(sb *strings.Builder, t ir.Term) {
	if t.IsVar {
		fmt.Fprintf(sb, "v%d", fp.slot(t.Var))
		return
	}
	sb.WriteByte('c')
}

func (fp *fingerprinter) writePattern(sb *strings.Builder, p ir.Pattern) {
	sb.WriteByte('(')
	fp.writeTerm(sb, p.S)
	sb.WriteByte(',')
	fp.writeTerm(sb, p.P)
	sb.WriteByte(',')
	fp.writeTerm(sb, p.O)
	sb.WriteByte(')')
}

func (fp *fingerprinter) writeExpr(sb *strings.Builder, e ir.Expr) {
	switch {
	case e.IsVar:
		fmt.Fprintf(sb, "v%d", fp.slot(e.Var))
	case e.IsConst:
		sb.WriteByte('c')
	default:
		sb.WriteString(e.Op)
		sb.WriteByte('[')
		for _, a := range e.Args {
			fp.writeExpr(sb, a)
			sb.WriteByte(',')
		}
		sb.WriteByte(']')
	}
}

func (fp *fingerprinter) writeQuery(sb *strings.Builder, q *ir.Query) {
	sb.WriteString("SEL[")
	for _, v := range q.Select {
		fmt.Fprintf(sb, "v%d,", fp.slot(v))
	}
	sb.WriteByte(']')
	if q.Ask {
		sb.WriteString("ASK")
	}
	if q.Describe != nil {
		fmt.Fprintf(sb, "DESC[v%d]", fp.slot(*q.Describe))
	}
	sb.WriteString("P[")
	for _, p := range q.Patterns {
		fp.writePattern(sb, p)
	}
	sb.WriteString("]U[")
	for _, u := range q.Unions {
		sb.WriteByte('{')
		for _, branch := range u.Branches {
			sb.WriteByte('[')
			for _, p := range branch {
				fp.writePattern(sb, p)
			}
			sb.WriteByte(']')
		}
		sb.WriteByte('}')
	}
	sb.WriteString("]M[")
	for _, m := range q.Minuses {
		sb.WriteByte('[')
		for _, p := range m.Patterns {
			fp.writePattern(sb, p)
		}
		sb.WriteByte(']')
	}
	sb.WriteString("]F[")
	for _, f := range q.Filters {
		fp.writeExpr(sb, f)
		sb.WriteByte(';')
	}
	sb.WriteByte(']')
	if q.Distinct {
		sb.WriteByte('D')
	}
	sb.WriteString("O[")
	for _, o := range q.OrderBy {
		fmt.Fprintf(sb, "v%d:%v,", fp.slot(o.Var), o.Desc)
	}
	sb.WriteByte(']')
	if q.Limit != nil {
		fmt.Fprintf(sb, "L%d", *q.Limit)
	}
	if q.Offset != nil {
		fmt.Fprintf(sb, "O%d", *q.Offset)
	}
}
