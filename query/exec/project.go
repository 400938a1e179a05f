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

package exec

import (
	"encoding/binary"
	"sort"

	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/query/plan"
	"github.com/reter-go/reter/term"
)

// project applies, in order, DISTINCT, ORDER BY, OFFSET, and LIMIT to rows
// and shapes the result into the Table the caller asked for: the
// projected Select columns, a single-column table of DescribeSlot's
// bindings for a Describe query (the reasoner resolves what a described
// resource's own triples are; this layer only resolves which resource(s)
// the pattern matched), or an empty/non-empty Table standing in for an
// Ask query's boolean.
//
// ORDER BY sorts the full rows before they are projected, so an order key
// may name a variable the Select list leaves out. DISTINCT keeps the first
// row of each duplicate group, so the sorted order carries through it.
func (e *Engine) project(p *plan.Plan, q *ir.Query, rows []Row) *Table {
	if q.Ask {
		return &Table{Rows: boolRows(len(rows) > 0)}
	}

	slots := p.SelectSlots
	vars := q.Select
	if q.Describe != nil {
		slots = []int{*p.DescribeSlot}
		vars = []ir.Var{*q.Describe}
	}

	if len(p.OrderBySlots) > 0 {
		all := make([]int, p.NumVars)
		for i := range all {
			all[i] = i
		}
		e.sortRows(rows, all, p.OrderBySlots)
	}

	projected := make([]Row, len(rows))
	for i, row := range rows {
		out := make(Row, len(slots))
		for j, s := range slots {
			out[j] = row[s]
		}
		projected[i] = out
	}

	if q.Distinct || q.Describe != nil {
		projected = dedupeRows(projected)
	}

	projected = applyOffsetLimit(projected, q.Offset, q.Limit)

	out := &Table{Vars: vars}
	for _, row := range projected {
		out.Rows = append(out.Rows, []term.ID(row))
	}
	return out
}

func boolRows(b bool) [][]term.ID {
	if !b {
		return nil
	}
	return [][]term.ID{{}}
}

func dedupeRows(rows []Row) []Row {
	seen := make(map[string]bool, len(rows))
	var out []Row
	for _, row := range rows {
		key := rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

func rowKey(row Row) string {
	b := make([]byte, len(row)*8)
	for i, v := range row {
		binary.BigEndian.PutUint64(b[i*8:], uint64(v))
	}
	return string(b)
}

// sortRows orders rows by orderSlots, resolving each OrderSlot's Plan slot
// index to its column through projectedSlots (an OrderSlot whose slot
// projectedSlots doesn't list is skipped as a sort key; project passes
// every plan slot, so none is skipped there). Literal values compare
// by their parsed value via the Term Store's cmp_literal contract; two
// resource IDs, or two literals CompareLiteralIDs can't relate, fall back
// to comparing the raw term.ID, which is stable but not meaningful beyond
// ties.
func (e *Engine) sortRows(rows []Row, projectedSlots []int, orderSlots []plan.OrderSlot) {
	pos := make(map[int]int, len(projectedSlots))
	for i, s := range projectedSlots {
		pos[s] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range orderSlots {
			col, ok := pos[o.Slot]
			if !ok {
				continue
			}
			a, b := rows[i][col], rows[j][col]
			if a == b {
				continue
			}
			var less bool
			if e.Terms.IsLiteral(a) && e.Terms.IsLiteral(b) {
				cmp := e.Terms.CompareLiteralIDs(a, b)
				if cmp == term.Incomparable {
					less = a < b
				} else {
					less = cmp == term.Less
				}
			} else {
				less = a < b
			}
			if o.Desc {
				less = !less
			}
			return less
		}
		return false
	})
}

func applyOffsetLimit(rows []Row, offset, limit *int) []Row {
	if offset != nil {
		n := *offset
		if n >= len(rows) {
			return nil
		}
		if n > 0 {
			rows = rows[n:]
		}
	}
	if limit != nil && *limit < len(rows) {
		rows = rows[:*limit]
	}
	return rows
}
