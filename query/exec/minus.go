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
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/facts/cache"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/query/plan"
	"github.com/reter-go/reter/term"
)

// applyMinus removes every row of rows that is compatible with some
// solution to mp's body: a row and a minus-body solution are compatible
// when they share at least one bound slot and every slot bound in both
// agrees, regardless of slots bound in only one of them. Variables that
// appear only inside the MINUS body never reach this comparison through
// anything but that agreement check, so they can't cause an
// otherwise-unrelated row to be dropped.
func (e *Engine) applyMinus(rows []Row, mp plan.MinusPlan, block ir.MinusBlock, slots map[ir.Var]int, snap facts.SnapshotHandle, fc cache.FactCache, numVars int) []Row {
	if len(rows) == 0 {
		return rows
	}
	seed := []Row{newRow(numVars)}
	minusRows := e.runBlock(mp.Block.Steps, block.Patterns, nil, slots, snap, fc, seed)
	if len(minusRows) == 0 {
		return rows
	}

	var out []Row
	for _, row := range rows {
		excluded := false
		for _, mr := range minusRows {
			if compatible(row, mr) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, row)
		}
	}
	return out
}

// compatible reports whether l and r share at least one bound slot and
// agree on every slot bound in both. It is mergeRows' agreement test plus
// the shared-slot requirement: two rows with no bound slot in common are
// not compatible, so a MINUS body sharing no variable removes nothing.
func compatible(l, r Row) bool {
	shared := false
	for i := range l {
		if l[i] != term.Zero && r[i] != term.Zero {
			if l[i] != r[i] {
				return false
			}
			shared = true
		}
	}
	return shared
}
