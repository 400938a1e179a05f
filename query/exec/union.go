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
	"context"

	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/facts/cache"
	"github.com/reter-go/reter/query/ir"
	"github.com/reter-go/reter/query/plan"
	"github.com/reter-go/reter/util/parallel"
)

// runUnion evaluates every branch of a UNION block independently, seeded
// from its own all-unbound row, and concatenates their rows into a single
// relation. Columns line up because every branch was planned against the
// same slot numbering (up.Branches[i] and block.Branches[i] share variable
// names across branches, and Plan assigns one slot per variable name for
// the whole Query, not per branch). Branches run concurrently via
// parallel.InvokeN: each reads the same snapshot and writes only to its
// own slot of results, so there's no shared mutable state to guard. The
// caller (Engine.Run) joins this relation into the outer rows and into
// every other UnionPlan's relation by shared slots — this function never
// does that joining itself, so nothing here can accidentally
// short-circuit on the first block. fc is the same fact cache the outer
// conjunction populated; cache.FactCache is documented safe for exactly
// this — concurrent joins against one query's snapshot — so branches
// share it rather than each building their own.
func (e *Engine) runUnion(up plan.UnionPlan, block ir.UnionBlock, slots map[ir.Var]int, snap facts.SnapshotHandle, fc cache.FactCache, numVars int) []Row {
	results := make([][]Row, len(up.Branches))
	parallel.InvokeN(context.Background(), len(up.Branches), func(_ context.Context, i int) error {
		seed := []Row{newRow(numVars)}
		results[i] = e.runBlock(up.Branches[i].Steps, block.Branches[i], nil, slots, snap, fc, seed)
		return nil
	})

	var out []Row
	for _, rows := range results {
		out = append(out, rows...)
	}
	return out
}
