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

import "github.com/reter-go/reter/term"

// Traverse returns the subgraph of edges reachable from root within
// maxDepth hops, where edges is a two-column Table (subject, object)
// produced by an earlier Select-style relation. Depth counts edges, not
// nodes: maxDepth 0 always returns an empty Table, and a root absent from
// edges returns an empty Table rather than the whole graph — the subgraph-
// only semantics this operator exists to guarantee, as opposed to
// returning every edge regardless of reachability.
func (e *Engine) Traverse(edges *Table, root term.ID, maxDepth int) *Table {
	out := &Table{Vars: edges.Vars}

	adj := make(map[term.ID][]int, len(edges.Rows))
	for i, row := range edges.Rows {
		adj[row[0]] = append(adj[row[0]], i)
	}

	visited := map[term.ID]bool{root: true}
	frontier := []term.ID{root}
	var resultIdx []int

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []term.ID
		for _, node := range frontier {
			for _, idx := range adj[node] {
				resultIdx = append(resultIdx, idx)
				obj := edges.Rows[idx][1]
				if !visited[obj] {
					visited[obj] = true
					next = append(next, obj)
				}
			}
		}
		frontier = next
	}

	for _, idx := range resultIdx {
		out.Rows = append(out.Rows, edges.Rows[idx])
	}
	return out
}
