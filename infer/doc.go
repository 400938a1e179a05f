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

// Package infer drives the discrimination network to a fixed point: it
// loads axioms through the Axiom Compiler, pushes every resulting ground
// assertion into the rete.Network, pumps the network's propagation queue
// to quiescence, and records diagnostic events (NonRLAxiom warnings,
// inconsistencies) raised along the way.
//
// It also owns source retraction: undoing a source tag walks every
// triple that loses its justification as a consequence, cascading
// through the Fact Store's counting-based invalidation rather than a
// separate truth-maintenance graph.
package infer
