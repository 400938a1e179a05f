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

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reasoner groups the metrics one reasoner instance reports: how long it
// spends loading axioms and pumping the network to quiescence, how many
// triples end up live, and how long query execution takes.
type Reasoner struct {
	LoadAxiomsDurationSeconds prometheus.Summary
	ReasonDurationSeconds     prometheus.Summary
	RetractSourceDurationSeconds prometheus.Summary
	QueryDurationSeconds      prometheus.Summary

	TriplesLive       prometheus.Gauge
	ProductionsActive prometheus.Gauge
	NonRLAxiomsTotal  prometheus.Counter
	InconsistenciesTotal prometheus.Counter
}

// NewReasoner registers a fresh set of reasoner metrics against r. Pass
// prometheus.NewRegistry() for an isolated test registry, or
// prometheus.DefaultRegisterer for the process-wide one.
func NewReasoner(r prometheus.Registerer) *Reasoner {
	mr := Registry{R: r}
	objectives := map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001}
	return &Reasoner{
		LoadAxiomsDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace: "reter", Subsystem: "reasoner",
			Name:       "load_axioms_duration_seconds",
			Help:       "Time spent compiling and propagating one LoadAxioms batch.",
			Objectives: objectives,
		}),
		ReasonDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace: "reter", Subsystem: "reasoner",
			Name:       "reason_duration_seconds",
			Help:       "Time spent in Reason() pumping the network to quiescence; near zero once already quiescent.",
			Objectives: objectives,
		}),
		RetractSourceDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace: "reter", Subsystem: "reasoner",
			Name:       "retract_source_duration_seconds",
			Help:       "Time spent retracting a source tag, including its derivation cascade.",
			Objectives: objectives,
		}),
		QueryDurationSeconds: mr.NewSummary(prometheus.SummaryOpts{
			Namespace: "reter", Subsystem: "query",
			Name:       "execute_duration_seconds",
			Help:       "Time spent planning and executing one query against a snapshot.",
			Objectives: objectives,
		}),
		TriplesLive: mr.NewGauge(prometheus.GaugeOpts{
			Namespace: "reter", Subsystem: "facts",
			Name: "triples_live", Help: "Number of triples currently live in the Fact Store.",
		}),
		ProductionsActive: mr.NewGauge(prometheus.GaugeOpts{
			Namespace: "reter", Subsystem: "rete",
			Name: "productions_active", Help: "Number of compiled productions currently wired into the network.",
		}),
		NonRLAxiomsTotal: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "reter", Subsystem: "infer",
			Name: "non_rl_axioms_total", Help: "Axioms rejected as outside the supported profile, cumulative.",
		}),
		InconsistenciesTotal: mr.NewCounter(prometheus.CounterOpts{
			Namespace: "reter", Subsystem: "infer",
			Name: "inconsistencies_total", Help: "InconsistentOntology events raised by CheckConsistency, cumulative.",
		}),
	}
}
