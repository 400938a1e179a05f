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

// Package reasoner is the host-facing API: one Reasoner owns its own Term
// Store, Fact Store, RETE Network, Axiom Compiler (via infer.Driver) and
// Query Engine, so a process may hold as many independent instances as it
// wants with no shared global state.
package reasoner

import (
	"sync"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"

	"github.com/reter-go/reter/axiom"
	"github.com/reter-go/reter/facts"
	"github.com/reter-go/reter/infer"
	"github.com/reter-go/reter/internal/metrics"
	"github.com/reter-go/reter/internal/tracing"
	"github.com/reter-go/reter/query/exec"
	"github.com/reter-go/reter/query/plan"
	"github.com/reter-go/reter/rete"
	"github.com/reter-go/reter/term"
)

// Reasoner is the top-level entry point: LoadAxioms/Assert/RetractSource
// mutate under a single global write mutex, while Select/Ask/Describe/
// Snapshot read lock-free against a snapshot epoch once it's been
// acquired.
type Reasoner struct {
	mu sync.Mutex

	terms   *term.Store
	facts   *facts.Store
	network *rete.Network
	driver  *infer.Driver

	queries *plan.Cache
	engine  *exec.Engine

	metrics *metrics.Reasoner
	tracer  *tracing.Tracer

	log *log.Entry

	swrlEnabled bool
	events      []infer.Event
}

// New constructs a Reasoner with its own, independent Term Store, Fact
// Store and Network.
func New(opts ...Option) *Reasoner {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	terms := term.NewStoreWithHint(o.termCapacityHint)
	store := facts.New()
	network := rete.New(store, terms)
	if o.builtins != nil {
		for name, fn := range o.builtins {
			network.RegisterBuiltin(name, fn)
		}
	}

	r := &Reasoner{
		terms:       terms,
		facts:       store,
		network:     network,
		driver:      infer.New(terms, store, network),
		queries:     plan.NewCache(),
		engine:      exec.New(store, terms),
		metrics:     metrics.NewReasoner(o.metricsRegistry),
		tracer:      o.tracer,
		log:         log.WithField("component", "reasoner"),
		swrlEnabled: o.swrlEnabled,
	}
	for name, fn := range o.builtins {
		r.engine.Builtins[name] = fn
	}
	return r
}

// LoadAxioms compiles axioms to a fixed point, under the write mutex.
// Axioms rejected as outside the supported profile, and any
// inconsistency the resulting fact base exhibits, are appended to the
// diagnostic event log (Events) rather than returned as an error —
// loading continues past either.
func (r *Reasoner) LoadAxioms(axioms []axiom.Axiom) []infer.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := opentracing.StartSpan("reasoner.LoadAxioms")
	defer span.Finish()
	tracing.UpdateMetric(span, r.metrics.LoadAxiomsDurationSeconds)
	start := time.Now()

	var rejected []infer.Event
	if !r.swrlEnabled {
		axioms, rejected = excludeSwrl(axioms)
		r.recordEvents(rejected)
	}

	events := r.driver.LoadAxioms(axioms)
	r.recordEvents(events)

	r.metrics.TriplesLive.Set(float64(liveTripleCount(r.facts)))
	r.metrics.ProductionsActive.Set(float64(r.network.Stats().Productions))
	r.log.WithField("count", len(axioms)).WithField("elapsed", time.Since(start)).Debug("loaded axiom batch")
	return append(rejected, events...)
}

// Reason pumps the network to quiescence. Every mutation already pumps
// as part of Assert/LoadAxioms/RetractSource (rete.Network.Dispatch runs
// synchronously to completion), so in this implementation Reason is
// always a no-op by the time a caller can observe it — matching the
// "noop if already quiescent" contract exactly, rather than approximating
// it.
func (r *Reasoner) Reason() []infer.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := opentracing.StartSpan("reasoner.Reason")
	defer span.Finish()
	tracing.UpdateMetric(span, r.metrics.ReasonDurationSeconds)

	r.network.Pump()
	events := r.driver.CheckConsistency()
	r.recordEvents(events)
	return events
}

// Assert records one ground fact outside of axiom loading, tagged with
// source for later retraction.
func (r *Reasoner) Assert(tr facts.Triple, source facts.SourceTag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.driver.Assert(tr, source)
	r.metrics.TriplesLive.Set(float64(liveTripleCount(r.facts)))
}

// RetractSource undoes every assertion and production tagged with
// source, per the Fact Store's counting-based invalidation cascade.
// Retracting an unknown tag is a no-op, not an error.
func (r *Reasoner) RetractSource(source facts.SourceTag) facts.RetractReport {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := opentracing.StartSpan("reasoner.RetractSource")
	defer span.Finish()
	tracing.UpdateMetric(span, r.metrics.RetractSourceDurationSeconds)

	report := r.driver.RetractSource(source)
	r.metrics.TriplesLive.Set(float64(liveTripleCount(r.facts)))
	r.metrics.ProductionsActive.Set(float64(r.network.Stats().Productions))
	return report
}

// Snapshot returns a read handle callers can run any number of
// concurrent, lock-free queries against.
func (r *Reasoner) Snapshot() facts.SnapshotHandle {
	return r.facts.Snapshot()
}

// Events returns every diagnostic (NonRLAxiom, InconsistentOntology)
// raised so far, oldest first.
func (r *Reasoner) Events() []infer.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]infer.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Stats reports the RETE network's current size, for diagnosing alpha
// node sharing.
func (r *Reasoner) Stats() rete.Stats {
	return r.network.Stats()
}

func (r *Reasoner) recordEvents(events []infer.Event) {
	for _, e := range events {
		switch e.Kind {
		case infer.NonRLAxiom:
			r.metrics.NonRLAxiomsTotal.Inc()
			r.log.WithField("message", e.Message).Warn("axiom rejected as outside the supported profile")
		case infer.InconsistentOntology:
			r.metrics.InconsistenciesTotal.Inc()
			r.log.WithField("a", e.A).WithField("b", e.B).Warn("inconsistency detected")
		}
	}
	r.events = append(r.events, events...)
}

func liveTripleCount(store *facts.Store) int {
	return len(store.Select(facts.Pattern{}))
}

// excludeSwrl splits axioms into everything but SwrlRule and a synthetic
// NonRLAxiom event per excluded rule, for a Reasoner built with
// WithSWRL(false): a pure description-logic profile that reports SWRL
// input the same way it reports any other out-of-profile axiom, rather
// than silently compiling it anyway.
func excludeSwrl(axioms []axiom.Axiom) ([]axiom.Axiom, []infer.Event) {
	kept := make([]axiom.Axiom, 0, len(axioms))
	var rejected []infer.Event
	for _, ax := range axioms {
		if _, ok := ax.(axiom.SwrlRule); ok {
			rejected = append(rejected, infer.Event{
				Kind:    infer.NonRLAxiom,
				Message: "SWRL support disabled by reasoner.WithSWRL(false)",
				Axiom:   ax,
			})
			continue
		}
		kept = append(kept, ax)
	}
	return kept, rejected
}
