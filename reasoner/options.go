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

package reasoner

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/reter-go/reter/internal/tracing"
	"github.com/reter-go/reter/rete"
)

// options collects the configuration a New reasoner can be built with.
// There's no deployment topology to load from a file here — every field
// is something a host embedding the reasoner as a library decides in
// code — so this is a plain functional-options struct rather than a
// config.Load-style file reader.
type options struct {
	termCapacityHint int
	swrlEnabled      bool
	builtins         map[string]rete.BuiltinFunc
	metricsRegistry  prometheus.Registerer
	tracer           *tracing.Tracer
}

func defaultOptions() *options {
	return &options{
		termCapacityHint: 1024,
		swrlEnabled:      true,
		// A fresh registry per instance, not prometheus.DefaultRegisterer:
		// a process can hold many independent Reasoners, and sharing the
		// default registry would make a second one's construction panic
		// on MustRegister's duplicate-name check.
		metricsRegistry: prometheus.NewRegistry(),
	}
}

// Option configures a Reasoner at construction time.
type Option func(*options)

// WithTermCapacityHint sizes the Term Store's initial interning maps, for
// a caller that knows roughly how many distinct names/literals an
// ontology and its data will mention.
func WithTermCapacityHint(n int) Option {
	return func(o *options) { o.termCapacityHint = n }
}

// WithSWRL enables or disables compiling SwrlRule axioms; disabled,
// LoadAxioms reports them as NonRLAxiom events instead of compiling them,
// for a host that wants a pure description-logic profile.
func WithSWRL(enabled bool) Option {
	return func(o *options) { o.swrlEnabled = enabled }
}

// WithBuiltins registers every entry of fn on top of the default
// SWRL/FILTER builtin registry (rete.DefaultBuiltins), for both rules and
// queries: a name fn shares with a default replaces it, a new name is
// added. Default builtins fn doesn't name stay available.
func WithBuiltins(fn map[string]rete.BuiltinFunc) Option {
	return func(o *options) { o.builtins = fn }
}

// WithMetricsRegistry directs this reasoner's Prometheus metrics at r
// instead of the fresh per-instance registry New creates by default; pass
// a shared registerer (prometheus.DefaultRegisterer, say) to expose them.
func WithMetricsRegistry(r prometheus.Registerer) Option {
	return func(o *options) { o.metricsRegistry = r }
}

// WithTracer stores an already-constructed tracing.Tracer on the
// Reasoner. The spans around LoadAxioms/Reason/RetractSource/query
// execution are started on opentracing's global tracer (the one
// tracing.New installs), not through t; with no global tracer installed
// they go to opentracing's no-op tracer.
func WithTracer(t *tracing.Tracer) Option {
	return func(o *options) { o.tracer = t }
}
