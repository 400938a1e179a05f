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

// Package tracing assists with reporting OpenTracing traces for a reasoner
// process: loading an axiom batch, running reason() to quiescence, and
// executing a query plan are each long enough to be worth a span, and
// each span can carry a Prometheus metric so its duration also shows up
// as a histogram observation without a second instrumentation pass.
package tracing

import (
	"strings"
	"sync"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// Tracer reports OpenTracing traces to a local Jaeger agent.
type Tracer struct {
	close func()
}

// New constructs a tracer, reporting as serviceName, and sets it as the
// global OpenTracing tracer. Call this once from main before loading any
// axioms. The returned Tracer should be Closed before process exit to
// flush its buffer. sampleRate is the fraction of traces kept, in [0,1];
// a reasoner embedded as a library would typically pass a small fraction
// or 0 to disable tracing entirely.
func New(serviceName string, sampleRate float64) (*Tracer, error) {
	if sampleRate <= 0 {
		return &Tracer{}, nil
	}
	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeProbabilistic,
			Param: sampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{LogSpans: false},
	}
	logger := (*logrusAdapter)(log.WithFields(log.Fields{"component": "jaeger"}))
	tracer, closer, err := cfg.NewTracer(
		jaegercfg.Logger(logger),
		jaegercfg.ContribObserver(&contribObserver{}),
	)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return &Tracer{
		close: func() {
			if err := closer.Close(); err != nil {
				log.WithError(err).Warn("error shutting down Jaeger tracer")
			}
		},
	}, nil
}

// Close stops the Tracer and cleans up resources. Not safe to call
// concurrently with itself.
func (t *Tracer) Close() {
	if t.close != nil {
		t.close()
	}
	t.close = nil
}

type logrusAdapter log.Entry

func (l *logrusAdapter) Error(msg string) {
	(*log.Entry)(l).Error(strings.TrimSpace(msg))
}

func (l *logrusAdapter) Infof(msg string, args ...interface{}) {
	(*log.Entry)(l).Infof(strings.TrimSpace(msg), args...)
}

type contribObserver struct{}

func (m *contribObserver) OnStartSpan(
	span opentracing.Span,
	operationName string,
	options opentracing.StartSpanOptions,
) (jaeger.ContribSpanObserver, bool) {
	return &spanObserver{span: span, operationName: operationName, start: options.StartTime}, true
}

// spanObserver watches one span's lifetime and, if UpdateMetric was
// called on it, feeds the span's duration into that metric on finish.
type spanObserver struct {
	span          opentracing.Span
	start         time.Time
	operationName string

	metricLock sync.Mutex
	metric     Metric
}

func (o *spanObserver) OnSetOperationName(name string) {}

func (o *spanObserver) OnSetTag(key string, value interface{}) {
	if key != "metric" {
		return
	}
	if metric, ok := value.(Metric); ok {
		o.metricLock.Lock()
		o.metric = metric
		o.metricLock.Unlock()
	}
}

func (o *spanObserver) OnFinish(options opentracing.FinishOptions) {
	dur := options.FinishTime.Sub(o.start)
	o.metricLock.Lock()
	if o.metric != nil {
		o.metric.Observe(dur.Seconds())
	}
	o.metricLock.Unlock()
}

// UpdateMetric arranges for metric to be observed with the span's
// duration, in seconds, once the span finishes.
func UpdateMetric(span opentracing.Span, metric Metric) {
	span.SetTag("metric", stringableMetric{metric})
}

// Metric is satisfied by prometheus.Summary and prometheus.Histogram.
type Metric interface {
	prometheus.Metric
	Observe(float64)
}

// stringableMetric gives a Prometheus metric a String() that reports its
// fully-qualified name, so the "metric" span tag is human-readable.
type stringableMetric struct {
	Metric
}

func (metric stringableMetric) String() string {
	s := metric.Desc().String()
	s = strings.TrimPrefix(s, `Desc{fqName: "`)
	i := strings.IndexByte(s, '"')
	if i < 0 {
		return ""
	}
	return s[:i]
}
