// Package prommetrics exports lookup metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, _ := prommetrics.New(reg)
//	svc := pointstore.New(pointstore.WithMetricsCollector(mc))
package prommetrics

import (
	"context"
	"errors"

	"github.com/hupe1980/pointstore"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Collector implements pointstore.MetricsCollector.
type Collector struct {
	lookups  *prometheus.CounterVec
	ids      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ pointstore.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pointstore",
			Name:      "lookups_total",
			Help:      "Lookups by collection and outcome.",
		}, []string{"collection", "outcome"}),
		ids: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pointstore",
			Name:      "lookup_ids_total",
			Help:      "Identifiers seen by lookups: requested, dropped as invalid, found.",
		}, []string{"collection", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pointstore",
			Name:      "lookup_duration_seconds",
			Help:      "Lookup latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collection"}),
	}

	for _, col := range []prometheus.Collector{c.lookups, c.ids, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordLookup implements pointstore.MetricsCollector.
func (c *Collector) RecordLookup(s pointstore.LookupStats, err error) {
	c.lookups.WithLabelValues(s.Collection, outcome(err)).Inc()
	c.ids.WithLabelValues(s.Collection, "requested").Add(float64(s.Requested))
	c.ids.WithLabelValues(s.Collection, "dropped").Add(float64(s.Requested - s.Valid))
	c.ids.WithLabelValues(s.Collection, "found").Add(float64(s.Found))
	c.duration.WithLabelValues(s.Collection).Observe(s.Duration.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case pointstore.IsNotFound(err):
		return OutcomeNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}
