package pointstore

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see the
// prommetrics package for a Prometheus implementation.
type MetricsCollector interface {
	// RecordLookup is called after each lookup, err is nil if successful.
	RecordLookup(stats LookupStats, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

// RecordLookup implements MetricsCollector.
func (NoopMetricsCollector) RecordLookup(LookupStats, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LookupCount      atomic.Int64
	LookupErrors     atomic.Int64
	NotFoundErrors   atomic.Int64
	LookupTotalNanos atomic.Int64
	IDsRequested     atomic.Int64
	IDsDropped       atomic.Int64
	RecordsFound     atomic.Int64
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(s LookupStats, err error) {
	b.LookupCount.Add(1)
	b.LookupTotalNanos.Add(s.Duration.Nanoseconds())
	b.IDsRequested.Add(int64(s.Requested))
	b.IDsDropped.Add(int64(s.Requested - s.Valid))
	b.RecordsFound.Add(int64(s.Found))
	if err != nil {
		b.LookupErrors.Add(1)
		if IsNotFound(err) {
			b.NotFoundErrors.Add(1)
		}
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.LookupCount.Load()
	var avg int64
	if count > 0 {
		avg = b.LookupTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		LookupCount:    count,
		LookupErrors:   b.LookupErrors.Load(),
		NotFoundErrors: b.NotFoundErrors.Load(),
		LookupAvgNanos: avg,
		IDsRequested:   b.IDsRequested.Load(),
		IDsDropped:     b.IDsDropped.Load(),
		RecordsFound:   b.RecordsFound.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LookupCount    int64
	LookupErrors   int64
	NotFoundErrors int64
	LookupAvgNanos int64
	IDsRequested   int64
	IDsDropped     int64
	RecordsFound   int64
}
