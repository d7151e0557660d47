package pointstore

import (
	"log/slog"

	"github.com/hupe1980/pointstore/internal/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	resources        resource.Config
}

// Option configures a Service.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring lookups.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pointstore.BasicMetricsCollector{}
//	svc := pointstore.New(pointstore.WithMetricsCollector(metrics))
//	// ... use svc ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for lookups.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	svc := pointstore.New(pointstore.WithLogger(pointstore.NewJSONLogger(slog.LevelInfo)))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxConcurrentLookups bounds the number of lookups running at once.
// Further lookups wait for a slot or their context. Zero means unlimited.
func WithMaxConcurrentLookups(n int) Option {
	return func(o *options) {
		o.resources.MaxConcurrentLookups = int64(n)
	}
}

// WithIDRateLimit limits the identifiers sent to storage per second.
// Waiting happens before the collection is resolved, so no lock is held
// while throttled. Zero means unlimited.
func WithIDRateLimit(perSecond, burst int) Option {
	return func(o *options) {
		o.resources.IDsPerSecond = perSecond
		o.resources.IDBurst = burst
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
