package semgraph

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Builder behavior.
type Option func(*options)

// WithLogger configures the logger used during graph builds.
//
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector configures the metrics collector notified on builds
// and neighbor queries.
//
// If nil is passed, metrics collection is disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
