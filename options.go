package fabgo

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures Fab constructor behavior.
//
// Options primarily exist to avoid exploding the API surface with
// constructor variants.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging stays disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsCollector configures the metrics sink for build and update
// operations.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}
