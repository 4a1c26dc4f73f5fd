package observables

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// DefaultName is the registry name used in log fields and metric labels
// when WithName is not given.
const DefaultName = "default"

type options struct {
	name       string
	logger     logrus.FieldLogger
	registerer prometheus.Registerer
}

// Option configures a Registry
type Option func(*options)

// WithName sets the registry name reported in logs and metrics
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for registry activity. Pass nil to
// disable logging.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics registers the registry collectors with reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

func newOptions(opts []Option) options {
	o := options{name: DefaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = DefaultName
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	return o
}
