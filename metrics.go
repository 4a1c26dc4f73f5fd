package observables

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "observables"

// Result label values
const (
	resultAccepted   = "accepted"
	resultDuplicate  = "duplicate"
	resultInvalid    = "invalid"
	resultRemoved    = "removed"
	resultMissing    = "missing"
	resultDispatched = "dispatched"
)

// metrics is nil when the registry was built without WithMetrics; every
// method is safe to call on a nil receiver.
type metrics struct {
	registrations *prometheus.CounterVec
	removals      *prometheus.CounterVec
	calls         *prometheus.CounterVec
	entries       prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, name string) (*metrics, error) {
	labels := prometheus.Labels{"registry": name}

	registrations, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "registrations_total",
		Help:        "Register attempts by result",
		ConstLabels: labels,
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	removals, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "removals_total",
		Help:        "Remove attempts by result",
		ConstLabels: labels,
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	calls, err := registerCollector(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Name:        "calls_total",
		Help:        "Call attempts by result",
		ConstLabels: labels,
	}, []string{"result"}))
	if err != nil {
		return nil, err
	}

	entries, err := registerCollector(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "entries",
		Help:        "Number of registered entries",
		ConstLabels: labels,
	}))
	if err != nil {
		return nil, err
	}

	for _, result := range []string{resultAccepted, resultDuplicate, resultInvalid} {
		registrations.WithLabelValues(result)
	}
	for _, result := range []string{resultRemoved, resultMissing} {
		removals.WithLabelValues(result)
	}
	for _, result := range []string{resultDispatched, resultMissing} {
		calls.WithLabelValues(result)
	}

	return &metrics{
		registrations: registrations,
		removals:      removals,
		calls:         calls,
		entries:       entries,
	}, nil
}

// registerCollector registers c, or returns the collector already registered
// under the same descriptor so registries sharing a name share their series.
func registerCollector[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, fmt.Errorf("register collector: %w", err)
}

func (m *metrics) registered(result string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
	if result == resultAccepted {
		m.entries.Inc()
	}
}

func (m *metrics) removed(result string) {
	if m == nil {
		return
	}
	m.removals.WithLabelValues(result).Inc()
	if result == resultRemoved {
		m.entries.Dec()
	}
}

func (m *metrics) called(result string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(result).Inc()
}
