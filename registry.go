// Package observables is a registry of named callbacks invoked synchronously by name.
package observables

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// Resolver retrieves callbacks by name. It is the read-only view of a
// Registry handed to code that dispatches but must not register.
type Resolver interface {
	Lookup(name string) (Callback, error)
}

// Registry holds at most one callback per name, in registration order.
//
// The first registration of a name wins: later Register calls for the same
// name are rejected until the entry is removed. Callbacks run synchronously
// on the goroutine that calls Call, outside the registry lock, and a panic
// inside a callback is not recovered.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	name    string
	logger  logrus.FieldLogger
	metrics *metrics
}

// New creates an empty registry
func New(opts ...Option) *Registry {
	o := newOptions(opts)
	r := &Registry{
		entries: make([]Entry, 0),
		name:    o.name,
		logger:  o.logger.WithField("registry", o.name),
	}

	if o.registerer != nil {
		m, err := newMetrics(o.registerer, o.name)
		if err != nil {
			r.logger.WithError(err).Warn("Registry metrics disabled")
		} else {
			r.metrics = m
		}
	}

	return r
}

// Name returns the registry name given by WithName
func (r *Registry) Name() string {
	return r.name
}

// Find returns the entry registered under name
func (r *Registry) Find(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(name); i != -1 {
		return r.entries[i], true
	}
	return Entry{}, false
}

// FindIndex returns the position of name in registration order, or -1 if
// it is not registered.
func (r *Registry) FindIndex(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(name)
}

// Register stores callback under name and reports whether it did. It
// returns false without changing anything if name is empty or already
// registered. A nil callback is stored as a no-op.
func (r *Registry) Register(name string, callback Callback) bool {
	if err := ValidateName(name); err != nil {
		r.metrics.registered(resultInvalid)
		r.logger.WithError(err).Warn("Rejected registration")
		return false
	}

	r.mu.Lock()
	if r.indexOf(name) != -1 {
		r.mu.Unlock()
		r.metrics.registered(resultDuplicate)
		r.logger.WithField("name", name).Debug("Name already registered")
		return false
	}
	r.entries = append(r.entries, newEntry(name, callback))
	count := len(r.entries)
	r.mu.Unlock()

	r.metrics.registered(resultAccepted)
	r.logger.WithFields(logrus.Fields{
		"name":    name,
		"entries": count,
	}).Debug("Registered entry")
	return true
}

// Remove deletes the entry registered under name and reports whether there
// was one. The remaining entries keep their order.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	i := r.indexOf(name)
	if i == -1 {
		r.mu.Unlock()
		r.metrics.removed(resultMissing)
		r.logger.WithField("name", name).Debug("Nothing to remove")
		return false
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	count := len(r.entries)
	r.mu.Unlock()

	r.metrics.removed(resultRemoved)
	r.logger.WithFields(logrus.Fields{
		"name":    name,
		"entries": count,
	}).Debug("Removed entry")
	return true
}

// Call invokes the callback registered under name with data and reports
// whether one was found. The callback runs before Call returns; if it
// panics, the panic reaches the caller of Call.
func (r *Registry) Call(name string, data any) bool {
	entry, ok := r.Find(name)
	if !ok {
		r.metrics.called(resultMissing)
		r.logger.WithField("name", name).Trace("No entry to call")
		return false
	}

	r.metrics.called(resultDispatched)
	r.logger.WithField("name", name).Trace("Calling entry")
	entry.callback(data)
	return true
}

// Lookup returns the callback registered under name. The error is
// ErrEmptyName or wraps ErrNotFound.
func (r *Registry) Lookup(name string) (Callback, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	entry, ok := r.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return entry.callback, nil
}

// Len returns the number of registered entries
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// indexOf must be called with r.mu held
func (r *Registry) indexOf(name string) int {
	return slices.IndexFunc(r.entries, func(e Entry) bool {
		return e.name == name
	})
}

var _ Resolver = (*Registry)(nil)
