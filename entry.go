package observables

import "fmt"

// Callback is the behavior stored under a name and invoked by Call
type Callback func(data any)

// noop is stored when Register is given a nil callback
func noop(any) {}

// Entry is a registered (name, callback) pair. Entries are stored by value
// and never changed after registration.
type Entry struct {
	name     string
	callback Callback
}

func newEntry(name string, callback Callback) Entry {
	if callback == nil {
		callback = noop
	}
	return Entry{
		name:     name,
		callback: callback,
	}
}

// Name returns the name the entry was registered under
func (e Entry) Name() string {
	return e.name
}

// Callback returns the stored callback. It is never nil for an entry
// obtained from a Registry.
func (e Entry) Callback() Callback {
	return e.callback
}

// Payload converts the data passed to a callback into its expected type.
// Nil data never converts, whatever T is.
func Payload[T any](data any) (T, error) {
	var zero T
	if v, ok := data.(T); ok {
		return v, nil
	}
	return zero, fmt.Errorf("%w: expected %T, got %T", ErrPayloadType, zero, data)
}
