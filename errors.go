package observables

import "errors"

var (
	// ErrEmptyName is returned for the empty string, which is not a legal entry name.
	ErrEmptyName = errors.New("entry name is empty")

	// ErrNotFound is returned by Lookup when no entry is registered under the name.
	ErrNotFound = errors.New("entry not found")

	// ErrPayloadType is returned by Payload when the data has a different type.
	ErrPayloadType = errors.New("invalid payload type conversion")
)

// ValidateName reports whether name can be used as an entry name
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	return nil
}
