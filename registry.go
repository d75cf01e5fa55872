package playbulb

import "github.com/pkg/errors"

var (
	// ErrDuplicateDevice rejects an Add for an identifier that is
	// already registered.
	ErrDuplicateDevice = errors.New("device already registered")

	// ErrUnknownDevice rejects a Remove for an identifier that was
	// never registered.
	ErrUnknownDevice = errors.New("device not registered")
)

// Result is the outcome of an asynchronous registry operation. The
// channel returned by Add and Remove delivers exactly one Result and
// is then closed.
type Result struct {
	Device Descriptor
	Err    error
}

// Registry tracks the devices the adapter has handed to the host
// framework, keyed by descriptor ID.
type Registry interface {
	Has(id string) bool
	Devices() []Descriptor
	Add(d Descriptor) <-chan Result
	Remove(id string) <-chan Result
}
