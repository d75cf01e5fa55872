package playbulb

import "context"

// State is the power state of the radio.
type State int

const (
	StateUnknown State = iota
	StatePoweredOn
	StatePoweredOff
	StateResetting
	StateUnauthorized
	StateUnsupported
)

func (s State) String() string {
	switch s {
	case StatePoweredOn:
		return "poweredOn"
	case StatePoweredOff:
		return "poweredOff"
	case StateResetting:
		return "resetting"
	case StateUnauthorized:
		return "unauthorized"
	case StateUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Handlers receives radio stack events. Nil entries are skipped.
type Handlers struct {
	StateChange func(State)
	ScanStart   func()
	ScanStop    func()
	Discover    func(Peripheral)
}

// Subscription represents a registered set of Handlers.
type Subscription interface {
	Unsubscribe()
}

// Radio is the capability surface of the BLE stack the adapter runs
// on. StartScanning and StopScanning are fire and forget: the actual
// scanning state is reported back through the ScanStart and ScanStop
// events and can change on the radio's own initiative, typically
// around a connect/disconnect cycle.
//
// Implementations must dispatch events serialized, from a single
// goroutine; each handler runs to completion before the next event
// is delivered.
type Radio interface {
	State() State
	StartScanning() error
	StopScanning() error
	Subscribe(h Handlers) Subscription
}

// Peripheral is a discoverable BLE device reported by the radio.
type Peripheral interface {
	Addr() Addr
	Advertisement() Advertisement
	Connect(ctx context.Context) (Client, error)
}

// Client is an open connection to a peripheral.
type Client interface {
	Addr() Addr
	DiscoverServices() ([]Service, error)
	CancelConnection() error
}

// Service ...
type Service interface {
	UUID() string
	DiscoverCharacteristics() ([]Characteristic, error)
}

// Characteristic ...
type Characteristic struct {
	UUID string
}
