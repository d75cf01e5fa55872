package playbulb

// AdvHandler handles advertisement.
type AdvHandler func(a Advertisement)

// AdvFilter returns true if the advertisement matches specified condition.
type AdvFilter func(a Advertisement) bool

// Advertisement is the broadcast payload a peripheral emits while it
// is discoverable. Absent fields report zero values: an empty local
// name or nil manufacturer data means the advertisement did not carry
// that field.
type Advertisement interface {
	LocalName() string
	ManufacturerData() []byte
	Connectable() bool
	RSSI() int
	Addr() Addr
}
