package playbulb

// Property names and defaults for a Playbulb light as presented to
// the host framework.
const (
	PropertyOn    = "on"
	PropertyColor = "color"

	DefaultColor = "#FFFFFF"
)

// Property is one controllable value on a device. Value holds the
// default at creation time; the live value belongs to the host
// framework once the device has been added.
type Property struct {
	Name  string      `json:"name"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Descriptor identifies one Playbulb light to the host framework.
// It is created once per discovered peripheral and never mutated by
// the adapter afterwards.
type Descriptor struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

// DeviceID derives the registry identifier for a peripheral address.
func DeviceID(a Addr) string {
	return "playbulb-" + a.String()
}

// NewDescriptor builds the descriptor for a freshly discovered light.
// Every light starts off and white; the advertised local name doubles
// as the display name.
func NewDescriptor(localName string, a Addr) Descriptor {
	return Descriptor{
		ID:   DeviceID(a),
		Name: localName,
		Properties: []Property{
			{Name: PropertyOn, Type: "boolean", Value: false},
			{Name: PropertyColor, Type: "string", Value: DefaultColor},
		},
	}
}
