package registry

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/homeadapters/playbulb"
)

// Save writes the registry's device list to filename as JSON keyed by
// device id. Only device identity is stored, never the service or
// characteristic topology seen during diagnostics.
func Save(r playbulb.Registry, filename string) error {
	devices := r.Devices()

	m := make(map[string]playbulb.Descriptor, len(devices))
	for _, d := range devices {
		m[d.ID] = d
	}

	out, err := jsoniter.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal device list")
	}

	return os.WriteFile(filename, out, 0644)
}

// Load rebuilds a registry from a snapshot file. A missing file yields
// an empty registry.
func Load(filename string) (playbulb.Registry, error) {
	reg := &deviceRegistry{
		devices: make(map[string]playbulb.Descriptor),
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return reg, nil
	}

	in, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}

	if err := jsoniter.Unmarshal(in, &reg.devices); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}

	return reg, nil
}
