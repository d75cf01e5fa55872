// Package playbulb discovers Playbulb BLE smart lights and presents
// them to a host device framework. The radio stack and the device
// registry are injected capabilities; the package owns only the scan
// coordination, the advertisement filter and the discovery-to-device
// hand-off.
package playbulb

import (
	"time"

	"github.com/pkg/errors"
)

// Adapter is the Playbulb adapter a host framework drives. It wires a
// scan coordinator and a discoverer to the injected radio and device
// registry.
type Adapter struct {
	name string
	log  Logger

	radio    Radio
	registry Registry

	coordinator *ScanCoordinator
	discoverer  *Discoverer
}

// NewAdapter ...
func NewAdapter(radio Radio, registry Registry, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		name:     "playbulb",
		log:      componentLogger("adapter"),
		radio:    radio,
		registry: registry,
	}
	a.discoverer = NewDiscoverer(registry)
	a.coordinator = NewScanCoordinator(radio, a.discoverer.HandleDiscover)

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, errors.Wrap(err, "can't set options")
		}
	}

	return a, nil
}

// Name reports the adapter name shown to the host.
func (a *Adapter) Name() string { return a.name }

// StartPairing begins discovery. The timeout is the host's pairing
// window; the host enforces it and calls CancelPairing itself, so it
// is only logged here.
func (a *Adapter) StartPairing(timeout time.Duration) {
	a.log.Infof("pairing started, window %s", timeout)
	a.coordinator.StartDiscovery()
}

// CancelPairing ends discovery.
func (a *Adapter) CancelPairing() {
	a.log.Info("pairing cancelled")
	a.coordinator.StopDiscovery()
}

// Pairing reports whether discovery is active.
func (a *Adapter) Pairing() bool {
	return a.coordinator.Active()
}

// RemoveDevice unregisters a device by id. Removal completes
// asynchronously; an unknown id is logged and the device list is left
// unchanged. The returned channel mirrors the registry result for
// callers that want to wait.
func (a *Adapter) RemoveDevice(id string) <-chan Result {
	res := a.registry.Remove(id)
	out := make(chan Result, 1)

	go func() {
		defer close(out)
		r := <-res
		if r.Err != nil {
			a.log.Errorf("remove %s: %s", id, r.Err)
		} else {
			a.log.Infof("removed %s", id)
		}
		out <- r
	}()

	return out
}

// CancelRemoveDevice acknowledges a cancelled removal. Unpairing is
// not a negotiated exchange, so there is nothing to undo.
func (a *Adapter) CancelRemoveDevice(id string) {
	a.log.Debugf("cancel remove %s: nothing to undo", id)
}

// Devices lists the currently registered devices.
func (a *Adapter) Devices() []Descriptor {
	return a.registry.Devices()
}

// Unload stops discovery; the host calls it when the adapter is torn
// down.
func (a *Adapter) Unload() {
	a.coordinator.StopDiscovery()
}
