// Package registry provides the in-memory device registry backing the
// Playbulb adapter, with optional JSON snapshots of the device list.
package registry

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/homeadapters/playbulb"
)

type deviceRegistry struct {
	mu      sync.RWMutex
	devices map[string]playbulb.Descriptor
}

// New returns an empty registry.
func New() playbulb.Registry {
	return &deviceRegistry{
		devices: make(map[string]playbulb.Descriptor),
	}
}

func (r *deviceRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.devices[id]
	return ok
}

func (r *deviceRegistry) Devices() []playbulb.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playbulb.Descriptor, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

// Add registers a descriptor. The returned channel delivers exactly
// one result and is then closed; a duplicate id rejects with
// ErrDuplicateDevice.
func (r *deviceRegistry) Add(d playbulb.Descriptor) <-chan playbulb.Result {
	res := make(chan playbulb.Result, 1)

	go func() {
		defer close(res)

		r.mu.Lock()
		_, dup := r.devices[d.ID]
		if !dup {
			r.devices[d.ID] = d
		}
		r.mu.Unlock()

		if dup {
			res <- playbulb.Result{Err: errors.Wrap(playbulb.ErrDuplicateDevice, d.ID)}
			return
		}
		res <- playbulb.Result{Device: d}
	}()

	return res
}

// Remove unregisters a device by id. An unknown id rejects with
// ErrUnknownDevice and leaves the device list unchanged.
func (r *deviceRegistry) Remove(id string) <-chan playbulb.Result {
	res := make(chan playbulb.Result, 1)

	go func() {
		defer close(res)

		r.mu.Lock()
		d, ok := r.devices[id]
		if ok {
			delete(r.devices, id)
		}
		r.mu.Unlock()

		if !ok {
			res <- playbulb.Result{Err: errors.Wrap(playbulb.ErrUnknownDevice, id)}
			return
		}
		res <- playbulb.Result{Device: d}
	}()

	return res
}
