// Package radiotest provides a scripted Radio implementation for the
// test suite and the simulator. Events are dispatched synchronously
// from the calling goroutine; drive it from one goroutine, the way a
// real radio serializes its event queue.
package radiotest

import (
	"sync"

	"github.com/homeadapters/playbulb"
)

// Radio is an in-process radio double. It records every scan command
// and lets the caller inject state, scan and discover events.
type Radio struct {
	mu     sync.Mutex
	state  playbulb.State
	echo   bool
	starts int
	stops  int
	nextID int
	subs   map[int]playbulb.Handlers
}

// New returns a radio in the given initial state with no subscribers.
func New(initial playbulb.State) *Radio {
	return &Radio{
		state: initial,
		subs:  make(map[int]playbulb.Handlers),
	}
}

// EchoScanCommands makes StartScanning and StopScanning synchronously
// report the matching scanStart/scanStop event, the way a healthy
// radio acknowledges the command.
func (r *Radio) EchoScanCommands(on bool) {
	r.mu.Lock()
	r.echo = on
	r.mu.Unlock()
}

func (r *Radio) State() playbulb.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Radio) StartScanning() error {
	r.mu.Lock()
	r.starts++
	echo := r.echo
	r.mu.Unlock()

	if echo {
		r.EmitScanStart()
	}
	return nil
}

func (r *Radio) StopScanning() error {
	r.mu.Lock()
	r.stops++
	echo := r.echo
	r.mu.Unlock()

	if echo {
		r.EmitScanStop()
	}
	return nil
}

func (r *Radio) Subscribe(h playbulb.Handlers) playbulb.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.subs[id] = h

	return &subscription{radio: r, id: id}
}

type subscription struct {
	radio *Radio
	id    int
}

func (s *subscription) Unsubscribe() {
	s.radio.mu.Lock()
	delete(s.radio.subs, s.id)
	s.radio.mu.Unlock()
}

// SetState changes the radio state and notifies subscribers.
func (r *Radio) SetState(s playbulb.State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()

	for _, h := range r.handlers() {
		if h.StateChange != nil {
			h.StateChange(s)
		}
	}
}

// EmitScanStart reports that scanning actually began, whether or not
// a StartScanning command asked for it.
func (r *Radio) EmitScanStart() {
	for _, h := range r.handlers() {
		if h.ScanStart != nil {
			h.ScanStart()
		}
	}
}

// EmitScanStop reports that scanning actually stopped.
func (r *Radio) EmitScanStop() {
	for _, h := range r.handlers() {
		if h.ScanStop != nil {
			h.ScanStop()
		}
	}
}

// Advertise delivers a discover event for the peripheral.
func (r *Radio) Advertise(p playbulb.Peripheral) {
	for _, h := range r.handlers() {
		if h.Discover != nil {
			h.Discover(p)
		}
	}
}

// handlers snapshots the subscriber set so dispatch runs without the
// lock held; handlers may call back into the radio.
func (r *Radio) handlers() []playbulb.Handlers {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]playbulb.Handlers, 0, len(r.subs))
	for _, h := range r.subs {
		out = append(out, h)
	}
	return out
}

// StartCount reports how many StartScanning commands were issued.
func (r *Radio) StartCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts
}

// StopCount reports how many StopScanning commands were issued.
func (r *Radio) StopCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stops
}

// SubscriberCount reports the number of live subscriptions.
func (r *Radio) SubscriberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
