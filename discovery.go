package playbulb

import (
	"context"
	"sync"
	"time"
)

const defaultConnectTimeout = 10 * time.Second

// Discoverer turns peripheral-discovered events into device
// registrations, exactly once per address.
type Discoverer struct {
	registry Registry
	filter   AdvFilter
	log      Logger

	connectTimeout time.Duration
	diagnostics    bool

	// pending holds ids whose registration has not resolved yet, so
	// that a re-advertisement racing an in-flight add is still a
	// single registration.
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewDiscoverer returns a discoverer using the Playbulb signature
// filter and diagnostic enumeration enabled.
func NewDiscoverer(registry Registry) *Discoverer {
	return &Discoverer{
		registry:       registry,
		filter:         IsPlaybulb,
		log:            componentLogger("discovery"),
		connectTimeout: defaultConnectTimeout,
		diagnostics:    true,
		pending:        make(map[string]struct{}),
	}
}

// HandleDiscover is the radio's discover event handler. Registration
// never waits on the diagnostic connection.
func (d *Discoverer) HandleDiscover(p Peripheral) {
	a := p.Advertisement()
	if !d.filter(a) {
		d.log.Debugf("ignoring %s (%q)", p.Addr(), a.LocalName())
		return
	}

	id := DeviceID(p.Addr())
	if !d.claim(id) {
		d.log.Debugf("%s already known", id)
		return
	}

	desc := NewDescriptor(a.LocalName(), p.Addr())
	d.log.Infof("found %s (%s, rssi %d)", desc.Name, desc.ID, a.RSSI())

	res := d.registry.Add(desc)
	go func() {
		r := <-res
		d.settle(id)
		if r.Err != nil {
			d.log.Errorf("add %s: %s", id, r.Err)
			return
		}
		d.log.Infof("registered %s", id)
	}()

	if d.diagnostics {
		go d.enumerate(p)
	}
}

// claim reserves an id for registration. It fails when the registry
// already holds the id or an add for it is still in flight.
func (d *Discoverer) claim(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, inflight := d.pending[id]; inflight {
		return false
	}
	if d.registry.Has(id) {
		return false
	}

	d.pending[id] = struct{}{}
	return true
}

func (d *Discoverer) settle(id string) {
	d.mu.Lock()
	delete(d.pending, id)
	d.mu.Unlock()
}

// enumerate opens a transient connection purely to log the services
// and characteristics the light exposes. It is best effort: every
// failure is swallowed and the outcome is discarded, even if pairing
// mode ended while the connection was in flight.
func (d *Discoverer) enumerate(p Peripheral) {
	ctx, cancel := context.WithTimeout(context.Background(), d.connectTimeout)
	defer cancel()

	cln, err := p.Connect(ctx)
	if err != nil {
		d.log.Warnf("diagnostic connect %s: %s", p.Addr(), err)
		return
	}
	defer func() {
		if err := cln.CancelConnection(); err != nil {
			d.log.Debugf("disconnect %s: %s", p.Addr(), err)
		}
	}()

	ss, err := cln.DiscoverServices()
	if err != nil {
		d.log.Warnf("discover services %s: %s", p.Addr(), err)
		return
	}

	for _, s := range ss {
		cc, err := s.DiscoverCharacteristics()
		if err != nil {
			d.log.Warnf("discover characteristics %s/%s: %s", p.Addr(), s.UUID(), err)
			continue
		}
		for _, ch := range cc {
			d.log.Debugf("%s: service %s characteristic %s", p.Addr(), s.UUID(), ch.UUID)
		}
	}
}
