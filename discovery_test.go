package playbulb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

type fakeRegistry struct {
	mu      sync.Mutex
	devices map[string]Descriptor
	adds    int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{devices: make(map[string]Descriptor)}
}

func (r *fakeRegistry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.devices[id]
	return ok
}

func (r *fakeRegistry) Devices() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Descriptor, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, d)
	}
	return out
}

func (r *fakeRegistry) Add(d Descriptor) <-chan Result {
	r.mu.Lock()
	r.adds++
	r.devices[d.ID] = d
	r.mu.Unlock()

	res := make(chan Result, 1)
	res <- Result{Device: d}
	close(res)
	return res
}

func (r *fakeRegistry) Remove(id string) <-chan Result {
	r.mu.Lock()
	d, ok := r.devices[id]
	delete(r.devices, id)
	r.mu.Unlock()

	res := make(chan Result, 1)
	if !ok {
		res <- Result{Err: ErrUnknownDevice}
	} else {
		res <- Result{Device: d}
	}
	close(res)
	return res
}

func (r *fakeRegistry) addCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adds
}

type fakePeripheral struct {
	adv        fakeAdv
	connectErr error

	mu          sync.Mutex
	connects    int
	disconnects int
}

func candlePeripheral() *fakePeripheral {
	return &fakePeripheral{
		adv: fakeAdv{
			name:        "PLAYBULB CANDLE",
			mfg:         []byte{0x4d, 0x49, 0x01, 0x02, 0x03, 0x04},
			connectable: true,
			rssi:        -42,
			addr:        NewAddr("AA:BB:CC:DD:EE:FF"),
		},
	}
}

func (p *fakePeripheral) Addr() Addr                   { return p.adv.addr }
func (p *fakePeripheral) Advertisement() Advertisement { return p.adv }

func (p *fakePeripheral) Connect(ctx context.Context) (Client, error) {
	if p.connectErr != nil {
		return nil, p.connectErr
	}
	p.mu.Lock()
	p.connects++
	p.mu.Unlock()
	return &fakeClient{p: p}, nil
}

type fakeClient struct {
	p *fakePeripheral
}

func (c *fakeClient) Addr() Addr { return c.p.adv.addr }

func (c *fakeClient) DiscoverServices() ([]Service, error) {
	return []Service{fakeService{}}, nil
}

func (c *fakeClient) CancelConnection() error {
	c.p.mu.Lock()
	c.p.disconnects++
	c.p.mu.Unlock()
	return nil
}

type fakeService struct{}

func (fakeService) UUID() string { return "ff02" }

func (fakeService) DiscoverCharacteristics() ([]Characteristic, error) {
	return []Characteristic{{UUID: "fffb"}, {UUID: "fffc"}}, nil
}

func newTestDiscoverer(reg Registry) *Discoverer {
	d := NewDiscoverer(reg)
	d.diagnostics = false
	return d
}

func TestHandleDiscoverRegistersOnce(t *testing.T) {
	reg := newFakeRegistry()
	d := newTestDiscoverer(reg)
	p := candlePeripheral()

	d.HandleDiscover(p)
	d.HandleDiscover(p)

	if got := reg.addCount(); got != 1 {
		t.Fatalf("registered %d times, want 1", got)
	}

	devices := reg.Devices()
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1", len(devices))
	}

	dev := devices[0]
	if dev.ID != "playbulb-AA:BB:CC:DD:EE:FF" {
		t.Fatalf("unexpected device id %q", dev.ID)
	}
	if dev.Name != "PLAYBULB CANDLE" {
		t.Fatalf("unexpected device name %q", dev.Name)
	}
	if len(dev.Properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(dev.Properties))
	}
	if on := dev.Properties[0]; on.Name != PropertyOn || on.Value != false {
		t.Fatalf("unexpected on property %+v", on)
	}
	if color := dev.Properties[1]; color.Name != PropertyColor || color.Value != DefaultColor {
		t.Fatalf("unexpected color property %+v", color)
	}
}

func TestHandleDiscoverIgnoresNonPlaybulb(t *testing.T) {
	reg := newFakeRegistry()
	d := newTestDiscoverer(reg)

	d.HandleDiscover(&fakePeripheral{adv: fakeAdv{
		name:        "Fitness Tracker",
		mfg:         []byte{0x4c, 0x00},
		connectable: true,
		addr:        NewAddr("11:22:33:44:55:66"),
	}})

	if got := reg.addCount(); got != 0 {
		t.Fatalf("registered %d times, want 0", got)
	}
}

// slowRegistry defers resolution until released, exposing the window
// where an add is issued but not yet visible through Has.
type slowRegistry struct {
	fakeRegistry
	release chan struct{}
}

func (r *slowRegistry) Add(d Descriptor) <-chan Result {
	r.mu.Lock()
	r.adds++
	r.mu.Unlock()

	res := make(chan Result, 1)
	go func() {
		defer close(res)
		<-r.release

		r.mu.Lock()
		r.devices[d.ID] = d
		r.mu.Unlock()
		res <- Result{Device: d}
	}()
	return res
}

func TestHandleDiscoverDeduplicatesInFlightAdd(t *testing.T) {
	reg := &slowRegistry{
		fakeRegistry: fakeRegistry{devices: make(map[string]Descriptor)},
		release:      make(chan struct{}),
	}
	d := newTestDiscoverer(reg)
	p := candlePeripheral()

	d.HandleDiscover(p)
	d.HandleDiscover(p)
	if got := reg.addCount(); got != 1 {
		t.Fatalf("registered %d times with add in flight, want 1", got)
	}

	close(reg.release)

	deadline := time.After(time.Second)
	for !reg.Has("playbulb-AA:BB:CC:DD:EE:FF") {
		select {
		case <-deadline:
			t.Fatal("add never resolved")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Still registered and still exactly once.
	d.HandleDiscover(p)
	if got := reg.addCount(); got != 1 {
		t.Fatalf("registered %d times after resolution, want 1", got)
	}
}

func TestDiagnosticsFailureDoesNotBlockRegistration(t *testing.T) {
	reg := newFakeRegistry()
	d := NewDiscoverer(reg)
	d.connectTimeout = 50 * time.Millisecond

	p := candlePeripheral()
	p.connectErr = errors.New("connect failed")

	d.HandleDiscover(p)

	if got := reg.addCount(); got != 1 {
		t.Fatalf("registered %d times, want 1", got)
	}
}

func TestEnumerateConnectsAndDisconnects(t *testing.T) {
	d := NewDiscoverer(newFakeRegistry())
	p := candlePeripheral()

	d.enumerate(p)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connects != 1 {
		t.Fatalf("connected %d times, want 1", p.connects)
	}
	if p.disconnects != 1 {
		t.Fatalf("disconnected %d times, want 1", p.disconnects)
	}
}

func TestDiagnosticsDisabledSkipsConnection(t *testing.T) {
	reg := newFakeRegistry()
	d := newTestDiscoverer(reg)
	p := candlePeripheral()

	d.HandleDiscover(p)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connects != 0 {
		t.Fatalf("connected %d times with diagnostics off, want 0", p.connects)
	}
}
