package radiotest

import (
	"context"
	"sort"
	"sync"

	"github.com/homeadapters/playbulb"
)

// Peripheral is a canned discoverable device. Fill in the fields and
// hand it to Radio.Advertise.
type Peripheral struct {
	Address    string
	Name       string
	Mfg        []byte
	CanConnect bool
	Rssi       int

	// Services maps service UUIDs to characteristic UUIDs, returned
	// by the diagnostic enumeration.
	Services map[string][]string

	// ConnectErr, when set, fails every Connect attempt.
	ConnectErr error

	mu          sync.Mutex
	connects    int
	disconnects int
}

func (p *Peripheral) Addr() playbulb.Addr {
	return playbulb.NewAddr(p.Address)
}

func (p *Peripheral) Advertisement() playbulb.Advertisement {
	return advertisement{p}
}

func (p *Peripheral) Connect(ctx context.Context) (playbulb.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.ConnectErr != nil {
		return nil, p.ConnectErr
	}

	p.mu.Lock()
	p.connects++
	p.mu.Unlock()

	return &client{p: p}, nil
}

// ConnectCount reports how many connections were opened.
func (p *Peripheral) ConnectCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connects
}

// DisconnectCount reports how many connections were closed.
func (p *Peripheral) DisconnectCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnects
}

type advertisement struct {
	p *Peripheral
}

func (a advertisement) LocalName() string        { return a.p.Name }
func (a advertisement) ManufacturerData() []byte { return a.p.Mfg }
func (a advertisement) Connectable() bool        { return a.p.CanConnect }
func (a advertisement) RSSI() int                { return a.p.Rssi }
func (a advertisement) Addr() playbulb.Addr      { return a.p.Addr() }

type client struct {
	p *Peripheral
}

func (c *client) Addr() playbulb.Addr {
	return c.p.Addr()
}

func (c *client) DiscoverServices() ([]playbulb.Service, error) {
	uuids := make([]string, 0, len(c.p.Services))
	for u := range c.p.Services {
		uuids = append(uuids, u)
	}
	sort.Strings(uuids)

	out := make([]playbulb.Service, 0, len(uuids))
	for _, u := range uuids {
		out = append(out, service{uuid: u, chars: c.p.Services[u]})
	}
	return out, nil
}

func (c *client) CancelConnection() error {
	c.p.mu.Lock()
	c.p.disconnects++
	c.p.mu.Unlock()
	return nil
}

type service struct {
	uuid  string
	chars []string
}

func (s service) UUID() string { return s.uuid }

func (s service) DiscoverCharacteristics() ([]playbulb.Characteristic, error) {
	out := make([]playbulb.Characteristic, 0, len(s.chars))
	for _, u := range s.chars {
		out = append(out, playbulb.Characteristic{UUID: u})
	}
	return out, nil
}
