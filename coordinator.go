package playbulb

import "sync"

// ScanCoordinator keeps the radio's actual scanning state converged
// with the adapter's scan intent. The radio starts and stops scanning
// on its own initiative around connections, so every scan event is
// answered by re-deriving the correct action from intent rather than
// trusting the last explicit command.
type ScanCoordinator struct {
	radio    Radio
	discover func(Peripheral)
	log      Logger

	mu     sync.Mutex
	intent bool
	sub    Subscription
}

// NewScanCoordinator wires a coordinator to the radio. discover is
// invoked for every peripheral the radio reports while scanning and
// may be nil.
func NewScanCoordinator(radio Radio, discover func(Peripheral)) *ScanCoordinator {
	return &ScanCoordinator{
		radio:    radio,
		discover: discover,
		log:      componentLogger("scan"),
	}
}

// StartDiscovery turns scan intent on and subscribes to the radio's
// events. A second call while discovery is active is a no-op: the
// existing subscription is kept and no extra scan command is issued.
func (c *ScanCoordinator) StartDiscovery() {
	c.mu.Lock()
	c.intent = true
	fresh := c.sub == nil
	if fresh {
		c.sub = c.radio.Subscribe(Handlers{
			StateChange: c.handleStateChange,
			ScanStart:   c.handleScanStart,
			ScanStop:    c.handleScanStop,
			Discover:    c.handleDiscover,
		})
	}
	c.mu.Unlock()

	if fresh && c.radio.State() == StatePoweredOn {
		c.startScanning()
	}
}

// StopDiscovery turns scan intent off, tells the radio to stop and
// drops the event subscription.
func (c *ScanCoordinator) StopDiscovery() {
	c.mu.Lock()
	c.intent = false
	sub := c.sub
	c.sub = nil
	c.mu.Unlock()

	c.stopScanning()
	if sub != nil {
		sub.Unsubscribe()
	}
}

// Active reports current scan intent.
func (c *ScanCoordinator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.intent
}

func (c *ScanCoordinator) handleStateChange(s State) {
	c.log.Debugf("radio state %v", s)

	if s == StatePoweredOn && c.Active() {
		c.startScanning()
		return
	}

	// Powered off, resetting, unauthorized, unsupported and unknown
	// all collapse to not scanning.
	c.stopScanning()
}

func (c *ScanCoordinator) handleScanStart() {
	// The radio restarts scanning by itself after certain operations.
	// Intent governs, not the most recent explicit command.
	if !c.Active() {
		c.log.Debug("scan started against intent, stopping")
		c.stopScanning()
	}
}

func (c *ScanCoordinator) handleScanStop() {
	// Scanning stops as a side effect of a connect/disconnect cycle;
	// resume if discovery is still wanted.
	if c.Active() {
		c.log.Debug("scan stopped while wanted, restarting")
		c.startScanning()
	}
}

func (c *ScanCoordinator) handleDiscover(p Peripheral) {
	if c.discover != nil {
		c.discover(p)
	}
}

// Scan commands are fire and forget; a radio error degrades discovery
// but never halts it.
func (c *ScanCoordinator) startScanning() {
	if err := c.radio.StartScanning(); err != nil {
		c.log.Errorf("start scanning: %s", err)
	}
}

func (c *ScanCoordinator) stopScanning() {
	if err := c.radio.StopScanning(); err != nil {
		c.log.Errorf("stop scanning: %s", err)
	}
}
