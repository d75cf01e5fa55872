package playbulb

import (
	"time"

	"github.com/pkg/errors"
)

// An Option is a configuration function, which configures the adapter.
type Option func(*Adapter) error

// OptName overrides the adapter name reported to the host.
func OptName(name string) Option {
	return func(a *Adapter) error {
		if name == "" {
			return errors.New("empty adapter name")
		}
		a.name = name
		return nil
	}
}

// OptAdvFilter replaces the Playbulb signature filter, for vendors
// shipping relabeled hardware with a different advertisement.
func OptAdvFilter(f AdvFilter) Option {
	return func(a *Adapter) error {
		if f == nil {
			return errors.New("nil advertisement filter")
		}
		a.discoverer.filter = f
		return nil
	}
}

// OptDiagnostics toggles the transient connect/enumerate pass run
// against each newly discovered light.
func OptDiagnostics(enable bool) Option {
	return func(a *Adapter) error {
		a.discoverer.diagnostics = enable
		return nil
	}
}

// OptConnectTimeout bounds the diagnostic connection.
func OptConnectTimeout(d time.Duration) Option {
	return func(a *Adapter) error {
		if d <= 0 {
			return errors.Errorf("invalid connect timeout %s", d)
		}
		a.discoverer.connectTimeout = d
		return nil
	}
}
