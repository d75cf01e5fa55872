package playbulb

import (
	"encoding/hex"
	"strings"
)

// Addr is the radio address of a peripheral.
// It's a MAC address on Linux or a device UUID on OS X; either way it
// is stable for the session and identifies one physical light.
type Addr interface {
	String() string
	Bytes() []byte
}

// NewAddr creates an Addr from string. Case is preserved so that
// derived device identifiers match what the radio reported; use
// AddrEqual for comparisons.
func NewAddr(s string) Addr {
	return addr(s)
}

type addr string

func (a addr) String() string {
	return string(a)
}

func (a addr) Bytes() []byte {
	hexStr := strings.Replace(string(a), ":", "", -1)

	out, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil
	}

	return out
}

// AddrEqual reports whether two addresses name the same peripheral.
func AddrEqual(a, b Addr) bool {
	return strings.EqualFold(a.String(), b.String())
}
