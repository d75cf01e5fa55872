package playbulb

import (
	"bytes"
	"strings"
)

// Playbulb advertisement signature. The name prefix includes the
// trailing space; the manufacturer data opens with the Mipow vendor
// bytes "MI" (0x4d49).
const playbulbNamePrefix = "PLAYBULB "

var playbulbVendorSig = []byte{0x4d, 0x49}

// IsPlaybulb reports whether an advertisement belongs to a Playbulb
// light: local name present with the Playbulb prefix, manufacturer
// data present with the vendor signature, and connectable. Absent
// fields simply fail the check.
func IsPlaybulb(a Advertisement) bool {
	if !strings.HasPrefix(a.LocalName(), playbulbNamePrefix) {
		return false
	}

	md := a.ManufacturerData()
	if len(md) == 0 || !bytes.HasPrefix(md, playbulbVendorSig) {
		return false
	}

	return a.Connectable()
}
