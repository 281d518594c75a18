// File: sockaddr/address.go
// Author: momentics <momentics@gmail.com>

package sockaddr

import (
	"fmt"
	"strings"
)

// SocketAddress is a named endpoint: an optional hostname plus the set
// of endpoints it resolved to. One hostname may resolve to several IPs,
// so the set can hold more than one entry.
type SocketAddress struct {
	host  string
	infos []ConnectionInfo
}

// NewSocketAddress wraps a hostname and its resolved set. The slice is
// copied; nil entries are dropped.
func NewSocketAddress(host string, infos []ConnectionInfo) SocketAddress {
	kept := make([]ConnectionInfo, 0, len(infos))
	for _, ci := range infos {
		if ci != nil {
			kept = append(kept, ci)
		}
	}
	return SocketAddress{host: host, infos: kept}
}

// Host returns the hostname the address was resolved from; empty when
// the address was built from a concrete endpoint.
func (a SocketAddress) Host() string { return a.host }

// Infos returns a copy of the resolved set, in resolver order.
func (a SocketAddress) Infos() []ConnectionInfo {
	cp := make([]ConnectionInfo, len(a.infos))
	copy(cp, a.infos)
	return cp
}

// Empty reports whether the resolved set has no entries.
func (a SocketAddress) Empty() bool { return len(a.infos) == 0 }

// Equal reports whether the resolved sets of the two addresses overlap.
// Overlap, not strict set equality, is deliberate: it lets a concrete
// connected peer match a may-be-multi-valued named address.
func (a SocketAddress) Equal(b SocketAddress) bool {
	for _, x := range a.infos {
		for _, y := range b.infos {
			if Same(x, y) {
				return true
			}
		}
	}
	return false
}

func (a SocketAddress) String() string {
	parts := make([]string, len(a.infos))
	for i, ci := range a.infos {
		parts[i] = ci.String()
	}
	if a.host == "" {
		return strings.Join(parts, ",")
	}
	return fmt.Sprintf("%s[%s]", a.host, strings.Join(parts, ","))
}
