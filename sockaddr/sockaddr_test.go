package sockaddr_test

import (
	"testing"

	"github.com/momentics/hioload-io/sockaddr"
)

func TestNewTCPConnectionInfoRejectsBadLength(t *testing.T) {
	for _, n := range []int{0, 3, 5, 15, 17} {
		if _, err := sockaddr.NewTCPConnectionInfo(make([]byte, n), 80); err == nil {
			t.Fatalf("length %d accepted, want error", n)
		}
	}
}

func TestConnectionInfoIsImmutable(t *testing.T) {
	raw := []byte{192, 0, 2, 1}
	ci, err := sockaddr.NewTCPConnectionInfo(raw, 443)
	if err != nil {
		t.Fatal(err)
	}
	raw[0] = 0
	if got := ci.IP(); got[0] != 192 {
		t.Fatal("constructor must copy the address bytes")
	}
	ci.IP()[0] = 0
	if got := ci.IP(); got[0] != 192 {
		t.Fatal("IP must return a fresh copy")
	}
}

func TestConnectionInfoFamilies(t *testing.T) {
	v4, _ := sockaddr.NewTCPConnectionInfo([]byte{127, 0, 0, 1}, 1)
	if v4.Family() != sockaddr.FamilyINET {
		t.Fatalf("family = %v, want inet", v4.Family())
	}
	v6, _ := sockaddr.NewUDPConnectionInfo(make([]byte, 16), 1)
	if v6.Family() != sockaddr.FamilyINET6 {
		t.Fatalf("family = %v, want inet6", v6.Family())
	}
}

func TestKindsAndProtocols(t *testing.T) {
	tcp, _ := sockaddr.NewTCPConnectionInfo([]byte{10, 0, 0, 1}, 8080)
	if tcp.Kind() != sockaddr.KindStream || tcp.Protocol() != sockaddr.ProtoTCP {
		t.Fatalf("tcp info reports %v/%v", tcp.Kind(), tcp.Protocol())
	}
	udp, _ := sockaddr.NewUDPConnectionInfo([]byte{10, 0, 0, 1}, 8080)
	if udp.Kind() != sockaddr.KindDatagram || udp.Protocol() != sockaddr.ProtoUDP {
		t.Fatalf("udp info reports %v/%v", udp.Kind(), udp.Protocol())
	}
	if got := tcp.String(); got != "tcp://10.0.0.1:8080" {
		t.Fatalf("String = %q", got)
	}
}

func TestSameDistinguishesProtocol(t *testing.T) {
	tcp, _ := sockaddr.NewTCPConnectionInfo([]byte{10, 0, 0, 1}, 53)
	udp, _ := sockaddr.NewUDPConnectionInfo([]byte{10, 0, 0, 1}, 53)
	tcp2, _ := sockaddr.NewTCPConnectionInfo([]byte{10, 0, 0, 1}, 53)
	if sockaddr.Same(tcp, udp) {
		t.Fatal("tcp and udp on the same tuple must differ")
	}
	if !sockaddr.Same(tcp, tcp2) {
		t.Fatal("identical tuples must match")
	}
	if sockaddr.Same(tcp, nil) {
		t.Fatal("nil never matches a concrete info")
	}
}

func TestSocketAddressOverlapEquality(t *testing.T) {
	a1, _ := sockaddr.NewTCPConnectionInfo([]byte{192, 0, 2, 1}, 80)
	a2, _ := sockaddr.NewTCPConnectionInfo([]byte{192, 0, 2, 2}, 80)
	b, _ := sockaddr.NewTCPConnectionInfo([]byte{192, 0, 2, 9}, 80)

	named := sockaddr.NewSocketAddress("example.org", []sockaddr.ConnectionInfo{a1, a2})
	peer := sockaddr.NewSocketAddress("", []sockaddr.ConnectionInfo{a2})
	other := sockaddr.NewSocketAddress("", []sockaddr.ConnectionInfo{b})

	if !named.Equal(peer) {
		t.Fatal("a concrete peer inside the resolved set must match")
	}
	if named.Equal(other) {
		t.Fatal("disjoint sets must not match")
	}
	if named.Equal(sockaddr.SocketAddress{}) {
		t.Fatal("empty address matches nothing")
	}
}

func TestSocketAddressDropsNilInfos(t *testing.T) {
	ci, _ := sockaddr.NewTCPConnectionInfo([]byte{127, 0, 0, 1}, 80)
	addr := sockaddr.NewSocketAddress("h", []sockaddr.ConnectionInfo{nil, ci, nil})
	if got := len(addr.Infos()); got != 1 {
		t.Fatalf("infos = %d, want 1", got)
	}
	if addr.Empty() {
		t.Fatal("address with one info is not empty")
	}
}
