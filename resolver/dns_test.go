package resolver_test

import (
	"context"
	"testing"

	"github.com/foxcpp/go-mockdns"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/resolver"
	"github.com/momentics/hioload-io/sockaddr"
)

func dnsServer(t *testing.T, zones map[string]mockdns.Zone) string {
	t.Helper()
	srv, err := mockdns.NewServer(zones, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv.LocalAddr().String()
}

func TestDNSResolverQueriesConfiguredServer(t *testing.T) {
	server := dnsServer(t, map[string]mockdns.Zone{
		"example.org.": {A: []string{"192.0.2.20"}},
	})
	d := &resolver.DNSResolver{Server: server}

	infos, err := d.GetAddrInfo(context.Background(), "example.org", "443",
		resolver.Hints{Family: sockaddr.FamilyINET, Kind: sockaddr.KindStream})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, []byte{192, 0, 2, 20}, infos[0].IP())
	require.Equal(t, uint16(443), infos[0].Port())
	require.Equal(t, sockaddr.ProtoTCP, infos[0].Protocol())
}

func TestDNSResolverLiteralIPFastPath(t *testing.T) {
	d := &resolver.DNSResolver{Server: "127.0.0.1:1"} // never contacted

	infos, err := d.GetAddrInfo(context.Background(), "192.0.2.30", "80",
		resolver.Hints{Kind: sockaddr.KindStream})
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, []byte{192, 0, 2, 30}, infos[0].IP())
}

func TestDNSResolverRejectsNamedServices(t *testing.T) {
	d := &resolver.DNSResolver{Server: "127.0.0.1:1"}

	_, err := d.GetAddrInfo(context.Background(), "example.org", "https", resolver.Hints{})
	require.ErrorIs(t, err, api.ErrNotSupported)
}

func TestDNSResolverPluggableIntoResolveTCP(t *testing.T) {
	server := dnsServer(t, map[string]mockdns.Zone{
		"svc.internal.": {A: []string{"192.0.2.40"}},
	})

	addr, err := resolver.ResolveTCP(context.Background(), "svc.internal", 9000,
		&resolver.DNSResolver{Server: server})
	require.NoError(t, err)
	require.Len(t, addr.Infos(), 1)
	require.Equal(t, sockaddr.ProtoTCP, addr.Infos()[0].Protocol())
}
