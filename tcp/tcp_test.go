//go:build linux || windows

package tcp_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/resolver"
	"github.com/momentics/hioload-io/sock"
	"github.com/momentics/hioload-io/sockaddr"
	"github.com/momentics/hioload-io/tcp"
)

func TestListenDialEcho(t *testing.T) {
	ctx := context.Background()
	l, err := tcp.Listen(ctx, "127.0.0.1", 0)
	require.NoError(t, err)
	defer l.Close()

	go func() {
		_ = l.Serve(func(c *sock.Socket) {
			defer c.Close()
			buf := make([]byte, 4096)
			for {
				res, err := c.Recv(buf)
				if err != nil {
					return
				}
				n := res.EnsureNonBlock()
				if n == 0 {
					return
				}
				if _, err := c.SendAll(buf[:n]); err != nil {
					return
				}
			}
		})
	}()

	c, err := tcp.Dial(ctx, "127.0.0.1", l.BoundInfo().Port(), tcp.WithNoDelay(true))
	require.NoError(t, err)
	defer c.Close()

	payload := []byte("hello over raw sockets")
	n, err := c.SendAll(payload)
	require.NoError(t, err)
	require.Equal(t, int64(len(payload)), n)

	got := make([]byte, 0, len(payload))
	buf := make([]byte, 64)
	for len(got) < len(payload) {
		res, err := c.Recv(buf)
		require.NoError(t, err)
		cnt := res.EnsureNonBlock()
		require.NotZero(t, cnt, "premature eof")
		got = append(got, buf[:cnt]...)
	}
	require.True(t, bytes.Equal(got, payload))
}

func TestScopedAcceptClosesConnection(t *testing.T) {
	ctx := context.Background()
	l, err := tcp.Listen(ctx, "127.0.0.1", 0)
	require.NoError(t, err)
	defer l.Close()

	dialErr := make(chan error, 1)
	go func() {
		c, err := tcp.Dial(ctx, "127.0.0.1", l.BoundInfo().Port())
		if c != nil {
			defer c.Close()
		}
		dialErr <- err
	}()

	var seen *sock.Socket
	err = api.Accept[*sock.Socket](l, func(c *sock.Socket) error {
		seen = c
		require.True(t, c.IsOpen())
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	require.False(t, seen.IsOpen(), "accepted socket must be closed on scope exit")
	require.NoError(t, <-dialErr)
}

func TestAcceptIntoTransfersOwnership(t *testing.T) {
	ctx := context.Background()
	l, err := tcp.Listen(ctx, "127.0.0.1", 0)
	require.NoError(t, err)
	defer l.Close()

	dialErr := make(chan error, 1)
	go func() {
		c, err := tcp.Dial(ctx, "127.0.0.1", l.BoundInfo().Port())
		if c != nil {
			defer c.Close()
		}
		dialErr <- err
	}()

	var scope api.CloseScope
	c, err := api.AcceptInto[*sock.Socket](l, &scope)
	require.NoError(t, err)
	require.True(t, c.IsOpen())
	require.NoError(t, scope.Close())
	require.False(t, c.IsOpen())
	require.NoError(t, <-dialErr)
}

func TestListenerAddrCarriesBinding(t *testing.T) {
	l, err := tcp.Listen(context.Background(), "127.0.0.1", 0)
	require.NoError(t, err)
	defer l.Close()

	require.NotZero(t, l.BoundInfo().Port())
	require.Equal(t, sockaddr.ProtoTCP, l.BoundInfo().Protocol())
	addr := l.Addr()
	require.Equal(t, "127.0.0.1", addr.Host())
	require.Len(t, addr.Infos(), 1)
}

func TestServeRejectsNonBlockingListener(t *testing.T) {
	l, err := tcp.Listen(context.Background(), "127.0.0.1", 0, tcp.WithNonBlocking(true))
	require.NoError(t, err)
	defer l.Close()

	err = l.Serve(func(*sock.Socket) {})
	require.ErrorIs(t, err, api.ErrNotSupported)
}

func TestDialRetryWaitsForLateListener(t *testing.T) {
	// Reserve a port, release it, then bring the listener up only after
	// the first dial attempts have failed.
	probe, err := tcp.Listen(context.Background(), "127.0.0.1", 0)
	require.NoError(t, err)
	port := probe.BoundInfo().Port()
	require.NoError(t, probe.Close())

	go func() {
		time.Sleep(300 * time.Millisecond)
		l, err := tcp.Listen(context.Background(), "127.0.0.1", port)
		if err != nil {
			return
		}
		defer l.Close()
		_ = api.Accept[*sock.Socket](l, func(*sock.Socket) error { return nil })
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c, err := tcp.DialRetry(ctx, "127.0.0.1", port,
		tcp.WithBackoff(20*time.Millisecond, 200*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, c.Close())
}

func TestDialRetryHonorsContext(t *testing.T) {
	probe, err := tcp.Listen(context.Background(), "127.0.0.1", 0)
	require.NoError(t, err)
	port := probe.BoundInfo().Port()
	require.NoError(t, probe.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err = tcp.DialRetry(ctx, "127.0.0.1", port,
		tcp.WithBackoff(20*time.Millisecond, 100*time.Millisecond))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

// emptyResolver resolves every query to nothing.
type emptyResolver struct{}

func (emptyResolver) GetAddrInfo(context.Context, string, string, resolver.Hints) ([]sockaddr.ConnectionInfo, error) {
	return nil, nil
}

func TestDialFailsWhenResolutionIsEmpty(t *testing.T) {
	_, err := tcp.Dial(context.Background(), "unreachable.host", 80,
		tcp.WithResolver(emptyResolver{}))
	require.ErrorIs(t, err, api.ErrNotFound)
}
