//go:build linux || windows

package asyncio_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/asyncio"
	"github.com/momentics/hioload-io/sock"
	"github.com/momentics/hioload-io/sockaddr"
)

func newLoop(t *testing.T) *asyncio.Loop {
	t.Helper()
	l, err := asyncio.NewLoop()
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

// asyncPair returns both ends of a loopback stream connection, each
// adapted onto the loop.
func asyncPair(t *testing.T, l *asyncio.Loop) (client, server *asyncio.AsyncSocket) {
	t.Helper()

	ln, err := sock.TCP(sockaddr.FamilyINET)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	ci, err := sockaddr.NewTCPConnectionInfo([]byte{127, 0, 0, 1}, 0)
	require.NoError(t, err)
	require.NoError(t, ln.Bind(ci))
	require.NoError(t, ln.Listen(1))
	bound, err := ln.LocalAddr()
	require.NoError(t, err)

	acceptErr := make(chan error, 1)
	var accepted *sock.Socket
	go func() {
		c, err := ln.Accept()
		accepted = c
		acceptErr <- err
	}()

	cs, err := sock.TCP(sockaddr.FamilyINET)
	require.NoError(t, err)
	ok, err := cs.Connect(bound, 5*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, <-acceptErr)

	client, err = asyncio.NewAsyncSocket(l, cs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	server, err = asyncio.NewAsyncSocket(l, accepted)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })
	return client, server
}

func TestWriteAllFromDeliversLargePayload(t *testing.T) {
	l := newLoop(t)
	client, server := asyncPair(t, l)

	// Larger than the socket buffers, so the writer must suspend on
	// would-block at least once.
	payload := make([]byte, 512*1024)
	for i := range payload {
		payload[i] = byte(i * 13)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		n, err := client.WriteAllFrom(ctx, payload)
		if err != nil {
			return err
		}
		if n != len(payload) {
			return fmt.Errorf("wrote %d of %d bytes", n, len(payload))
		}
		return nil
	})

	got := make([]byte, 0, len(payload))
	buf := make([]byte, 32*1024)
	for len(got) < len(payload) {
		n, err := server.ReadInto(ctx, buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	require.NoError(t, g.Wait())
	require.True(t, bytes.Equal(got, payload))
}

func TestEchoRoundTrip(t *testing.T) {
	l := newLoop(t)
	client, server := asyncPair(t, l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		buf := make([]byte, 4096)
		for {
			n, err := server.ReadInto(ctx, buf)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			if _, err := server.WriteAllFrom(ctx, buf[:n]); err != nil {
				return err
			}
		}
	})

	msg := []byte("suspension-based echo")
	n, err := client.WriteAllFrom(ctx, msg)
	require.NoError(t, err)
	require.Equal(t, len(msg), n)

	got := make([]byte, 0, len(msg))
	buf := make([]byte, 64)
	for len(got) < len(msg) {
		n, err := client.ReadInto(ctx, buf)
		require.NoError(t, err)
		got = append(got, buf[:n]...)
	}
	require.Equal(t, msg, got)

	require.NoError(t, client.Socket().Shutdown(sock.ShutdownWrite))
	require.NoError(t, g.Wait())
}

func TestReadIntoReportsEOF(t *testing.T) {
	l := newLoop(t)
	client, server := asyncPair(t, l)

	require.NoError(t, client.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := server.ReadInto(ctx, make([]byte, 16))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadIntoHonorsContext(t *testing.T) {
	l := newLoop(t)
	_, server := asyncPair(t, l)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := server.ReadInto(ctx, make([]byte, 16))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadIntoEmptyBufferIsNoop(t *testing.T) {
	l := newLoop(t)
	client, _ := asyncPair(t, l)

	n, err := client.ReadInto(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSelectionKeyInterest(t *testing.T) {
	l := newLoop(t)
	client, _ := asyncPair(t, l)

	k := client.Key()
	require.Equal(t, api.InterestRead, k.Interest())
	require.NoError(t, k.SetInterest(api.InterestRead|api.InterestWrite))
	require.Equal(t, api.InterestRead|api.InterestWrite, k.Interest())
	require.NoError(t, k.SetInterest(api.InterestRead))
	require.Equal(t, api.InterestRead, k.Interest())

	require.NoError(t, k.Cancel())
	require.NoError(t, k.Cancel())
}

func TestLoopCloseIsIdempotent(t *testing.T) {
	l, err := asyncio.NewLoop()
	require.NoError(t, err)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}
