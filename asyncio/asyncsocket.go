// File: asyncio/asyncsocket.go
// Author: momentics <momentics@gmail.com>

package asyncio

import (
	"context"
	"io"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/sock"
)

// AsyncSocket adapts a socket to the suspension-based read/write
// contract. The socket is switched to non-blocking mode and registered
// with the loop for the lifetime of the adapter; the adapter owns the
// socket and closing the adapter closes it.
type AsyncSocket struct {
	s   *sock.Socket
	key *selectionKey
}

var _ api.AsyncStream = (*AsyncSocket)(nil)

// NewAsyncSocket registers s with the loop. s must be open.
//
// Only read interest is armed up front. A connected socket is writable
// almost all the time, so permanent write interest on a level-triggered
// reactor would wake the loop on every tick; WriteAllFrom arms write
// interest for exactly as long as a writer is parked.
func NewAsyncSocket(l *Loop, s *sock.Socket) (*AsyncSocket, error) {
	if err := s.SetNonBlocking(true); err != nil {
		return nil, err
	}
	key, err := l.register(s.RawHandle(), api.InterestRead)
	if err != nil {
		return nil, err
	}
	return &AsyncSocket{s: s, key: key}, nil
}

// ReadInto suspends until some data is available, then returns the
// count actually read. EOF is reported as io.EOF.
func (a *AsyncSocket) ReadInto(ctx context.Context, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	for {
		res, err := a.s.Recv(buf)
		if err != nil {
			return 0, err
		}
		if res.IsSuccess() {
			n := int(res.Count())
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if err := a.key.await(ctx, api.InterestRead); err != nil {
			return 0, err
		}
	}
}

// WriteAllFrom suspends until all of buf is written or EOF, returning
// the count written before EOF. Write interest is armed on the first
// would-block and dropped again when the writer resumes.
func (a *AsyncSocket) WriteAllFrom(ctx context.Context, buf []byte) (int, error) {
	total := 0
	armed := false
	defer func() {
		if armed {
			_ = a.key.SetInterest(api.InterestRead)
		}
	}()
	for total < len(buf) {
		res, err := a.s.Send(buf[total:])
		if err != nil {
			if sock.PeerClosed(err) {
				return total, nil
			}
			return total, err
		}
		if res.Blocked() {
			if !armed {
				if err := a.key.SetInterest(api.InterestRead | api.InterestWrite); err != nil {
					return total, err
				}
				armed = true
			}
			if err := a.key.await(ctx, api.InterestWrite); err != nil {
				return total, err
			}
			continue
		}
		total += int(res.Count())
	}
	return total, nil
}

// Key exposes the readiness registration.
func (a *AsyncSocket) Key() api.SelectionKey { return a.key }

// Socket returns the underlying socket. It remains owned by the
// adapter.
func (a *AsyncSocket) Socket() *sock.Socket { return a.s }

// Close withdraws the registration and closes the socket. Idempotent.
func (a *AsyncSocket) Close() error {
	_ = a.key.Cancel()
	return a.s.Close()
}
