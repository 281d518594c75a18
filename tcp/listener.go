// File: tcp/listener.go
// Author: momentics <momentics@gmail.com>

package tcp

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/resolver"
	"github.com/momentics/hioload-io/sock"
	"github.com/momentics/hioload-io/sockaddr"
)

// Listener is a bound, listening TCP socket implementing
// api.Listener[*sock.Socket].
type Listener struct {
	s     *sock.Socket
	host  string
	bound sockaddr.ConnectionInfo
	log   *zap.Logger
}

var _ api.Listener[*sock.Socket] = (*Listener)(nil)

// Listen resolves host:port and binds a listening socket to the first
// usable endpoint. Port 0 picks an ephemeral port; Addr reports the
// actual binding.
func Listen(ctx context.Context, host string, port uint16, opts ...Option) (*Listener, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	addr, err := resolver.ResolveTCP(ctx, host, port, cfg.resolver)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", host)
	}
	if addr.Empty() {
		return nil, errors.Wrapf(api.ErrNotFound, "resolve %s", host)
	}

	var lastErr error
	for _, ci := range addr.Infos() {
		s, err := sock.TCP(ci.Family())
		if err != nil {
			lastErr = err
			continue
		}
		if cfg.reuseAddr {
			if err := s.SetBoolOption(sock.ReuseAddr, true); err != nil {
				cfg.log.Debug("reuseaddr not applied", zap.Error(err))
			}
		}
		if cfg.nonblock {
			if err := s.SetNonBlocking(true); err != nil {
				_ = s.Close()
				lastErr = err
				continue
			}
		}
		if err := s.Bind(ci); err != nil {
			_ = s.Close()
			lastErr = err
			continue
		}
		if err := s.Listen(cfg.backlog); err != nil {
			_ = s.Close()
			lastErr = err
			continue
		}
		bound, err := s.LocalAddr()
		if err != nil {
			_ = s.Close()
			lastErr = err
			continue
		}
		cfg.log.Info("listening", zap.Stringer("addr", bound))
		return &Listener{s: s, host: host, bound: bound, log: cfg.log}, nil
	}
	return nil, errors.Wrapf(lastErr, "listen %s:%d", host, port)
}

// UnsafeAccept returns a newly accepted socket; the caller owns it. A
// non-blocking listener with nothing pending returns (nil, nil).
func (l *Listener) UnsafeAccept() (*sock.Socket, error) {
	return l.s.Accept()
}

// Addr returns the listener's named address with its actual binding.
func (l *Listener) Addr() sockaddr.SocketAddress {
	return sockaddr.NewSocketAddress(l.host, []sockaddr.ConnectionInfo{l.bound})
}

// BoundInfo returns the concrete bound endpoint (useful after
// ephemeral-port binds).
func (l *Listener) BoundInfo() sockaddr.ConnectionInfo { return l.bound }

// Socket exposes the listening socket for mode toggles and options.
func (l *Listener) Socket() *sock.Socket { return l.s }

// Close releases the listening socket. Idempotent.
func (l *Listener) Close() error { return l.s.Close() }

// Serve accepts connections until the listener closes, running handler
// on its own goroutine per connection. Accept failures are logged and
// the loop continues. Blocking listeners only.
func (l *Listener) Serve(handler func(*sock.Socket)) error {
	if l.s.NonBlocking() {
		return errors.Wrap(api.ErrNotSupported, "serve on non-blocking listener")
	}
	for {
		c, err := l.s.Accept()
		if err != nil {
			if errors.Is(err, api.ErrClosed) {
				return nil
			}
			l.log.Warn("accept failed", zap.Error(err))
			continue
		}
		go handler(c)
	}
}
