// File: tcp/dial.go
// Author: momentics <momentics@gmail.com>

package tcp

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/resolver"
	"github.com/momentics/hioload-io/sock"
)

// Dial resolves host:port and connects to the first reachable endpoint.
// Each attempt is bounded by the configured timeout.
func Dial(ctx context.Context, host string, port uint16, opts ...Option) (*sock.Socket, error) {
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
		ok, err := s.Connect(ci, cfg.timeout)
		if err != nil || !ok {
			_ = s.Close()
			lastErr = err
			continue
		}
		if cfg.noDelay {
			if err := s.SetBoolOption(sock.TCPNoDelay, true); err != nil {
				cfg.log.Debug("nodelay not applied", zap.Error(err))
			}
		}
		return s, nil
	}
	return nil, errors.Wrapf(lastErr, "dial %s:%d", host, port)
}

// DialRetry dials with jittered exponential backoff until the context
// ends.
func DialRetry(ctx context.Context, host string, port uint16, opts ...Option) (*sock.Socket, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	b := &backoff.Backoff{Min: cfg.backoffMin, Max: cfg.backoffMax, Jitter: true}
	for {
		s, err := Dial(ctx, host, port, opts...)
		if err == nil {
			return s, nil
		}
		delay := b.Duration()
		cfg.log.Debug("dial failed, backing off",
			zap.Duration("delay", delay), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "dial retry")
		case <-time.After(delay):
		}
	}
}
