// File: tcp/options.go
// Author: momentics <momentics@gmail.com>

package tcp

import (
	"time"

	"go.uber.org/zap"

	"github.com/momentics/hioload-io/resolver"
)

type config struct {
	resolver   resolver.Resolver
	backlog    int
	timeout    time.Duration
	reuseAddr  bool
	nonblock   bool
	noDelay    bool
	log        *zap.Logger
	backoffMin time.Duration
	backoffMax time.Duration
}

func defaultConfig() config {
	return config{
		backlog:    128,
		timeout:    10 * time.Second,
		reuseAddr:  true,
		log:        zap.NewNop(),
		backoffMin: 100 * time.Millisecond,
		backoffMax: 5 * time.Second,
	}
}

// Option configures Listen and Dial.
type Option func(*config)

// WithResolver substitutes the resolver; the default is the
// process-wide one.
func WithResolver(r resolver.Resolver) Option {
	return func(c *config) { c.resolver = r }
}

// WithBacklog sets the listen backlog.
func WithBacklog(n int) Option {
	return func(c *config) { c.backlog = n }
}

// WithTimeout bounds each connect attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithReuseAddr toggles SO_REUSEADDR on listeners. Default true.
func WithReuseAddr(v bool) Option {
	return func(c *config) { c.reuseAddr = v }
}

// WithNonBlocking puts the listener socket in non-blocking mode, which
// accepted children inherit.
func WithNonBlocking(v bool) Option {
	return func(c *config) { c.nonblock = v }
}

// WithNoDelay sets TCP_NODELAY on dialed sockets.
func WithNoDelay(v bool) Option {
	return func(c *config) { c.noDelay = v }
}

// WithLogger injects a logger; the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithBackoff bounds the DialRetry backoff window.
func WithBackoff(min, max time.Duration) Option {
	return func(c *config) {
		c.backoffMin = min
		c.backoffMax = max
	}
}
