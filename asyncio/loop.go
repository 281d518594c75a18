// File: asyncio/loop.go
// Author: momentics <momentics@gmail.com>

package asyncio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"go.uber.org/zap"

	"github.com/momentics/hioload-io/api"
	"github.com/momentics/hioload-io/reactor"
)

// waitTickMs bounds one reactor wait so Close is honored promptly.
const waitTickMs = 50

// Option configures a Loop.
type Option func(*Loop)

// WithLogger injects a logger; the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// Loop owns one platform reactor and dispatches its readiness events to
// parked operations. One goroutine drains the reactor; any number of
// goroutines may park on keys.
type Loop struct {
	r   reactor.EventReactor
	log *zap.Logger

	mu   sync.Mutex
	keys map[uintptr]*selectionKey

	// wakeups decouples reactor draining from key notification so a
	// burst larger than one Wait batch is dispatched in FIFO order.
	wakeups *queue.Queue

	closed atomic.Bool
	done   chan struct{}
}

// NewLoop creates the platform reactor and starts the dispatch
// goroutine.
func NewLoop(opts ...Option) (*Loop, error) {
	r, err := reactor.NewReactor()
	if err != nil {
		return nil, fmt.Errorf("asyncio: %w", err)
	}
	l := &Loop{
		r:       r,
		log:     zap.NewNop(),
		keys:    make(map[uintptr]*selectionKey),
		wakeups: queue.New(),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.run()
	return l, nil
}

func (l *Loop) run() {
	defer close(l.done)
	events := make([]reactor.Event, 128)
	for !l.closed.Load() {
		n, err := l.r.Wait(events, waitTickMs)
		if err != nil {
			if l.closed.Load() {
				return
			}
			l.log.Warn("reactor wait failed", zap.Error(err))
			continue
		}
		for i := 0; i < n; i++ {
			l.wakeups.Add(events[i])
		}
		l.dispatch()
	}
}

func (l *Loop) dispatch() {
	for l.wakeups.Length() > 0 {
		ev := l.wakeups.Remove().(reactor.Event)

		l.mu.Lock()
		k := l.keys[ev.Fd]
		l.mu.Unlock()
		if k == nil {
			continue
		}

		var ops api.InterestOps
		if ev.Ready&reactor.ReadReady != 0 {
			ops |= api.InterestRead
		}
		if ev.Ready&reactor.WriteReady != 0 {
			ops |= api.InterestWrite
		}
		if ev.Ready&reactor.ErrorReady != 0 {
			// Errors wake both directions; the retried operation
			// surfaces the actual failure.
			ops |= api.InterestRead | api.InterestWrite
		}
		if ops != 0 {
			k.notify(ops)
		}
	}
}

// register adds a handle and returns its selection key.
func (l *Loop) register(fd uintptr, ops api.InterestOps) (*selectionKey, error) {
	k := &selectionKey{
		loop:  l,
		fd:    fd,
		ready: make(chan api.InterestOps, 1),
	}
	k.interest.Store(uint32(ops))
	if err := l.r.Register(fd, toReactorInterest(ops), fd); err != nil {
		return nil, fmt.Errorf("asyncio: register: %w", err)
	}
	l.mu.Lock()
	l.keys[fd] = k
	l.mu.Unlock()
	return k, nil
}

func (l *Loop) unregister(fd uintptr) error {
	l.mu.Lock()
	delete(l.keys, fd)
	l.mu.Unlock()
	return l.r.Unregister(fd)
}

// Close stops the dispatch goroutine and releases the reactor.
// Idempotent.
func (l *Loop) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}
	<-l.done
	return l.r.Close()
}

func toReactorInterest(ops api.InterestOps) reactor.Interest {
	var ri reactor.Interest
	if ops&api.InterestRead != 0 {
		ri |= reactor.ReadReady
	}
	if ops&api.InterestWrite != 0 {
		ri |= reactor.WriteReady
	}
	return ri
}
