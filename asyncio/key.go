// File: asyncio/key.go
// Author: momentics <momentics@gmail.com>

package asyncio

import (
	"context"
	"sync/atomic"

	"github.com/momentics/hioload-io/api"
)

// selectionKey is one registration of readiness interest with a Loop.
type selectionKey struct {
	loop *Loop
	fd   uintptr

	interest  atomic.Uint32
	cancelled atomic.Bool

	// ready is buffered by one. Notifications are level-style, so
	// collapsing duplicate wakeups is harmless: the parked operation
	// retries and re-waits on would-block.
	ready chan api.InterestOps
}

var _ api.SelectionKey = (*selectionKey)(nil)

// Interest returns the currently armed ops.
func (k *selectionKey) Interest() api.InterestOps {
	return api.InterestOps(k.interest.Load())
}

// SetInterest replaces the armed ops.
func (k *selectionKey) SetInterest(ops api.InterestOps) error {
	if err := k.loop.r.Modify(k.fd, toReactorInterest(ops), k.fd); err != nil {
		return err
	}
	k.interest.Store(uint32(ops))
	return nil
}

// Ready yields the ops that became ready.
func (k *selectionKey) Ready() <-chan api.InterestOps { return k.ready }

// Cancel withdraws the registration. Idempotent.
func (k *selectionKey) Cancel() error {
	if !k.cancelled.CompareAndSwap(false, true) {
		return nil
	}
	return k.loop.unregister(k.fd)
}

func (k *selectionKey) notify(ops api.InterestOps) {
	select {
	case k.ready <- ops:
	default:
	}
}

// await parks the calling goroutine until one of the wanted directions
// becomes ready or the context ends. Wakeups for other directions are
// swallowed and the park continues.
func (k *selectionKey) await(ctx context.Context, want api.InterestOps) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ops := <-k.ready:
			if ops&want != 0 {
				return nil
			}
		}
	}
}
