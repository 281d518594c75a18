//go:build linux

package asyncio_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func processCPU(t *testing.T) time.Duration {
	t.Helper()
	var ru unix.Rusage
	require.NoError(t, unix.Getrusage(unix.RUSAGE_SELF, &ru))
	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}

// An idle registered socket must not wake the loop: a connected socket
// is perpetually writable, so standing write interest on the
// level-triggered reactor would turn every wait tick into an immediate
// return.
func TestIdleLoopDoesNotSpin(t *testing.T) {
	l := newLoop(t)
	client, server := asyncPair(t, l)
	_, _ = client, server

	before := processCPU(t)
	time.Sleep(1 * time.Second)
	burned := processCPU(t) - before
	require.Less(t, burned, 250*time.Millisecond,
		"event loop burned %v of CPU over 1s idle", burned)
}
