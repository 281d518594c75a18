package sock_test

import (
	"errors"
	"syscall"
	"testing"

	"github.com/momentics/hioload-io/sock"
)

func TestRetryAbsorbsEINTR(t *testing.T) {
	calls := 0
	n, err := sock.Retry(func() (int, error) {
		calls++
		if calls <= 2 {
			return 0, syscall.EINTR
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if n != 42 {
		t.Fatalf("n = %d, want 42", n)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3 (two interruptions absorbed)", calls)
	}
}

func TestRetryPassesOtherErrorsThrough(t *testing.T) {
	calls := 0
	_, err := sock.Retry(func() (int, error) {
		calls++
		return 0, syscall.ECONNRESET
	})
	if !errors.Is(err, syscall.ECONNRESET) {
		t.Fatalf("err = %v, want ECONNRESET untranslated", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on real errors)", calls)
	}
}

func TestRetryReturnsFirstSuccess(t *testing.T) {
	n, err := sock.Retry(func() (int64, error) { return 7, nil })
	if err != nil || n != 7 {
		t.Fatalf("got (%d, %v), want (7, nil)", n, err)
	}
}
