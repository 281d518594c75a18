package api_test

import (
	"testing"

	"github.com/momentics/hioload-io/api"
)

func TestTransferredCarriesCount(t *testing.T) {
	r := api.Transferred(4096)
	if !r.IsSuccess() {
		t.Fatal("transferred result must be a success")
	}
	if r.Blocked() {
		t.Fatal("transferred result must not be blocked")
	}
	if got := r.Count(); got != 4096 {
		t.Fatalf("Count = %d, want 4096", got)
	}
}

func TestSentinelsAreNotCounts(t *testing.T) {
	for _, r := range []api.BlockingResult{api.WouldBlock, api.WouldBlockSecondary} {
		if r.IsSuccess() {
			t.Fatalf("%v must not be a success", r)
		}
		if !r.Blocked() {
			t.Fatalf("%v must report blocked", r)
		}
	}
	if api.DidntBlock.Blocked() {
		t.Fatal("DidntBlock must not report blocked")
	}
	if !api.DidntBlock.IsSuccess() {
		t.Fatal("DidntBlock is success with no meaningful count")
	}
}

func TestEnsureNonBlockUnwrapsCount(t *testing.T) {
	if got := api.Transferred(7).EnsureNonBlock(); got != 7 {
		t.Fatalf("EnsureNonBlock = %d, want 7", got)
	}
	if got := api.DidntBlock.EnsureNonBlock(); got != 0 {
		t.Fatalf("EnsureNonBlock = %d, want 0", got)
	}
}

func TestEnsureNonBlockPanicsOnSentinel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("EnsureNonBlock on WouldBlock must panic")
		}
	}()
	api.WouldBlock.EnsureNonBlock()
}

func TestCountPanicsOnSentinel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Count on WouldBlockSecondary must panic")
		}
	}()
	api.WouldBlockSecondary.Count()
}
