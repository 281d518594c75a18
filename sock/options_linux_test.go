//go:build linux

package sock_test

import (
	"testing"

	"github.com/momentics/hioload-io/sock"
)

func TestQuickAckRoundTrip(t *testing.T) {
	client, _ := connectedPair(t)
	if err := client.SetBoolOption(sock.TCPQuickAck, true); err != nil {
		t.Fatalf("set quickack: %v", err)
	}
	v, err := client.GetBoolOption(sock.TCPQuickAck)
	if err != nil {
		t.Fatalf("get quickack: %v", err)
	}
	if !v {
		t.Fatal("quickack did not stick")
	}
}
