package pool_test

import (
	"testing"

	"github.com/momentics/hioload-io/pool"
)

func TestGetBufferHasConfiguredSize(t *testing.T) {
	bp := pool.NewBytePool(4096)
	if bp.Size() != 4096 {
		t.Fatalf("Size = %d, want 4096", bp.Size())
	}
	buf := bp.GetBuffer()
	if len(buf) != 4096 || cap(buf) != 4096 {
		t.Fatalf("buffer len=%d cap=%d, want 4096/4096", len(buf), cap(buf))
	}
}

func TestPutBufferRestoresLength(t *testing.T) {
	bp := pool.NewBytePool(64)
	buf := bp.GetBuffer()
	bp.PutBuffer(buf[:10])
	got := bp.GetBuffer()
	if len(got) != 64 {
		t.Fatalf("recycled buffer len = %d, want 64", len(got))
	}
}

func BenchmarkGetPut(b *testing.B) {
	bp := pool.NewBytePool(4096)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := bp.GetBuffer()
		buf[0] = byte(i)
		bp.PutBuffer(buf)
	}
}

func TestPutBufferDropsForeignSizes(t *testing.T) {
	bp := pool.NewBytePool(64)
	bp.PutBuffer(make([]byte, 16))
	if got := bp.GetBuffer(); len(got) != 64 {
		t.Fatalf("pool handed out %d-byte buffer, want 64", len(got))
	}
}
