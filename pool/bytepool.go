// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

// Package pool provides fixed-size byte buffer reuse for receive paths.
package pool

import "sync"

// BytePool hands out fixed-size byte slices and recycles returned ones.
type BytePool struct {
	size int
	p    sync.Pool
}

// NewBytePool creates a pool of size-byte buffers.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.p.New = func() any { return make([]byte, size) }
	return bp
}

// Size returns the fixed buffer size.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a buffer from the pool.
func (b *BytePool) GetBuffer() []byte {
	return b.p.Get().([]byte)
}

// PutBuffer returns a buffer to the pool. Wrong-sized buffers are
// dropped so reslices never poison the pool.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	b.p.Put(buf[:b.size])
}
