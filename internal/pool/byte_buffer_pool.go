// Package pool provides pooled byte buffers for chunked capture reads.
//
// Both the CSV parsers and the raw binary decoder stream multi-GB files in
// fixed-size chunks; pooling the chunk buffers keeps memory proportional to
// one chunk and avoids re-allocating on every load.
package pool

import "sync"

const (
	// ChunkBufferDefaultSize is the size of a chunk buffer obtained from the
	// pool. One chunk bounds the memory held per in-flight read.
	ChunkBufferDefaultSize = 256 * 1024

	// ChunkBufferMaxThreshold is the largest buffer returned to the pool.
	// Oversized buffers (grown by an unusually wide layout) are dropped.
	ChunkBufferMaxThreshold = 4 * 1024 * 1024
)

// ByteBuffer is a reusable byte slice wrapper.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Reset resets the buffer to be empty, retaining allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// EnsureLen resizes the buffer to exactly n bytes, reallocating only when the
// current capacity is insufficient. Existing content is not preserved.
func (bb *ByteBuffer) EnsureLen(n int) {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
		return
	}
	bb.B = bb.B[:n]
}

var chunkBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, ChunkBufferDefaultSize)}
	},
}

// GetChunkBuffer retrieves a chunk buffer from the pool.
func GetChunkBuffer() *ByteBuffer {
	buf, _ := chunkBufferPool.Get().(*ByteBuffer)
	buf.Reset()

	return buf
}

// PutChunkBuffer returns a chunk buffer to the pool, dropping buffers that
// grew past ChunkBufferMaxThreshold.
func PutChunkBuffer(buf *ByteBuffer) {
	if cap(buf.B) > ChunkBufferMaxThreshold {
		return
	}
	chunkBufferPool.Put(buf)
}
