package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Decompressor decompresses S2 framed streams. S2 readers also accept
// standard Snappy framed input.
type S2Decompressor struct{}

var _ Decompressor = S2Decompressor{}

// WrapReader returns a streaming S2 reader over r.
func (S2Decompressor) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
