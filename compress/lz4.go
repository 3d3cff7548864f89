package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Decompressor decompresses LZ4 frame streams.
type LZ4Decompressor struct{}

var _ Decompressor = LZ4Decompressor{}

// WrapReader returns a streaming LZ4 frame reader over r.
func (LZ4Decompressor) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
