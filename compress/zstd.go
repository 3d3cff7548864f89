//go:build !gozstd

package compress

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdDecompressor decompresses Zstandard streams using the pure-Go decoder.
//
// Build with the gozstd tag to use the cgo-backed libzstd decoder instead;
// the pure-Go decoder is the default so cross-compilation stays trivial.
type ZstdDecompressor struct{}

var _ Decompressor = ZstdDecompressor{}

// WrapReader returns a streaming Zstandard reader over r.
func (ZstdDecompressor) WrapReader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, err
	}

	return decoder.IOReadCloser(), nil
}
