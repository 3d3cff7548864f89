//go:build gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// ZstdDecompressor decompresses Zstandard streams using the cgo-backed
// libzstd decoder. Selected with the gozstd build tag.
type ZstdDecompressor struct{}

var _ Decompressor = ZstdDecompressor{}

type gozstdReadCloser struct {
	*gozstd.Reader
}

func (rc gozstdReadCloser) Close() error {
	rc.Release()
	return nil
}

// WrapReader returns a streaming Zstandard reader over r.
func (ZstdDecompressor) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return gozstdReadCloser{gozstd.NewReader(r)}, nil
}
