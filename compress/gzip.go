package compress

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipDecompressor decompresses gzip streams, the most common wrapping for
// archived oscilloscope CSV exports.
type GzipDecompressor struct{}

var _ Decompressor = GzipDecompressor{}

// WrapReader returns a streaming gzip reader over r.
func (GzipDecompressor) WrapReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
