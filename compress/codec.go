// Package compress provides transparent decompression of capture files.
//
// Large captures are commonly stored gzip- or zstd-compressed; every load
// path opens its input through this package, so all vendor parsers accept
// compressed files without knowing about compression. The format is sniffed
// from the file's magic bytes, never from its extension.
//
// Supported formats: gzip, Zstandard, S2/Snappy framed streams, and LZ4
// frames. Anything else is passed through untouched.
package compress

import (
	"bytes"
	"fmt"
	"io"
)

// Format identifies the compression wrapping of a capture file.
type Format uint8

const (
	FormatNone Format = iota + 1 // FormatNone represents an uncompressed file.
	FormatGzip                   // FormatGzip represents a gzip stream.
	FormatZstd                   // FormatZstd represents a Zstandard stream.
	FormatS2                     // FormatS2 represents an S2/Snappy framed stream.
	FormatLZ4                    // FormatLZ4 represents an LZ4 frame.
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "None"
	case FormatGzip:
		return "Gzip"
	case FormatZstd:
		return "Zstd"
	case FormatS2:
		return "S2"
	case FormatLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Decompressor wraps a raw byte stream with streaming decompression.
//
// Implementations must stream: wrapping must not read the whole input into
// memory, so multi-GB captures decompress under a bounded memory budget.
type Decompressor interface {
	// WrapReader returns a reader producing the decompressed stream.
	// Closing the returned reader releases decoder resources but does not
	// close the underlying reader.
	WrapReader(r io.Reader) (io.ReadCloser, error)
}

// Magic byte sequences of the supported formats.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicS2   = []byte{0xff, 0x06, 0x00, 0x00}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Sniff identifies the compression format from the leading bytes of a file.
// Up to 4 bytes are inspected; shorter inputs that match no prefix report
// FormatNone.
func Sniff(magic []byte) Format {
	switch {
	case bytes.HasPrefix(magic, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(magic, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(magic, magicS2):
		return FormatS2
	case bytes.HasPrefix(magic, magicLZ4):
		return FormatLZ4
	default:
		return FormatNone
	}
}

// ForFormat returns the streaming decompressor for the given format.
// FormatNone has no decompressor; callers use the raw stream directly.
func ForFormat(format Format) (Decompressor, error) {
	switch format {
	case FormatGzip:
		return GzipDecompressor{}, nil
	case FormatZstd:
		return ZstdDecompressor{}, nil
	case FormatS2:
		return S2Decompressor{}, nil
	case FormatLZ4:
		return LZ4Decompressor{}, nil
	default:
		return nil, fmt.Errorf("no decompressor for format: %s", format)
	}
}
