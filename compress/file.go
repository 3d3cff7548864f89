package compress

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// File is a capture file opened with transparent decompression.
//
// Read returns the decompressed stream. BytesRead reports how many raw
// (compressed) bytes have been consumed from disk, which together with Size
// gives exact progress against the on-disk file even when the decompressed
// length is unknown in advance.
//
// A File is used by a single load operation; it is not safe for concurrent
// use.
type File struct {
	raw    *os.File
	count  *countingReader
	stream io.Reader
	dec    io.Closer
	format Format
	size   int64
}

// Open opens the capture file at path, sniffing and unwrapping any supported
// compression. The caller must Close the returned File; Close releases both
// the decoder and the underlying file handle.
func Open(path string) (*File, error) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}

	info, err := raw.Stat()
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("stat capture file: %w", err)
	}

	var magic [4]byte
	n, err := io.ReadFull(raw, magic[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		raw.Close()
		return nil, fmt.Errorf("read capture magic: %w", err)
	}
	if _, err := raw.Seek(0, io.SeekStart); err != nil {
		raw.Close()
		return nil, fmt.Errorf("rewind capture file: %w", err)
	}

	file := &File{
		raw:    raw,
		count:  &countingReader{r: raw},
		format: Sniff(magic[:n]),
		size:   info.Size(),
	}
	file.stream = file.count

	if file.format != FormatNone {
		decompressor, err := ForFormat(file.format)
		if err != nil {
			raw.Close()
			return nil, err
		}
		wrapped, err := decompressor.WrapReader(file.count)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("open %s stream: %w", file.format, err)
		}
		file.stream = wrapped
		file.dec = wrapped
	}

	return file, nil
}

// Detect sniffs the compression format of the file at path without keeping
// it open.
func Detect(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatNone, fmt.Errorf("open capture file: %w", err)
	}
	defer f.Close()

	var magic [4]byte
	n, err := io.ReadFull(f, magic[:])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FormatNone, fmt.Errorf("read capture magic: %w", err)
	}

	return Sniff(magic[:n]), nil
}

// Read reads from the decompressed stream.
func (f *File) Read(p []byte) (int, error) {
	return f.stream.Read(p)
}

// Close releases the decoder, if any, then closes the underlying file.
func (f *File) Close() error {
	var decErr error
	if f.dec != nil {
		decErr = f.dec.Close()
		f.dec = nil
	}

	return errors.Join(decErr, f.raw.Close())
}

// Size returns the on-disk (compressed) size of the file in bytes.
func (f *File) Size() int64 {
	return f.size
}

// BytesRead returns the number of raw bytes consumed from disk so far.
// Always <= Size, and suitable as the numerator of a progress fraction.
func (f *File) BytesRead() int64 {
	return f.count.n
}

// Format returns the sniffed compression format.
func (f *File) Format() Format {
	return f.format
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}
