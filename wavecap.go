// Package wavecap loads oscilloscope waveform captures into a normalized
// time/value series.
//
// Two input families are supported:
//
//   - Vendor CSV exports (Siglent, Batronix full-record and display-data,
//     Rigol scope and arbitrary-waveform, plus a generic two-column x/y
//     fallback), detected from the first few lines of the file and parsed in
//     a single streaming pass with bounded memory.
//   - Raw binary sample dumps described by an explicit layout (element type,
//     byte order, channel interleave, header offset), with an optional
//     heuristic that locates the payload start inside an unknown header.
//
// Captures may be gzip, zstd, s2 or lz4 compressed; decompression is
// transparent and detected from magic bytes, not the file name.
//
// # Basic Usage
//
// Loading a capture of unknown format:
//
//	import "github.com/tracekit/wavecap"
//
//	md, s, err := wavecap.Load(ctx, "capture.csv", func(current, total int64, message string) {
//	    fmt.Printf("\r%s (%d/%d)", message, current, total)
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(md.Format(), s.Len(), "points")
//
// Decoding a raw binary dump:
//
//	desc := rawbin.NewDescriptor(rawbin.ElementInt16, 1e6)
//	desc.ChannelCount = 2
//	md, s, err := wavecap.LoadBinary(ctx, "dump.bin", desc, nil)
//
// Large series can be reduced for display with wavecap.Decimate, which keeps
// the per-chunk minimum and maximum so narrow spikes stay visible.
//
// This package provides convenient top-level wrappers around the parser,
// rawbin and decimate packages; use those directly for fine-grained control.
package wavecap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tracekit/wavecap/compress"
	"github.com/tracekit/wavecap/decimate"
	"github.com/tracekit/wavecap/errs"
	"github.com/tracekit/wavecap/internal/hash"
	"github.com/tracekit/wavecap/parser"
	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/rawbin"
	"github.com/tracekit/wavecap/series"
)

// The registry is stateless, so one shared instance serves all loads.
var defaultRegistry = parser.DefaultRegistry()

// Load detects the format of the capture at path and parses it into a
// normalized series.
//
// onProgress may be nil. The context is observed at chunk boundaries;
// cancelling returns errs.ErrCancelled. An unrecognized format returns
// errs.ErrUnsupportedFormat.
func Load(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	lines, err := parser.PeekLines(path, parser.DetectLineCount)
	if err != nil {
		return nil, nil, err
	}

	p := defaultRegistry.Select(lines)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: %s (known formats: %s)",
			errs.ErrUnsupportedFormat, filepath.Base(path),
			strings.Join(defaultRegistry.Names(), ", "))
	}

	md, s, err := p.Parse(ctx, path, onProgress)
	if err != nil {
		return nil, nil, err
	}
	stampProvenance(md, path, true)

	return md, s, nil
}

// LoadBinary decodes the raw binary sample dump at path according to desc.
func LoadBinary(ctx context.Context, path string, desc rawbin.Descriptor, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	md, s, err := rawbin.Decode(ctx, path, desc, onProgress)
	if err != nil {
		return nil, nil, err
	}
	// Binary dumps are read as-is, so no compression stamp.
	stampProvenance(md, path, false)

	return md, s, nil
}

// DetectHeaderOffset estimates where the sample payload starts in a raw
// binary dump with an unknown header, using desc for the sample layout.
func DetectHeaderOffset(path string, desc rawbin.Descriptor, opts ...rawbin.DetectOption) (int64, error) {
	return rawbin.DetectHeaderOffset(path, desc, opts...)
}

// Decimate reduces s to at most maxPoints samples per channel using min-max
// decimation. Series already within budget are returned unchanged.
func Decimate(s *series.Series, maxPoints int) *series.Series {
	return decimate.Apply(s, maxPoints)
}

// SupportedFormats returns the names of all loadable formats: the CSV
// dialects in detection priority order, then the raw binary decoder.
func SupportedFormats() []string {
	return append(defaultRegistry.Names(), rawbin.FormatName)
}

// stampProvenance records the capture fingerprint and, for the CSV path,
// the detected compression format.
func stampProvenance(md series.Metadata, path string, withCompression bool) {
	if fp, err := hash.FingerprintFile(path); err == nil {
		md.Set(series.KeyFingerprint, fp)
	}
	if !withCompression {
		return
	}
	if format, err := compress.Detect(path); err == nil && format != compress.FormatNone {
		md.Set(series.KeyCompression, format.String())
	}
}
