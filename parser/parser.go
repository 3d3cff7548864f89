// Package parser detects and streams vendor-specific oscilloscope CSV
// dialects into normalized series.
//
// Each dialect implements the Parser interface: a cheap CanParse check over
// the first few raw lines of a file, and a streaming Parse that separates
// the metadata preamble from the tabular payload and decodes the payload in
// bounded chunks. A Registry holds the parsers in a fixed priority order;
// the first parser whose CanParse matches wins, with the generic x/y
// fallback deliberately last so it cannot shadow vendor formats.
//
// All parsers read through the compress package, so gzip/zstd/s2/lz4
// compressed captures work transparently, and all observe the caller's
// context at chunk boundaries: cancelling maps to errs.ErrCancelled with no
// partial series returned.
package parser

import (
	"context"
	"fmt"

	"github.com/tracekit/wavecap/errs"
	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/series"
)

// DetectLineCount is the number of leading lines a Registry peeks at for
// format detection.
const DetectLineCount = 10

// chunkRows is the number of payload rows decoded between progress reports
// and cancellation checks.
const chunkRows = 65536

// Parser is one vendor dialect of the capture CSV family.
type Parser interface {
	// Name returns the human-readable format name, used in metadata and in
	// the unsupported-format error.
	Name() string

	// CanParse reports whether this parser recognizes the capture whose
	// first raw lines are given. It must be cheap, side-effect free and
	// must never panic on arbitrary input.
	CanParse(firstLines []string) bool

	// Parse streams the capture at path into a normalized series.
	//
	// Progress is reported between chunks; ctx is observed at the same
	// boundaries and cancelling returns errs.ErrCancelled with no series.
	// Malformed structure is reported as errs.ErrMalformedInput with the
	// cause in the wrapped message.
	Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error)
}

// Registry tries parsers in a fixed priority order.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates a registry trying the given parsers in order.
func NewRegistry(parsers ...Parser) *Registry {
	return &Registry{parsers: parsers}
}

// DefaultRegistry returns the built-in parsers in priority order. The
// generic x/y parser accepts almost any two-column numeric file, so it is
// last.
func DefaultRegistry() *Registry {
	return NewRegistry(
		SiglentParser{},
		BatronixParser{},
		BatronixDisplayParser{},
		RigolParser{},
		RigolArbParser{},
		GenericXYParser{},
	)
}

// Select returns the first parser recognizing the given leading lines, or
// nil when none match.
func (r *Registry) Select(firstLines []string) Parser {
	for _, p := range r.parsers {
		if p.CanParse(firstLines) {
			return p
		}
	}

	return nil
}

// Names returns the format names in priority order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.parsers))
	for i, p := range r.parsers {
		names[i] = p.Name()
	}

	return names
}

// cancelled maps a done context to the cancellation sentinel. Parsers call
// it at every chunk boundary.
func cancelled(ctx context.Context) error {
	if ctx != nil && ctx.Err() != nil {
		return fmt.Errorf("parse aborted: %w", errs.ErrCancelled)
	}

	return nil
}

// malformed wraps a cause as a malformed-input failure.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errs.ErrMalformedInput, fmt.Sprintf(format, args...))
}
