// Package errs defines the sentinel errors shared across wavecap packages.
//
// Callers should match errors with errors.Is; wavecap wraps these sentinels
// with additional context using fmt.Errorf and the %w verb, so the underlying
// cause is preserved in the error chain.
package errs

import "errors"

// Load pipeline errors.
var (
	// ErrUnsupportedFormat indicates that no registered parser recognized the
	// capture file. The wrapped message lists the supported format names.
	ErrUnsupportedFormat = errors.New("unsupported capture format")

	// ErrMalformedInput indicates malformed or unexpected structure while
	// streaming a capture file. The wrapped message carries the cause.
	ErrMalformedInput = errors.New("malformed capture data")

	// ErrCancelled indicates a caller-requested abort, observed at a chunk
	// boundary. It is distinct from the other errors: no partial series is
	// returned and nothing went wrong with the input itself.
	ErrCancelled = errors.New("load cancelled")
)

// Binary layout errors.
var (
	// ErrInvalidLayout indicates an invalid layout descriptor, such as a
	// non-positive sample rate.
	ErrInvalidLayout = errors.New("invalid binary layout")

	// ErrUnsupportedElementType indicates an unknown element type tag in a
	// layout descriptor.
	ErrUnsupportedElementType = errors.New("unsupported element type")

	// ErrChannelIndexOutOfRange indicates a channel index that is not smaller
	// than the channel count.
	ErrChannelIndexOutOfRange = errors.New("channel index out of range")

	// ErrEmptyResult indicates that zero samples remain after applying the
	// offset, length and channel de-interleave of a layout descriptor.
	ErrEmptyResult = errors.New("no samples decoded")
)
