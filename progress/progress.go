// Package progress defines the callback contract used to report long-running
// load operations.
//
// Parsers and the binary decoder invoke the callback between chunks, so a
// consumer can interleave UI updates with the load. Cancellation is not part
// of this package: loads take a context.Context and observe it at the same
// chunk boundaries.
package progress

// Func receives progress updates during a load.
//
// current and total are in the units chosen by the producer (bytes consumed
// against file size, or rows against an estimated row count); total may grow
// or shrink as estimates improve. message is a short human-readable status.
type Func func(current, total int64, message string)

// Report invokes the callback if it is non-nil. All wavecap producers report
// through this helper so a nil callback is always safe.
func (f Func) Report(current, total int64, message string) {
	if f != nil {
		f(current, total, message)
	}
}
