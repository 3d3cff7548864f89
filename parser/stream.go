package parser

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tracekit/wavecap/progress"
)

// maxPreambleLines bounds how far a parser scans for its payload header
// before declaring the file malformed.
const maxPreambleLines = 10000

// streamPairs decodes two-column (time, value) payload rows until EOF.
//
// Rows whose time or value column fails to coerce to a float are dropped,
// as are rows with fewer than two columns. Progress is reported in raw
// bytes against the on-disk size after every chunk; the context is observed
// at the same boundaries.
func streamPairs(ctx context.Context, lr *lineReader, onProgress progress.Func) ([]float64, []float64, error) {
	var (
		times  []float64
		values []float64
		rows   int
	)

	for {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read payload row: %w", err)
		}
		if line == "" {
			continue
		}

		cols := splitColumns(line)
		if len(cols) < 2 {
			continue
		}
		t, errT := parseField(cols[0])
		v, errV := parseField(cols[1])
		if errT != nil || errV != nil {
			continue
		}

		times = append(times, t)
		values = append(values, v)
		rows++

		if rows%chunkRows == 0 {
			if err := cancelled(ctx); err != nil {
				return nil, nil, err
			}
			current, total := lr.Progress()
			onProgress.Report(current, total, "Reading data...")
		}
	}

	return times, values, nil
}
