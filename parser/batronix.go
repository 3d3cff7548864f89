package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/series"
)

// BatronixParser decodes Batronix full-record CSV exports: a short textual
// preamble followed by the "time in s,CH1 in V" payload header and one
// sample per row.
type BatronixParser struct{}

var _ Parser = BatronixParser{}

const (
	batronixMarker        = "time difference to trigger in s"
	batronixPayloadHeader = "time in s,CH1 in V"
)

func (BatronixParser) Name() string { return "Batronix" }

func (BatronixParser) CanParse(firstLines []string) bool {
	for _, line := range firstLines {
		if strings.Contains(line, batronixMarker) {
			return true
		}
	}

	return false
}

func (p BatronixParser) Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	lr, err := openLines(path)
	if err != nil {
		return nil, nil, err
	}
	defer lr.Close()

	md := series.NewMetadata()
	md.Set(series.KeyFormat, p.Name())

	headerFound := false
	for n := 0; n < maxPreambleLines; n++ {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read preamble: %w", err)
		}
		if strings.Contains(line, batronixPayloadHeader) {
			headerFound = true
			break
		}
		if key, values, ok := splitPreambleLine(line); ok {
			md.Set(key, values...)
		}
	}
	if !headerFound {
		return nil, nil, malformed("missing %q payload header", batronixPayloadHeader)
	}

	times, values, err := streamPairs(ctx, lr, onProgress)
	if err != nil {
		return nil, nil, err
	}

	applyDefaultUnits(md)
	onProgress.Report(lr.file.Size(), lr.file.Size(), doneMessage(len(times)))

	return md, &series.Series{Time: times, Value: values}, nil
}
