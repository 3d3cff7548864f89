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

// RigolParser decodes Rigol scope CSV exports, which start directly with the
// "Time(s),CH1V" column header and carry no preamble.
type RigolParser struct{}

var _ Parser = RigolParser{}

const rigolPayloadHeader = "Time(s),CH1V"

func (RigolParser) Name() string { return "Rigol" }

func (RigolParser) CanParse(firstLines []string) bool {
	for _, line := range firstLines {
		if strings.Contains(line, rigolPayloadHeader) {
			return true
		}
	}

	return false
}

func (p RigolParser) Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
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
			return nil, nil, fmt.Errorf("read header: %w", err)
		}
		if strings.Contains(line, rigolPayloadHeader) {
			headerFound = true
			break
		}
	}
	if !headerFound {
		return nil, nil, malformed("missing %q payload header", rigolPayloadHeader)
	}

	times, values, err := streamPairs(ctx, lr, onProgress)
	if err != nil {
		return nil, nil, err
	}

	applyDefaultUnits(md)
	onProgress.Report(lr.file.Size(), lr.file.Size(), doneMessage(len(times)))

	return md, &series.Series{Time: times, Value: values}, nil
}
