package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/series"
)

// RigolArbParser decodes Rigol arbitrary-waveform CSV exports. These carry a
// "RIGOL:CSV DATA FILE" banner, a few colon-separated metadata lines, and a
// single column of voltage samples with no time axis; the time axis is
// synthesized from the declared sample rate.
type RigolArbParser struct{}

var _ Parser = RigolArbParser{}

const rigolArbMarker = "RIGOL:CSV DATA FILE"

func (RigolArbParser) Name() string { return "Rigol Arb" }

func (RigolArbParser) CanParse(firstLines []string) bool {
	for _, line := range firstLines {
		if strings.Contains(line, rigolArbMarker) {
			return true
		}
	}

	return false
}

func (p RigolArbParser) Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	lr, err := openLines(path)
	if err != nil {
		return nil, nil, err
	}
	defer lr.Close()

	md := series.NewMetadata()
	md.Set(series.KeyFormat, p.Name())

	// Metadata lives in colon-separated lines near the top; the payload
	// starts at the first line opening with a digit.
	var (
		values []float64
		rows   int
	)
	preamble := true
	for i := 0; ; i++ {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		if line == "" {
			continue
		}

		if preamble {
			if !startsWithDigit(line) {
				if i < DetectLineCount {
					if key, value, ok := strings.Cut(line, ":"); ok {
						md.Set(strings.TrimSpace(key), strings.TrimSpace(value))
					}
				}
				continue
			}
			preamble = false
		}

		if !startsWithDigit(line) {
			continue
		}
		v, err := parseField(splitColumns(line)[0])
		if err != nil {
			continue
		}

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

	rate := 1.0
	if raw, ok := md.First(series.KeySampleRate); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && parsed > 0 {
			rate = parsed
		}
	}

	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i) / rate
	}

	applyDefaultUnits(md)
	onProgress.Report(lr.file.Size(), lr.file.Size(), doneMessage(len(values)))

	return md, &series.Series{Time: times, Value: values}, nil
}

func startsWithDigit(line string) bool {
	return line[0] >= '0' && line[0] <= '9'
}
