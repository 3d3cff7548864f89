package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/series"
)

// BatronixDisplayParser decodes Batronix display-data CSV exports. These
// hold the on-screen envelope rather than the full record: per time step one
// minimum and one maximum column per channel. The envelope is collapsed to
// its midpoint so the result is a plain value series, with every channel
// kept separately and CH1 (or the lowest-numbered channel) as the primary
// trace.
type BatronixDisplayParser struct{}

var _ Parser = BatronixDisplayParser{}

const batronixDisplayMarker = "start time in s"

// batronixEnvelopeColumn matches normalized column headers like
// "ch1 minimum in v" / "ch2 maximum in v".
var batronixEnvelopeColumn = regexp.MustCompile(`^ch(\d+) (minimum|maximum) in v$`)

// Detection probes for the envelope column header line.
var (
	batronixEnvelopeMin = regexp.MustCompile(`ch\d+ minimum`)
	batronixEnvelopeMax = regexp.MustCompile(`ch\d+ maximum`)
)

// envelopeColumns holds per-channel column indexes into a payload row.
type envelopeColumns struct {
	min int
	max int
}

func (BatronixDisplayParser) Name() string { return "Batronix Display Data" }

// CanParse requires both the timing marker and a min/max envelope column
// header; timing-marker files without an envelope fall through to the other
// parsers.
func (BatronixDisplayParser) CanParse(firstLines []string) bool {
	hasMarker := false
	hasEnvelope := false
	for _, line := range firstLines {
		l := strings.ToLower(line)
		if strings.Contains(l, batronixDisplayMarker) {
			hasMarker = true
		}
		if strings.Contains(l, "time in s") &&
			batronixEnvelopeMin.MatchString(l) && batronixEnvelopeMax.MatchString(l) {
			hasEnvelope = true
		}
	}

	return hasMarker && hasEnvelope
}

func (p BatronixDisplayParser) Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	lr, err := openLines(path)
	if err != nil {
		return nil, nil, err
	}
	defer lr.Close()

	md := series.NewMetadata()
	md.Set(series.KeyFormat, p.Name())

	// Line 1 names the two timing fields, line 2 carries their values.
	header, err := lr.ReadLine()
	if err != nil {
		return nil, nil, malformed("missing timing header")
	}
	if !strings.Contains(strings.ToLower(header), batronixDisplayMarker) {
		return nil, nil, malformed("missing %q timing header", batronixDisplayMarker)
	}
	timing, err := lr.ReadLine()
	if err != nil {
		return nil, nil, malformed("missing timing values")
	}
	if cols := splitColumns(timing); len(cols) >= 2 {
		if start, err := parseField(cols[0]); err == nil {
			md.SetFloat(series.KeyStartTime, start)
		}
		if step, err := parseField(cols[1]); err == nil {
			md.SetFloat(series.KeyTimeStep, step)
		}
	}

	// Line 3 is the payload column header.
	columnHeader, err := lr.ReadLine()
	if err != nil {
		return nil, nil, malformed("missing payload column header")
	}
	timeCol, channels, err := parseEnvelopeHeader(columnHeader)
	if err != nil {
		return nil, nil, err
	}

	numbers := make([]int, 0, len(channels))
	for ch := range channels {
		numbers = append(numbers, ch)
	}
	sort.Ints(numbers)
	primary := numbers[0]

	var (
		times      []float64
		perChannel = make(map[int][]float64, len(channels))
		rows       int
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
		t, mids, ok := decodeEnvelopeRow(cols, timeCol, channels, primary)
		if !ok {
			continue
		}

		times = append(times, t)
		for ch, mid := range mids {
			perChannel[ch] = append(perChannel[ch], mid)
		}
		rows++

		if rows%chunkRows == 0 {
			if err := cancelled(ctx); err != nil {
				return nil, nil, err
			}
			reportEstimatedRows(lr, onProgress, rows)
		}
	}

	md.SetChannels(numbers)
	applyDefaultUnits(md)
	// This parser reports progress in rows, so the final report stays in
	// row units too.
	onProgress.Report(int64(len(times)), int64(len(times)), doneMessage(len(times)))

	return md, &series.Series{
		Time:     times,
		Value:    perChannel[primary],
		Channels: perChannel,
	}, nil
}

// parseEnvelopeHeader locates the time column and every channel that has
// both a minimum and a maximum column.
func parseEnvelopeHeader(header string) (timeCol int, channels map[int]envelopeColumns, err error) {
	timeCol = -1
	channels = make(map[int]envelopeColumns)

	for i, col := range splitColumns(header) {
		col = strings.ToLower(strings.TrimSpace(col))
		if col == "time in s" {
			timeCol = i
			continue
		}
		m := batronixEnvelopeColumn.FindStringSubmatch(col)
		if m == nil {
			continue
		}
		ch := 0
		for _, d := range m[1] {
			ch = ch*10 + int(d-'0')
		}
		ec, ok := channels[ch]
		if !ok {
			ec = envelopeColumns{min: -1, max: -1}
		}
		if m[2] == "minimum" {
			ec.min = i
		} else {
			ec.max = i
		}
		channels[ch] = ec
	}

	if timeCol < 0 {
		return 0, nil, malformed("no time column in payload header")
	}
	for ch, ec := range channels {
		if ec.min < 0 || ec.max < 0 {
			delete(channels, ch)
		}
	}
	if len(channels) == 0 {
		return 0, nil, malformed("no channel has both minimum and maximum columns")
	}

	return timeCol, channels, nil
}

// decodeEnvelopeRow extracts the timestamp and per-channel envelope
// midpoints from one payload row. The row is dropped when the timestamp or
// the primary channel cannot be decoded; broken secondary channels become
// NaN so the slices stay aligned.
func decodeEnvelopeRow(cols []string, timeCol int, channels map[int]envelopeColumns, primary int) (t float64, mids map[int]float64, ok bool) {
	if timeCol >= len(cols) {
		return 0, nil, false
	}
	t, err := parseField(cols[timeCol])
	if err != nil {
		return 0, nil, false
	}

	mids = make(map[int]float64, len(channels))
	for ch, ec := range channels {
		mid := math.NaN()
		if ec.min < len(cols) && ec.max < len(cols) {
			lo, errLo := parseField(cols[ec.min])
			hi, errHi := parseField(cols[ec.max])
			if errLo == nil && errHi == nil {
				mid = (lo + hi) / 2
			}
		}
		if ch == primary && math.IsNaN(mid) {
			return 0, nil, false
		}
		mids[ch] = mid
	}

	return t, mids, true
}

// reportEstimatedRows reports row-count progress, extrapolating the total
// row count from the bytes consumed so far.
func reportEstimatedRows(lr *lineReader, onProgress progress.Func, rows int) {
	current, total := lr.Progress()
	estimate := int64(rows)
	if current > 0 && total > 0 {
		estimate = int64(rows) * total / current
	}
	onProgress.Report(int64(rows), estimate,
		fmt.Sprintf("Reading data... (approximately %d points)", estimate))
}
