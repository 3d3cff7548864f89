package parser

import (
	"context"
	"strings"

	"github.com/tracekit/wavecap/progress"
	"github.com/tracekit/wavecap/series"
)

// GenericXYParser accepts plain two-column numeric CSV files, with or
// without an x/y style header. It recognizes almost anything tabular, so
// the registry keeps it last; captures whose header hints at a vendor time
// axis are left to the vendor parsers.
type GenericXYParser struct{}

var _ Parser = GenericXYParser{}

func (GenericXYParser) Name() string { return "Generic X/Y" }

func (GenericXYParser) CanParse(firstLines []string) bool {
	lines := make([]string, 0, len(firstLines))
	for _, line := range firstLines {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return false
	}

	first := splitColumns(lines[0])
	if len(first) < 2 {
		return false
	}

	c0 := strings.ToLower(strings.TrimSpace(first[0]))
	c1 := strings.ToLower(strings.TrimSpace(first[1]))
	if strings.HasPrefix(c0, "x") && strings.HasPrefix(c1, "y") {
		return true
	}
	// A time-like first column belongs to one of the vendor dialects.
	if strings.Contains(c0, "second") || strings.Contains(c0, "time(") {
		return false
	}

	// The first line may be an arbitrary header; require a run of at least
	// two numeric pairs in the lines after it.
	pairs := 0
	for _, line := range lines[1:] {
		cols := splitColumns(line)
		if len(cols) < 2 {
			break
		}
		if _, err := parseField(cols[0]); err != nil {
			break
		}
		if _, err := parseField(cols[1]); err != nil {
			break
		}
		pairs++
	}

	return pairs >= 2
}

func (p GenericXYParser) Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	lr, err := openLines(path)
	if err != nil {
		return nil, nil, err
	}
	defer lr.Close()

	md := series.NewMetadata()
	md.Set(series.KeyFormat, p.Name())

	// A leading x/y header row simply fails numeric coercion and is
	// dropped with the other unparseable rows.
	times, values, err := streamPairs(ctx, lr, onProgress)
	if err != nil {
		return nil, nil, err
	}

	applyDefaultUnits(md)
	onProgress.Report(lr.file.Size(), lr.file.Size(), doneMessage(len(times)))

	return md, &series.Series{Time: times, Value: values}, nil
}
