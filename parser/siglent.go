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

// SiglentParser decodes Siglent CSV exports.
//
// These files carry a comma-separated key/value preamble ("Record Length",
// "Sample Interval", "Model Number", units, ...) terminated by the payload
// header "Second,Value".
type SiglentParser struct{}

var _ Parser = SiglentParser{}

const siglentPayloadHeader = "Second,Value"

func (SiglentParser) Name() string { return "Siglent" }

// CanParse recognizes the preamble by its "Record Length" and "Model Number"
// keys.
func (SiglentParser) CanParse(firstLines []string) bool {
	hasRecordLength := false
	hasModelNumber := false
	for _, line := range firstLines {
		if strings.Contains(line, "Record Length") {
			hasRecordLength = true
		}
		if strings.Contains(line, "Model Number") {
			hasModelNumber = true
		}
	}

	return hasRecordLength && hasModelNumber
}

func (p SiglentParser) Parse(ctx context.Context, path string, onProgress progress.Func) (series.Metadata, *series.Series, error) {
	lr, err := openLines(path)
	if err != nil {
		return nil, nil, err
	}
	defer lr.Close()

	md := series.NewMetadata()
	md.Set(series.KeyFormat, p.Name())

	// Preamble: key,value,... lines until the payload header.
	headerFound := false
	for n := 0; n < maxPreambleLines; n++ {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read preamble: %w", err)
		}
		if strings.Contains(line, siglentPayloadHeader) {
			headerFound = true
			break
		}
		if key, values, ok := splitPreambleLine(line); ok {
			md.Set(key, values...)
		}
	}
	if !headerFound {
		return nil, nil, malformed("missing %q payload header", siglentPayloadHeader)
	}

	times, values, err := streamPairs(ctx, lr, onProgress)
	if err != nil {
		return nil, nil, err
	}

	applyDefaultUnits(md)
	onProgress.Report(lr.file.Size(), lr.file.Size(), doneMessage(len(times)))

	return md, &series.Series{Time: times, Value: values}, nil
}

// splitPreambleLine splits a "key,value,..." preamble line. Lines without a
// comma carry no metadata and are skipped.
func splitPreambleLine(line string) (key string, values []string, ok bool) {
	if !strings.Contains(line, ",") {
		return "", nil, false
	}

	parts := strings.Split(strings.TrimSpace(line), ",")
	values = parts[1:]
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}

	return parts[0], values, true
}

// applyDefaultUnits fills in seconds/volts for captures that declare no
// units of their own.
func applyDefaultUnits(md series.Metadata) {
	if _, ok := md.First(series.KeyHorizontalUnits); !ok {
		md.Set(series.KeyHorizontalUnits, series.DefaultHorizontalUnits)
	}
	if _, ok := md.First(series.KeyVerticalUnits); !ok {
		md.Set(series.KeyVerticalUnits, series.DefaultVerticalUnits)
	}
}
