package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tracekit/wavecap/compress"
)

// peekByteLimit bounds how many decompressed bytes detection may consume.
const peekByteLimit = 64 * 1024

// PeekLines returns up to n leading lines of the capture at path, with line
// endings stripped. Compressed captures are peeked through their decoder.
// Fewer lines (including none) are returned for short files.
func PeekLines(path string, n int) ([]string, error) {
	f, err := compress.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(io.LimitReader(f, peekByteLimit))
	lines := make([]string, 0, n)
	for len(lines) < n {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			break
		}
	}

	return lines, nil
}

// lineReader streams lines from a capture file while tracking how many raw
// bytes have been consumed, so parsers can report exact progress against the
// on-disk size even for compressed inputs.
type lineReader struct {
	file *compress.File
	br   *bufio.Reader
}

func openLines(path string) (*lineReader, error) {
	f, err := compress.Open(path)
	if err != nil {
		return nil, err
	}

	return &lineReader{
		file: f,
		br:   bufio.NewReaderSize(f, 128*1024),
	}, nil
}

// ReadLine returns the next line with its ending stripped. At end of input
// it returns io.EOF; a final line without a trailing newline is returned
// first with a nil error.
func (lr *lineReader) ReadLine() (string, error) {
	line, err := lr.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}

		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Progress returns raw bytes consumed and the on-disk file size.
func (lr *lineReader) Progress() (current, total int64) {
	return lr.file.BytesRead(), lr.file.Size()
}

func (lr *lineReader) Close() error {
	return lr.file.Close()
}

// splitColumns splits a CSV row on commas. The capture dialects never quote
// fields, so a plain split is both correct and much faster than a full CSV
// reader on multi-GB payloads.
func splitColumns(line string) []string {
	return strings.Split(line, ",")
}

// parseField parses one numeric CSV field, tolerating surrounding spaces.
func parseField(field string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(field), 64)
}

// doneMessage formats the final progress message.
func doneMessage(points int) string {
	return fmt.Sprintf("Done! Total points: %d", points)
}
