package compress

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name  string
		magic []byte
		want  Format
	}{
		{name: "Gzip", magic: []byte{0x1f, 0x8b, 0x08, 0x00}, want: FormatGzip},
		{name: "Zstd", magic: []byte{0x28, 0xb5, 0x2f, 0xfd}, want: FormatZstd},
		{name: "S2", magic: []byte{0xff, 0x06, 0x00, 0x00}, want: FormatS2},
		{name: "LZ4", magic: []byte{0x04, 0x22, 0x4d, 0x18}, want: FormatLZ4},
		{name: "PlainCSV", magic: []byte("Second,Value"), want: FormatNone},
		{name: "Short", magic: []byte{0x28}, want: FormatNone},
		{name: "Empty", magic: nil, want: FormatNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Sniff(tt.magic))
		})
	}
}

func TestFormatString(t *testing.T) {
	require.Equal(t, "Gzip", FormatGzip.String())
	require.Equal(t, "Zstd", FormatZstd.String())
	require.Equal(t, "S2", FormatS2.String())
	require.Equal(t, "LZ4", FormatLZ4.String())
	require.Equal(t, "None", FormatNone.String())
	require.Equal(t, "Unknown", Format(0).String())
}

func compressPayload(t *testing.T, format Format, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	switch format {
	case FormatGzip:
		w := gzip.NewWriter(&buf)
		_, err := w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case FormatZstd:
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case FormatS2:
		w := s2.NewWriter(&buf)
		_, err := w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case FormatLZ4:
		w := lz4.NewWriter(&buf)
		_, err := w.Write(payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		t.Fatalf("unsupported format %s", format)
	}

	return buf.Bytes()
}

func TestOpenCompressed(t *testing.T) {
	payload := bytes.Repeat([]byte("0.000001,0.42\n"), 2000)

	for _, format := range []Format{FormatGzip, FormatZstd, FormatS2, FormatLZ4} {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "capture.csv.bin")
			compressed := compressPayload(t, format, payload)
			require.NoError(t, os.WriteFile(path, compressed, 0o644))

			f, err := Open(path)
			require.NoError(t, err)
			defer f.Close()

			require.Equal(t, format, f.Format())
			require.Equal(t, int64(len(compressed)), f.Size())

			decompressed, err := io.ReadAll(f)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)

			require.Equal(t, f.Size(), f.BytesRead())
			require.NoError(t, f.Close())
		})
	}
}

func TestOpenPlain(t *testing.T) {
	payload := []byte("Second,Value\n0,1\n1,2\n")
	path := filepath.Join(t.TempDir(), "capture.csv")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, FormatNone, f.Format())

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, payload, content)
	require.Equal(t, int64(len(payload)), f.BytesRead())
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, FormatNone, f.Format())
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Empty(t, content)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.csv")
	require.NoError(t, os.WriteFile(plain, []byte("x,y\n"), 0o644))

	gz := filepath.Join(dir, "capture.gz")
	require.NoError(t, os.WriteFile(gz, compressPayload(t, FormatGzip, []byte("x,y\n")), 0o644))

	format, err := Detect(plain)
	require.NoError(t, err)
	require.Equal(t, FormatNone, format)

	format, err = Detect(gz)
	require.NoError(t, err)
	require.Equal(t, FormatGzip, format)
}

func TestForFormatUnknown(t *testing.T) {
	_, err := ForFormat(FormatNone)
	require.Error(t, err)
}
