package hash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestFingerprintFile(t *testing.T) {
	pathA := writeFile(t, "a.csv", []byte("Second,Value\n0,1\n"))
	pathB := writeFile(t, "b.csv", []byte("Second,Value\n0,1\n"))
	pathC := writeFile(t, "c.csv", []byte("Second,Value\n0,2\n"))

	fpA, err := FingerprintFile(pathA)
	require.NoError(t, err)
	require.Len(t, fpA, 16)

	// Identical content yields an identical fingerprint regardless of path.
	fpB, err := FingerprintFile(pathB)
	require.NoError(t, err)
	require.Equal(t, fpA, fpB)

	fpC, err := FingerprintFile(pathC)
	require.NoError(t, err)
	require.NotEqual(t, fpA, fpC)
}

func TestFingerprintFileSizeMatters(t *testing.T) {
	// Same 64KiB prefix, different tail length.
	prefix := make([]byte, 80*1024)
	pathA := writeFile(t, "a.bin", prefix)
	pathB := writeFile(t, "b.bin", append(prefix, 0x42))

	fpA, err := FingerprintFile(pathA)
	require.NoError(t, err)
	fpB, err := FingerprintFile(pathB)
	require.NoError(t, err)
	require.NotEqual(t, fpA, fpB)
}

func TestFingerprintFileMissing(t *testing.T) {
	_, err := FingerprintFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
