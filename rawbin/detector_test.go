package rawbin

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracekit/wavecap/errs"
)

func writeScanFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func randomBytes(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}

	return b
}

func constantBytes(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}

	return b
}

func TestDetectHeaderOffsetSkipsNoisyHeader(t *testing.T) {
	// A high-entropy 1KiB header followed by a long plateau: the detector
	// must land on the first window fully inside the plateau.
	data := append(randomBytes(1024, 1), constantBytes(8192, 0x55)...)
	path := writeScanFile(t, data)

	desc := NewDescriptor(ElementUint8, 1)

	offset, err := DetectHeaderOffset(path, desc, WithWindowSamples(256))
	require.NoError(t, err)
	require.GreaterOrEqual(t, offset, int64(1024))
	require.Less(t, offset, int64(1024+64))
}

func TestDetectHeaderOffsetPrefersLeadingPlateau(t *testing.T) {
	// Constant run first, random tail: the plateau at the start must win.
	data := append(constantBytes(8192, 0x10), randomBytes(4096, 2)...)
	path := writeScanFile(t, data)

	desc := NewDescriptor(ElementUint8, 1)

	offset, err := DetectHeaderOffset(path, desc, WithWindowSamples(256))
	require.NoError(t, err)
	require.Zero(t, offset)
}

func TestDetectHeaderOffsetMultiChannel(t *testing.T) {
	// int16 x 2 channels: step is 8 sample groups = 32 bytes. Header is 640
	// bytes of noise, payload a plateau.
	data := append(randomBytes(640, 3), constantBytes(16384, 0x00)...)
	path := writeScanFile(t, data)

	desc := NewDescriptor(ElementInt16, 1)
	desc.ChannelCount = 2
	desc.ChannelIndex = 1

	offset, err := DetectHeaderOffset(path, desc, WithWindowSamples(256))
	require.NoError(t, err)
	require.Zero(t, offset%int64(desc.SampleBytes()))
	require.GreaterOrEqual(t, offset, int64(640))
}

func TestDetectHeaderOffsetIgnoresDescriptorOffset(t *testing.T) {
	data := constantBytes(8192, 0x7f)
	path := writeScanFile(t, data)

	desc := NewDescriptor(ElementUint8, 1)
	desc.Offset = 4096
	desc.Length = 16

	offset, err := DetectHeaderOffset(path, desc, WithWindowSamples(256))
	require.NoError(t, err)
	require.Zero(t, offset)
}

func TestDetectHeaderOffsetTooSmall(t *testing.T) {
	// 32 samples cannot fill the 64-sample minimum window.
	path := writeScanFile(t, constantBytes(32, 0x01))

	desc := NewDescriptor(ElementUint8, 1)
	_, err := DetectHeaderOffset(path, desc, WithWindowSamples(256))
	require.ErrorIs(t, err, errs.ErrEmptyResult)
}

func TestDetectHeaderOffsetScanBound(t *testing.T) {
	// Noise everywhere except a plateau placed beyond the scan limit; the
	// bounded scan must settle for something within the limit.
	data := append(randomBytes(4096, 4), constantBytes(8192, 0x22)...)
	path := writeScanFile(t, data)

	desc := NewDescriptor(ElementUint8, 1)

	offset, err := DetectHeaderOffset(path, desc,
		WithWindowSamples(256), WithMaxScanBytes(2048))
	require.NoError(t, err)
	require.Less(t, offset, int64(2048))
}

func TestDetectOptionsValidation(t *testing.T) {
	path := writeScanFile(t, constantBytes(1024, 0))
	desc := NewDescriptor(ElementUint8, 1)

	_, err := DetectHeaderOffset(path, desc, WithMaxScanBytes(0))
	require.Error(t, err)

	_, err = DetectHeaderOffset(path, desc, WithWindowSamples(8))
	require.Error(t, err)
}

func TestDetectHeaderOffsetInvalidDescriptor(t *testing.T) {
	path := writeScanFile(t, constantBytes(1024, 0))

	desc := NewDescriptor(ElementUint8, 0)
	_, err := DetectHeaderOffset(path, desc)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}

func TestScoreComponents(t *testing.T) {
	require.Zero(t, transitionDensity([]float64{1, 1, 1, 1}))
	require.Equal(t, 1.0, transitionDensity([]float64{1, 2, 3, 4}))
	require.Zero(t, transitionDensity([]float64{5}))

	require.Equal(t, 0.25, uniqueValueFraction([]float64{1, 1, 1, 1}))
	require.Equal(t, 1.0, uniqueValueFraction([]float64{1, 2, 3, 4}))
	require.Zero(t, uniqueValueFraction(nil))
}
