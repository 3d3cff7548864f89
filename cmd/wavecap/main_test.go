package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracekit/wavecap/series"
)

func TestWriteRows(t *testing.T) {
	s := &series.Series{
		Time:  []float64{0, 0.001, 0.002},
		Value: []float64{1.5, -2, 3},
	}

	var sb strings.Builder
	require.NoError(t, writeRows(&sb, s, 0, 0))
	require.Equal(t, "0,1.5\n0.001,-2\n0.002,3\n", sb.String())
}

func TestWriteRowsDecimates(t *testing.T) {
	s := &series.Series{
		Time:  []float64{0, 1, 2, 3, 4, 5, 6, 7},
		Value: []float64{5, 1, 9, 2, 8, 0, 7, 3},
	}

	var sb strings.Builder
	require.NoError(t, writeRows(&sb, s, 0, 4))
	require.Equal(t, "0,1\n0,9\n4,0\n4,8\n", sb.String())
}

func TestWriteRowsChannelSelection(t *testing.T) {
	s := &series.Series{
		Time:  []float64{0, 1},
		Value: []float64{1, 2},
		Channels: map[int][]float64{
			1: {1, 2},
			2: {10, 20},
		},
	}

	var sb strings.Builder
	require.NoError(t, writeRows(&sb, s, 2, 0))
	require.Equal(t, "0,10\n1,20\n", sb.String())

	require.Error(t, writeRows(&sb, s, 4, 0))
}

func TestRenderInfo(t *testing.T) {
	md := series.NewMetadata()
	md.Set(series.KeyFormat, "Rigol")
	md.Set("Model", "DS1054Z")

	s := &series.Series{
		Time:  []float64{0, 0.001},
		Value: []float64{1, 2},
	}

	var sb strings.Builder
	renderInfo(&sb, md, s)

	out := sb.String()
	require.Contains(t, out, "Rigol")
	require.Contains(t, out, "DS1054Z")
	require.Contains(t, out, "Points")
	require.Contains(t, out, "0.001 s")
	require.Contains(t, out, "1 V")
	require.Contains(t, out, "2 V")
}
