package series

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeriesLenAndDuration(t *testing.T) {
	s := &Series{
		Time:  []float64{-0.001, 0, 0.001, 0.002},
		Value: []float64{1, 2, 3, 4},
	}

	require.Equal(t, 4, s.Len())
	require.InDelta(t, 0.003, s.Duration(), 1e-12)
}

func TestSeriesDurationDegenerate(t *testing.T) {
	require.Zero(t, (&Series{}).Duration())
	require.Zero(t, (&Series{Time: []float64{5}}).Duration())
}

func TestSeriesChannels(t *testing.T) {
	s := &Series{
		Time:  []float64{0, 1},
		Value: []float64{10, 20},
		Channels: map[int][]float64{
			3: {1, 2},
			1: {10, 20},
		},
	}

	require.Equal(t, []int{1, 3}, s.ChannelNumbers())

	ch, ok := s.Channel(3)
	require.True(t, ok)
	require.Equal(t, []float64{1, 2}, ch)

	_, ok = s.Channel(2)
	require.False(t, ok)
}

func TestSeriesSingleChannel(t *testing.T) {
	s := &Series{Time: []float64{0}, Value: []float64{1}}

	require.Nil(t, s.ChannelNumbers())
	_, ok := s.Channel(1)
	require.False(t, ok)
}
