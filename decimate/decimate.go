// Package decimate reduces a waveform to a bounded number of points for
// display using min-max decimation.
//
// Unlike naive sub-sampling, min-max decimation emits the minimum and the
// maximum of every chunk of consecutive samples, so no transient spike or
// dropout between those extremes is lost regardless of zoom level. The
// output is at most maxPoints long, making it cheap to hand to a renderer
// on every view-range change.
package decimate

import (
	"github.com/tracekit/wavecap/series"
)

// MinMax decimates an aligned time/value pair down to at most maxPoints.
//
// When len(times) <= maxPoints the inputs are returned unchanged (the same
// slices, not copies). Otherwise the samples are partitioned into contiguous
// chunks of factor = len/(maxPoints/2) samples; each chunk contributes its
// first sample's time twice, paired with the chunk minimum then maximum.
// Duplicating the time visually widens spikes instead of interpolating a
// separate x position for the maximum. Trailing samples that do not fill a
// complete chunk are dropped; at typical display budgets this loses less
// than one chunk of the tail. A maxPoints below 2 is treated as 2.
//
// The function is pure, runs in a single O(n) pass, and reaches a fixed point
// after one invocation: re-decimating its own output with the same maxPoints
// returns it unchanged.
func MinMax(times, values []float64, maxPoints int) ([]float64, []float64) {
	if maxPoints < 2 {
		maxPoints = 2
	}
	if len(times) <= maxPoints {
		return times, values
	}

	factor := len(times) / (maxPoints / 2)
	chunks := len(times) / factor

	outTimes := make([]float64, 0, 2*chunks)
	outValues := make([]float64, 0, 2*chunks)

	for c := 0; c < chunks; c++ {
		start := c * factor
		lo, hi := chunkExtremes(values[start : start+factor])

		outTimes = append(outTimes, times[start], times[start])
		outValues = append(outValues, lo, hi)
	}

	return outTimes, outValues
}

// Apply decimates every channel of a series against the shared time axis,
// returning a new series with at most maxPoints samples per channel.
//
// All channels are chunked identically, so the returned channels stay aligned
// on the decimated axis. The input series is not modified; when no decimation
// is needed the input is returned as-is.
func Apply(s *series.Series, maxPoints int) *series.Series {
	if maxPoints < 2 {
		maxPoints = 2
	}
	if s.Len() <= maxPoints {
		return s
	}

	outTimes, outValues := MinMax(s.Time, s.Value, maxPoints)
	out := &series.Series{Time: outTimes, Value: outValues}

	if len(s.Channels) > 0 {
		out.Channels = make(map[int][]float64, len(s.Channels))
		for n, values := range s.Channels {
			_, decimated := MinMax(s.Time, values, maxPoints)
			out.Channels[n] = decimated
		}
	}

	return out
}

func chunkExtremes(chunk []float64) (lo, hi float64) {
	lo, hi = chunk[0], chunk[0]
	for _, v := range chunk[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}
