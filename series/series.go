// Package series defines the normalized waveform data model produced by the
// capture parsers and the raw binary decoder.
//
// A Series holds a single shared time axis plus one or more aligned value
// channels. A Metadata map carries free-form provenance describing where the
// series came from (format name, units, sample rate, detected offsets).
//
// Both types are treated as immutable after a load completes: each load
// produces a fresh Series/Metadata pair that replaces the previous one
// wholesale, so no partial-update races are possible between loads.
package series

import "sort"

// Series is a normalized two-column (or multi-channel) waveform.
//
// Time is in seconds and monotonically non-decreasing. Value holds the primary
// channel. When the source file carries multiple channels, Channels maps the
// channel number to its samples and also contains the primary channel; every
// channel has exactly len(Time) samples.
type Series struct {
	Time     []float64
	Value    []float64
	Channels map[int][]float64
}

// Len returns the number of samples on the shared time axis.
func (s *Series) Len() int {
	return len(s.Time)
}

// Channel returns the samples for the given channel number.
//
// Single-channel series have no channel map; in that case Channel reports
// false for every channel number and callers should use Value directly.
func (s *Series) Channel(n int) ([]float64, bool) {
	values, ok := s.Channels[n]
	return values, ok
}

// ChannelNumbers returns the available channel numbers in ascending order,
// or nil for a single-channel series.
func (s *Series) ChannelNumbers() []int {
	if len(s.Channels) == 0 {
		return nil
	}

	numbers := make([]int, 0, len(s.Channels))
	for n := range s.Channels {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	return numbers
}

// Duration returns the time span covered by the series in seconds, or zero
// for series with fewer than two samples.
func (s *Series) Duration() float64 {
	if len(s.Time) < 2 {
		return 0
	}

	return s.Time[len(s.Time)-1] - s.Time[0]
}
