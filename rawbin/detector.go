package rawbin

import (
	"fmt"
	"math"
	"os"

	"github.com/tracekit/wavecap/errs"
	"github.com/tracekit/wavecap/internal/options"
)

// Header scan defaults. The scoring weights are empirical: they favor long
// plateaus and structured payloads (low transition density, few distinct
// values) over the high-entropy bytes typical of vendor headers.
const (
	DefaultMaxScanBytes     = 256 * 1024
	DefaultWindowSamples    = 4096
	DefaultTransitionWeight = 1.0
	DefaultUniqueWeight     = 0.75

	// minWindowSamples rejects candidate windows too short to score.
	minWindowSamples = 64
)

type detectorConfig struct {
	maxScanBytes     int64
	windowSamples    int
	transitionWeight float64
	uniqueWeight     float64
}

// DetectOption configures a header offset scan.
type DetectOption = options.Option[*detectorConfig]

// WithMaxScanBytes bounds how deep into the file the scan probes.
func WithMaxScanBytes(n int64) DetectOption {
	return options.New(func(c *detectorConfig) error {
		if n <= 0 {
			return fmt.Errorf("max scan bytes must be positive, got %d", n)
		}
		c.maxScanBytes = n

		return nil
	})
}

// WithWindowSamples sets the preview window size scored per candidate offset.
func WithWindowSamples(n int) DetectOption {
	return options.New(func(c *detectorConfig) error {
		if n < minWindowSamples {
			return fmt.Errorf("window must hold at least %d samples, got %d", minWindowSamples, n)
		}
		c.windowSamples = n

		return nil
	})
}

// WithScoreWeights overrides the transition-density and unique-value scoring
// weights.
func WithScoreWeights(transition, unique float64) DetectOption {
	return options.NoError(func(c *detectorConfig) {
		c.transitionWeight = transition
		c.uniqueWeight = unique
	})
}

// DetectHeaderOffset heuristically guesses the byte offset where waveform
// payload starts in the raw binary file at path.
//
// It probes candidate offsets in steps of 8 sample groups up to the scan
// limit, decodes a preview window of the target channel at each, and scores
// the window by transition density plus weighted unique-value fraction. The
// lowest score wins, ties broken by the earlier offset. Windows shorter than
// 64 samples are rejected.
//
// This is a heuristic with no exactness guarantee; on typical instrument
// dumps it lands no worse than the caller's requested or default offset.
// The descriptor's Offset and Length are ignored.
func DetectHeaderOffset(path string, desc Descriptor, opts ...DetectOption) (int64, error) {
	desc.Offset = 0
	desc.Length = 0
	if err := desc.Validate(); err != nil {
		return 0, err
	}

	cfg := &detectorConfig{
		maxScanBytes:     DefaultMaxScanBytes,
		windowSamples:    DefaultWindowSamples,
		transitionWeight: DefaultTransitionWeight,
		uniqueWeight:     DefaultUniqueWeight,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open binary capture: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat binary capture: %w", err)
	}

	step := int64(8 * desc.SampleBytes())
	limit := min(cfg.maxScanBytes, info.Size())

	bestOffset := int64(-1)
	bestScore := math.Inf(1)

	for offset := int64(0); offset < limit; offset += step {
		candidate := desc
		candidate.Offset = offset

		window, err := decodeWindowAt(f, info.Size(), candidate, cfg.windowSamples)
		if err != nil || len(window) < minWindowSamples {
			continue
		}

		score := cfg.transitionWeight*transitionDensity(window) +
			cfg.uniqueWeight*uniqueValueFraction(window)
		if score < bestScore {
			bestOffset, bestScore = offset, score
		}
	}

	if bestOffset < 0 {
		return 0, fmt.Errorf("%w: no scorable window within the first %d bytes",
			errs.ErrEmptyResult, limit)
	}

	return bestOffset, nil
}

// transitionDensity is the fraction of adjacent sample pairs that differ.
func transitionDensity(window []float64) float64 {
	if len(window) < 2 {
		return 0
	}

	transitions := 0
	for i := 1; i < len(window); i++ {
		if window[i] != window[i-1] {
			transitions++
		}
	}

	return float64(transitions) / float64(len(window)-1)
}

// uniqueValueFraction is the number of distinct values over the window size.
func uniqueValueFraction(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}

	distinct := make(map[float64]struct{}, len(window))
	for _, v := range window {
		distinct[v] = struct{}{}
	}

	return float64(len(distinct)) / float64(len(window))
}
