package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	weight float64
	limit  int
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.weight = 0.75 }),
		New(func(c *testConfig) error {
			c.limit = 100
			return nil
		}),
	)

	require.NoError(t, err)
	require.Equal(t, 0.75, cfg.weight)
	require.Equal(t, 100, cfg.limit)
}

func TestApplyStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	cfg := &testConfig{}

	err := Apply(cfg,
		New(func(*testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.limit = 1 }),
	)

	require.ErrorIs(t, err, boom)
	require.Zero(t, cfg.limit)
}
