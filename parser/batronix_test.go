package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracekit/wavecap/errs"
)

func TestBatronixParse(t *testing.T) {
	path := writeCapture(t, batronixFixture)

	md, s, err := BatronixParser{}.Parse(context.Background(), path, nil)
	require.NoError(t, err)

	require.Equal(t, "Batronix", md.Format())
	model, ok := md.First("Model")
	require.True(t, ok)
	require.Equal(t, "Magnova", model)

	require.Equal(t, []float64{-0.001, 0, 0.001}, s.Time)
	require.Equal(t, []float64{0.25, 0.5, 0.75}, s.Value)
}

func TestBatronixMissingPayloadHeader(t *testing.T) {
	path := writeCapture(t, "Model,Magnova\ntime difference to trigger in s,0\n1,2\n")

	_, _, err := BatronixParser{}.Parse(context.Background(), path, nil)
	require.ErrorIs(t, err, errs.ErrMalformedInput)
}
