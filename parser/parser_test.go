package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const siglentFixture = "Record Length,7000,\n" +
	"Sample Interval,2e-09,\n" +
	"Model Number,SDS1104X-E,\n" +
	"Horizontal Units,s,\n" +
	"Vertical Units,V,\n" +
	"Second,Value\n" +
	"-1e-06,0.5\n" +
	"0,1.5\n" +
	"1e-06,2.5\n"

const batronixFixture = "Model,Magnova\n" +
	"time difference to trigger in s,0\n" +
	"time in s,CH1 in V\n" +
	"-0.001,0.25\n" +
	"0,0.5\n" +
	"0.001,0.75\n"

const batronixDisplayFixture = "start time in s,time difference in s\n" +
	"-0.002,1e-05\n" +
	"time in s,CH1 minimum in V,CH1 maximum in V,CH2 minimum in V,CH2 maximum in V\n" +
	"-0.002,-1,1,0,2\n" +
	"-0.00199,0,1,1,3\n"

const rigolFixture = "Time(s),CH1V\n" +
	"-0.001,0.2\n" +
	"0,0.4\n" +
	"0.001,0.6\n"

const rigolArbFixture = "RIGOL:CSV DATA FILE\n" +
	"Type:Arb\n" +
	"Sample Rate:1000\n" +
	"0.5\n" +
	"0.25\n" +
	"0.125\n"

func writeCapture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRegistryDispatch(t *testing.T) {
	tests := []struct {
		name    string
		content string
		parser  string
	}{
		{name: "siglent", content: siglentFixture, parser: "Siglent"},
		{name: "batronix", content: batronixFixture, parser: "Batronix"},
		{name: "batronix display", content: batronixDisplayFixture, parser: "Batronix Display Data"},
		{name: "rigol", content: rigolFixture, parser: "Rigol"},
		{name: "rigol arb", content: rigolArbFixture, parser: "Rigol Arb"},
		{name: "generic with header", content: "x,y\n1,2\n3,4\n", parser: "Generic X/Y"},
		{name: "generic headerless", content: "1,2\n3,4\n5,6\n", parser: "Generic X/Y"},
		{name: "generic unknown header", content: "Voltage,Current\n1,2\n3,4\n", parser: "Generic X/Y"},
	}

	reg := DefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCapture(t, tt.content)
			lines, err := PeekLines(path, DetectLineCount)
			require.NoError(t, err)

			p := reg.Select(lines)
			require.NotNil(t, p)
			require.Equal(t, tt.parser, p.Name())
		})
	}
}

func TestRegistryNoMatch(t *testing.T) {
	reg := DefaultRegistry()
	require.Nil(t, reg.Select([]string{"hello world", "not,a;capture"}))
	require.Nil(t, reg.Select(nil))

	// A display-data timing marker without an envelope column header is
	// claimed by nobody.
	require.Nil(t, reg.Select([]string{
		"start time in s,time difference in s",
		"0,1",
		"a,b,c",
	}))
}

func TestRegistryNames(t *testing.T) {
	names := DefaultRegistry().Names()
	require.Equal(t, []string{
		"Siglent",
		"Batronix",
		"Batronix Display Data",
		"Rigol",
		"Rigol Arb",
		"Generic X/Y",
	}, names)
}

func TestPeekLines(t *testing.T) {
	path := writeCapture(t, "one\r\ntwo\nthree")

	lines, err := PeekLines(path, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "three"}, lines)

	lines, err = PeekLines(path, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two"}, lines)
}

func TestPeekLinesMissingFile(t *testing.T) {
	_, err := PeekLines(filepath.Join(t.TempDir(), "nope.csv"), 10)
	require.Error(t, err)
}
