package series

import (
	"sort"
	"strconv"
)

// Consumer-visible metadata keys. Vendor parsers may add further keys copied
// verbatim from the capture preamble.
const (
	KeyFormat          = "format"
	KeyHorizontalUnits = "Horizontal Units"
	KeyVerticalUnits   = "Vertical Units"
	KeyChannels        = "Channels"
	KeySampleRate      = "Sample Rate"
	KeyStartTime       = "Start Time (s)"
	KeyTimeStep        = "Time Step (s)"
	KeyFingerprint     = "Fingerprint"
	KeyCompression     = "Compression"
)

// Default display units used when a capture file does not declare any.
const (
	DefaultHorizontalUnits = "s"
	DefaultVerticalUnits   = "V"
)

// Metadata maps a key to a small ordered list of values.
//
// It is purely descriptive: apart from the display units and the channel
// list, nothing in the load pipeline branches on metadata content.
type Metadata map[string][]string

// NewMetadata returns an empty metadata map.
func NewMetadata() Metadata {
	return make(Metadata)
}

// Set replaces the values stored under key.
func (m Metadata) Set(key string, values ...string) {
	m[key] = values
}

// SetFloat stores a single numeric value under key using the shortest
// round-trippable representation.
func (m Metadata) SetFloat(key string, value float64) {
	m[key] = []string{strconv.FormatFloat(value, 'g', -1, 64)}
}

// First returns the first value stored under key.
func (m Metadata) First(key string) (string, bool) {
	values, ok := m[key]
	if !ok || len(values) == 0 {
		return "", false
	}

	return values[0], true
}

// Format returns the detected format name, or an empty string.
func (m Metadata) Format() string {
	format, _ := m.First(KeyFormat)
	return format
}

// HorizontalUnits returns the declared time-axis units, defaulting to seconds.
func (m Metadata) HorizontalUnits() string {
	if units, ok := m.First(KeyHorizontalUnits); ok && units != "" {
		return units
	}

	return DefaultHorizontalUnits
}

// VerticalUnits returns the declared value-axis units, defaulting to volts.
func (m Metadata) VerticalUnits() string {
	if units, ok := m.First(KeyVerticalUnits); ok && units != "" {
		return units
	}

	return DefaultVerticalUnits
}

// SetChannels stores the list of available channel numbers.
func (m Metadata) SetChannels(numbers []int) {
	values := make([]string, len(numbers))
	for i, n := range numbers {
		values[i] = strconv.Itoa(n)
	}
	m[KeyChannels] = values
}

// ChannelNumbers returns the declared channel numbers in ascending order.
// Values that do not parse as integers are skipped.
func (m Metadata) ChannelNumbers() []int {
	values, ok := m[KeyChannels]
	if !ok {
		return nil
	}

	numbers := make([]int, 0, len(values))
	for _, v := range values {
		if n, err := strconv.Atoi(v); err == nil {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	return numbers
}

// Keys returns all metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
