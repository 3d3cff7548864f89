package rawbin

import (
	"fmt"

	"github.com/tracekit/wavecap/endian"
	"github.com/tracekit/wavecap/errs"
)

// Descriptor describes the layout of a raw binary capture file.
//
// The zero value is not usable; construct descriptors with NewDescriptor and
// adjust fields as needed, so Scale and ChannelCount carry their natural
// defaults of 1.
type Descriptor struct {
	// Engine is the byte order of stored elements. Nil selects little-endian.
	Engine endian.EndianEngine

	// Element is the stored numeric type of each element.
	Element ElementType

	// Offset is the requested header byte offset. Decoding starts at the
	// effective offset: Offset rounded up to the next sample boundary.
	Offset int64

	// Length optionally bounds the payload in bytes, counted from Offset.
	// Zero means "until end of file".
	Length int64

	// ChannelCount is the number of interleaved channels per sample group.
	ChannelCount int

	// ChannelIndex selects the channel to extract; must be < ChannelCount.
	ChannelIndex int

	// SampleRate is the acquisition rate in Hz; the time axis is synthesized
	// as i/SampleRate. Must be positive.
	SampleRate float64

	// Scale converts raw units to volts: value = raw*Scale + DCOffset.
	Scale float64

	// DCOffset is the DC offset in volts applied after scaling.
	DCOffset float64
}

// NewDescriptor returns a single-channel little-endian descriptor with unit
// scale for the given element type and sample rate.
func NewDescriptor(element ElementType, sampleRate float64) Descriptor {
	return Descriptor{
		Engine:       endian.GetLittleEndianEngine(),
		Element:      element,
		ChannelCount: 1,
		SampleRate:   sampleRate,
		Scale:        1,
	}
}

// Validate checks the descriptor invariants, returning one of the layout
// sentinels from the errs package on violation.
func (d Descriptor) Validate() error {
	if d.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %g", errs.ErrInvalidLayout, d.SampleRate)
	}
	if d.Element.Width() == 0 {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnsupportedElementType, uint8(d.Element))
	}
	if d.ChannelCount < 1 {
		return fmt.Errorf("%w: channel count must be at least 1, got %d", errs.ErrInvalidLayout, d.ChannelCount)
	}
	if d.ChannelIndex < 0 || d.ChannelIndex >= d.ChannelCount {
		return fmt.Errorf("%w: index %d with %d channels", errs.ErrChannelIndexOutOfRange, d.ChannelIndex, d.ChannelCount)
	}
	if d.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d", errs.ErrInvalidLayout, d.Offset)
	}
	if d.Length < 0 {
		return fmt.Errorf("%w: negative length %d", errs.ErrInvalidLayout, d.Length)
	}

	return nil
}

// SampleBytes returns the byte width of one sample group: element width
// times channel count. Zero when the element type is unknown.
func (d Descriptor) SampleBytes() int {
	return d.Element.Width() * d.ChannelCount
}

// EffectiveOffset returns the requested offset aligned up to the nearest
// sample group boundary. Always >= Offset and always a multiple of
// SampleBytes for valid descriptors.
func (d Descriptor) EffectiveOffset() int64 {
	sampleBytes := int64(d.SampleBytes())
	if sampleBytes <= 0 || d.Offset <= 0 {
		return 0
	}

	return (d.Offset + sampleBytes - 1) / sampleBytes * sampleBytes
}

// engine returns the configured byte order, defaulting to little-endian.
func (d Descriptor) engine() endian.EndianEngine {
	if d.Engine != nil {
		return d.Engine
	}

	return endian.GetLittleEndianEngine()
}
