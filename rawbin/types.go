// Package rawbin decodes raw binary oscilloscope dumps into normalized
// series.
//
// Raw dumps carry no self-description: the caller supplies a Descriptor
// naming the element type, byte order, channel interleave, header offset and
// scaling. For files whose header length is unknown, DetectHeaderOffset
// heuristically scans for a plausible start of the waveform payload.
package rawbin

import (
	"fmt"
	"math"

	"github.com/tracekit/wavecap/endian"
)

// ElementType identifies the numeric type of one stored element.
type ElementType uint8

const (
	ElementInt8    ElementType = 0x1 // ElementInt8 represents a signed 8-bit integer.
	ElementUint8   ElementType = 0x2 // ElementUint8 represents an unsigned 8-bit integer.
	ElementInt16   ElementType = 0x3 // ElementInt16 represents a signed 16-bit integer.
	ElementUint16  ElementType = 0x4 // ElementUint16 represents an unsigned 16-bit integer.
	ElementInt32   ElementType = 0x5 // ElementInt32 represents a signed 32-bit integer.
	ElementUint32  ElementType = 0x6 // ElementUint32 represents an unsigned 32-bit integer.
	ElementFloat32 ElementType = 0x7 // ElementFloat32 represents an IEEE 754 single float.
	ElementFloat64 ElementType = 0x8 // ElementFloat64 represents an IEEE 754 double float.
)

// Width returns the element size in bytes, or 0 for unknown types.
func (e ElementType) Width() int {
	switch e {
	case ElementInt8, ElementUint8:
		return 1
	case ElementInt16, ElementUint16:
		return 2
	case ElementInt32, ElementUint32, ElementFloat32:
		return 4
	case ElementFloat64:
		return 8
	default:
		return 0
	}
}

func (e ElementType) String() string {
	switch e {
	case ElementInt8:
		return "int8"
	case ElementUint8:
		return "uint8"
	case ElementInt16:
		return "int16"
	case ElementUint16:
		return "uint16"
	case ElementInt32:
		return "int32"
	case ElementUint32:
		return "uint32"
	case ElementFloat32:
		return "float32"
	case ElementFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParseElementType maps a type name to its ElementType. It accepts the
// canonical Go-style names (int8 ... float64) as used by the CLI.
func ParseElementType(name string) (ElementType, error) {
	for _, e := range []ElementType{
		ElementInt8, ElementUint8,
		ElementInt16, ElementUint16,
		ElementInt32, ElementUint32,
		ElementFloat32, ElementFloat64,
	} {
		if e.String() == name {
			return e, nil
		}
	}

	return 0, fmt.Errorf("unknown element type %q", name)
}

// decodeElement reads one element from the head of b and widens it to
// float64. b must hold at least Width() bytes.
func (e ElementType) decodeElement(engine endian.EndianEngine, b []byte) float64 {
	switch e {
	case ElementInt8:
		return float64(int8(b[0]))
	case ElementUint8:
		return float64(b[0])
	case ElementInt16:
		return float64(int16(engine.Uint16(b)))
	case ElementUint16:
		return float64(engine.Uint16(b))
	case ElementInt32:
		return float64(int32(engine.Uint32(b)))
	case ElementUint32:
		return float64(engine.Uint32(b))
	case ElementFloat32:
		return float64(math.Float32frombits(engine.Uint32(b)))
	case ElementFloat64:
		return math.Float64frombits(engine.Uint64(b))
	default:
		return 0
	}
}
