// Package endian provides byte order utilities for decoding raw binary
// capture files.
//
// It combines the ByteOrder and AppendByteOrder interfaces from the standard
// encoding/binary package into a single EndianEngine interface, satisfied by
// binary.LittleEndian and binary.BigEndian. Instrument dumps are overwhelmingly
// little-endian, so GetLittleEndianEngine is the default throughout wavecap,
// but big-endian layouts are fully supported.
//
// All returned engines are immutable, stateless and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"fmt"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Parse maps a byte order name to its engine. It accepts "little", "le",
// "big" and "be", as used by the CLI and by layout descriptors built from
// user input.
func Parse(name string) (EndianEngine, error) {
	switch name {
	case "little", "le":
		return binary.LittleEndian, nil
	case "big", "be":
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("unknown byte order %q (want little or big)", name)
	}
}

// Name returns the canonical name of an engine, the inverse of Parse.
func Name(engine EndianEngine) string {
	if engine == EndianEngine(binary.BigEndian) {
		return "big"
	}

	return "little"
}
