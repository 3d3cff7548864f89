// Package hash computes capture file fingerprints.
//
// A fingerprint identifies a capture across reloads without hashing the whole
// file: multi-GB captures make a full-content hash too expensive for load
// metadata. Hashing a fixed-size prefix together with the file size is enough
// to distinguish real-world captures, which differ early (vendor preambles,
// trigger timestamps) or in length.
package hash

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// prefixSize is the number of leading bytes included in the fingerprint.
const prefixSize = 64 * 1024

// FingerprintFile returns the hex-encoded xxHash64 fingerprint of the file
// at path, computed over the first 64KiB of content plus the file size.
func FingerprintFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open capture for fingerprint: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat capture for fingerprint: %w", err)
	}

	digest := xxhash.New()
	if _, err := io.CopyN(digest, f, prefixSize); err != nil && err != io.EOF {
		return "", fmt.Errorf("read capture prefix: %w", err)
	}

	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(info.Size()))
	_, _ = digest.Write(size[:])

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
