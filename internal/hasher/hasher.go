// Package hasher fingerprints image payloads so identical images embedded
// under different names can be recognized.
package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ShortLen is the fingerprint prefix length shown in logs.
const ShortLen = 8

// Fingerprint returns the xxHash64 of data as 16 lowercase hex characters.
func Fingerprint(data []byte) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	return hex.EncodeToString(b[:])
}

// Short truncates a fingerprint to ShortLen characters for display.
func Short(fp string) string {
	if len(fp) > ShortLen {
		return fp[:ShortLen]
	}
	return fp
}
