// Package hash holds the one hashing helper this service needs.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// String returns the SHA-256 hex digest of the input. Registration
// stores this digest in place of the password; nothing ever verifies it
// (there is no login flow), it exists only so the plaintext is never
// written anywhere.
func String(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
