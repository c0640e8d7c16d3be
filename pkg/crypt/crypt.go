// Package crypt provides digest helpers for secrets that must be stored
// in a non-replayable form.
package crypt

import (
	"crypto/sha256"
	"fmt"
)

// Hash returns a SHA-256 hex digest of the input. Reset tokens are stored
// as digests so a leaked users collection cannot be replayed.
func Hash(input string) string {
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", h)
}
