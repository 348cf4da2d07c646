// Package auth mints and checks the session tokens and password hashes used by
// the fixture backend.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// PASETO v4 requires a 256-bit (32-byte) symmetric key.
	keyLength = 32
	// Expected hex-encoded length (32 bytes = 64 hex characters).
	keyHexLength = 64
)

// KeyOrGenerate returns keyHex when set, or a freshly generated hex key.
// A generated key lives for one process, which invalidates tokens minted by an
// earlier run. The fixture dataset does not survive a restart either.
func KeyOrGenerate(keyHex string) (string, error) {
	keyHex = strings.TrimSpace(keyHex)
	if keyHex != "" {
		if len(keyHex) != keyHexLength {
			return "", fmt.Errorf("invalid token key length: expected %d hex chars, got %d", keyHexLength, len(keyHex))
		}
		if _, err := hex.DecodeString(keyHex); err != nil {
			return "", fmt.Errorf("invalid token key format: not valid hex: %w", err)
		}
		return keyHex, nil
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(key), nil
}
