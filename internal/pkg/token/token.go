package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewSecret generates a cryptographically random 64-character hex secret.
// Used as a development fallback when SESSION_SECRET is not configured;
// sessions do not survive a restart in that mode.
func NewSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
