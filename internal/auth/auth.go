package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSessionToken returns a fresh 64-character hex token from 32 random
// bytes. One token lives on each user row at a time; issuing a new one
// replaces the old.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
