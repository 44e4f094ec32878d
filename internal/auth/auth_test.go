package auth_test

import (
	"encoding/hex"
	"testing"

	"calendly-soap-api/internal/auth"
)

func TestNewSessionToken(t *testing.T) {
	tok, err := auth.NewSessionToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(tok) != 64 { // 32 bytes hex = 64 chars
		t.Errorf("expected 64 char token, got %d", len(tok))
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Errorf("token is not hex: %v", err)
	}
}

func TestNewSessionTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := auth.NewSessionToken()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[tok] {
			t.Fatal("duplicate token")
		}
		seen[tok] = true
	}
}
