package middleware_test

import (
	"testing"

	"calendly-soap-api/internal/middleware"
)

func TestRateLimiterPerIP(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 2)

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatal("burst should admit the first two calls")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("third immediate call should be denied")
	}

	// a different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("fresh ip should be admitted")
	}
}
