package token

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	tok, err := codec.Issue("user-1", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if got := codec.Verify(tok); got != "user-1" {
		t.Fatalf("expected subject user-1, got %q", got)
	}
}

func TestConsecutiveIssuesAreDistinct(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	codec.now = fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	// Same subject, same frozen second: the jti still separates them.
	first, err := codec.Issue("user-1", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := codec.Issue("user-1", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct tokens for consecutive issues")
	}
}

func TestVerifyExpired(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("test-secret", 0)
	codec.now = fixedClock(start)

	tok, err := codec.Issue("user-1", time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if got := codec.Verify(tok); got != "user-1" {
		t.Fatalf("token should verify before expiry, got %q", got)
	}

	// Exactly at expiry the boundary is exclusive.
	codec.now = fixedClock(start.Add(time.Minute))
	if got := codec.Verify(tok); got != "" {
		t.Fatalf("token at exact expiry should be rejected, got %q", got)
	}

	codec.now = fixedClock(start.Add(2 * time.Minute))
	if got := codec.Verify(tok); got != "" {
		t.Fatalf("expired token should be rejected, got %q", got)
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not.a.token",
		"truncated": "eyJhbGciOiJIUzI1NiJ9",
	}
	for name, tok := range cases {
		if got := codec.Verify(tok); got != "" {
			t.Errorf("%s: expected rejection, got %q", name, got)
		}
	}

	// Signature from a different secret.
	other := NewCodec("other-secret", time.Hour)
	tok, err := other.Issue("user-1", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if got := codec.Verify(tok); got != "" {
		t.Fatalf("foreign signature should be rejected, got %q", got)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	tok, err := codec.Issue("", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if got := codec.Verify(tok); got != "" {
		t.Fatalf("token without subject should be rejected, got %q", got)
	}
}

func TestDefaultTTL(t *testing.T) {
	codec := NewCodec("test-secret", 0)
	if codec.TTL() != DefaultTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultTTL, codec.TTL())
	}
}
