package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestManager(secret string, ttl time.Duration, at time.Time) *TokenManager {
	tm := NewTokenManager(TokenConfig{Issuer: "trip-service-test", TTL: ttl, Secret: secret})
	tm.now = func() time.Time { return at }
	return tm
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestManager("test-secret", time.Hour, t0)

	token, expiresAt, err := tm.Issue("alice", []string{"user", "Admin"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if got, want := expiresAt, t0.Add(time.Hour); !got.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", got, want)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("subject = %q, want alice", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "USER" || claims.Roles[1] != "ADMIN" {
		t.Errorf("roles = %v, want upper-cased [USER ADMIN]", claims.Roles)
	}
	if claims.Issuer != "trip-service-test" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Minute
	tm := newTestManager("test-secret", ttl, t0)

	token, _, err := tm.Issue("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// One second before expiry the token still verifies.
	tm.now = func() time.Time { return t0.Add(ttl - time.Second) }
	if _, err := tm.Verify(token); err != nil {
		t.Fatalf("verify just before expiry: %v", err)
	}

	// At exactly the expiry instant the token is already expired.
	tm.now = func() time.Time { return t0.Add(ttl) }
	if _, err := tm.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("verify at expiry = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestManager("test-secret", time.Hour, t0)

	token, _, err := tm.Issue("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	sig := []byte(parts[2])
	for i := range sig {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if _, err := tm.Verify(tampered); err == nil {
			t.Fatalf("tampering signature byte %d verified successfully", i)
		}
	}
}

func TestVerifyTamperedSignaturePaddingBits(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestManager("test-secret", time.Hour, t0)

	token, _, err := tm.Issue("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	sig := parts[2]

	// A 32-byte MAC encodes to 43 base64url characters; the final
	// character carries only 4 data bits, leaving 2 low bits that a
	// lenient decoder ignores. Flipping them yields a different token
	// string that must still be rejected.
	idx := strings.IndexByte(alphabet, sig[len(sig)-1])
	if idx < 0 {
		t.Fatalf("signature ends in non-alphabet byte %q", sig[len(sig)-1])
	}
	for _, mask := range []int{1, 2, 3} {
		tampered := parts[0] + "." + parts[1] + "." + sig[:len(sig)-1] + string(alphabet[idx^mask])
		if tampered == token {
			t.Fatalf("mask %d produced an identical token", mask)
		}
		if _, err := tm.Verify(tampered); err == nil {
			t.Fatalf("signature with padding bits ^%d verified successfully", mask)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestManager("test-secret", time.Hour, t0)
	other := newTestManager("other-secret", time.Hour, t0)

	token, _, err := tm.Issue("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("verify with wrong secret = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tm := newTestManager("test-secret", time.Hour, time.Now())

	for _, tokenStr := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := tm.Verify(tokenStr); !errors.Is(err, ErrMalformed) {
			t.Errorf("Verify(%q) = %v, want ErrMalformed", tokenStr, err)
		}
	}
}

func TestVerifyIssuerMismatch(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestManager("test-secret", time.Hour, t0)
	token, _, err := tm.Issue("alice", []string{"USER"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewTokenManager(TokenConfig{Issuer: "someone-else", TTL: time.Hour, Secret: "test-secret"})
	other.now = func() time.Time { return t0 }
	if _, err := other.Verify(token); err == nil {
		t.Fatal("token with wrong issuer verified successfully")
	}
}

func TestIssueSigningErrors(t *testing.T) {
	t.Run("empty secret", func(t *testing.T) {
		tm := newTestManager("", time.Hour, time.Now())
		if _, _, err := tm.Issue("alice", nil); !errors.Is(err, ErrSigning) {
			t.Fatalf("err = %v, want ErrSigning", err)
		}
	})
	t.Run("non-positive ttl", func(t *testing.T) {
		tm := newTestManager("test-secret", 0, time.Now())
		if _, _, err := tm.Issue("alice", nil); !errors.Is(err, ErrSigning) {
			t.Fatalf("err = %v, want ErrSigning", err)
		}
	})
}
