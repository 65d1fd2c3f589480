package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/AndresRicci93/countries-api/internal/domain/errors"
)

const testSecret = "test-secret-do-not-use"

func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret)
	token, err := svc.Issue("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	payload, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if payload.UserID != "user-42" {
		t.Errorf("payload.UserID = %q, want %q", payload.UserID, "user-42")
	}
}

func TestExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 15 * time.Minute

	issuer := NewTokenService(testSecret, WithClock(frozenClock(issued)))
	token, err := issuer.Issue("user-42", ttl)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name    string
		at      time.Time
		expired bool
	}{
		{"strictly before expiry", issued.Add(ttl - time.Second), false},
		{"exactly at expiry", issued.Add(ttl), true},
		{"after expiry", issued.Add(ttl + time.Second), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := NewTokenService(testSecret, WithClock(frozenClock(tc.at)))
			_, err := verifier.Verify(token)
			if tc.expired {
				if !errors.Is(err, apperrors.ErrTokenExpired) {
					t.Errorf("err = %v, want ErrTokenExpired", err)
				}
			} else if err != nil {
				t.Errorf("unexpected err: %v", err)
			}
		})
	}
}

func TestTamperRejection(t *testing.T) {
	svc := NewTokenService(testSecret)
	token, err := svc.Issue("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			continue
		}
		// Toggle the top bit of the base64 index. The low bits of a segment's
		// final character are padding and may decode identically, but the top
		// bit always lands in the decoded bytes.
		altered := []byte(token)
		altered[i] = alphabet[strings.IndexByte(alphabet, altered[i])^32]
		payload, err := svc.Verify(string(altered))
		if err == nil {
			t.Fatalf("altered token at byte %d verified with payload %+v", i, payload)
		}
		if errors.Is(err, apperrors.ErrTokenExpired) {
			t.Fatalf("altered token at byte %d classified as expired, want malformed", i)
		}
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := NewTokenService(testSecret).Issue("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, err = NewTokenService("another-secret").Verify(token)
	if !errors.Is(err, apperrors.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestGarbageTokenMalformed(t *testing.T) {
	svc := NewTokenService(testSecret)
	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 500)} {
		if _, err := svc.Verify(tok); !errors.Is(err, apperrors.ErrTokenMalformed) {
			t.Errorf("Verify(%q) err = %v, want ErrTokenMalformed", tok, err)
		}
	}
}
