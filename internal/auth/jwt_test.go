package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/itemboard/itemboard-be/internal/apperrors"
)

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := ts.Issue("acct-123", "longuser1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := ts.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "acct-123" {
		t.Fatalf("UserID = %q, want %q", claims.UserID, "acct-123")
	}
	if claims.Username != "longuser1" {
		t.Fatalf("Username = %q, want %q", claims.Username, "longuser1")
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ts := NewTokenService([]byte("secret"), time.Hour)

	tok, err := ts.Issue("acct-1", "longuser1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Move the verification clock past the expiry window.
	ts.WithClock(func() time.Time { return now.Add(time.Hour + time.Minute) })

	_, err = ts.Verify(tok)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("acct-2", "longuser1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("secret"), time.Hour)

	tok, err := ts.Issue("acct-3", "longuser1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip one byte in the payload.
	raw := []byte(tok)
	mid := len(raw) / 2
	if raw[mid] == 'A' {
		raw[mid] = 'B'
	} else {
		raw[mid] = 'A'
	}

	if _, err := ts.Verify(string(raw)); err == nil {
		t.Fatal("expected error for tampered token, got nil")
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("k"), time.Hour)

	_, err := ts.Verify("not.a.jwt")
	if !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
