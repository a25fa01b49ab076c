package auth

import (
	"testing"
	"time"
)

func TestIssueAndDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := ts.IssueToken("user-123", "alice")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	identity, err := ts.DecodeToken(tok)
	if err != nil {
		t.Fatalf("DecodeToken error: %v", err)
	}
	if identity.UserID != "user-123" {
		t.Errorf("userID mismatch: got %q want %q", identity.UserID, "user-123")
	}
	if identity.Username != "alice" {
		t.Errorf("username mismatch: got %q want %q", identity.Username, "alice")
	}
}

func TestDecodeToken_Expired(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("secret"), -1*time.Second)

	tok, err := ts.IssueToken("u1", "bob")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, err := ts.DecodeToken(tok); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService([]byte("right-secret"), time.Hour).IssueToken("u2", "carol")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, err := NewTokenService([]byte("wrong-secret"), time.Hour).DecodeToken(tok); err == nil {
		t.Fatal("expected error for invalid signature, got nil")
	}
}

func TestDecodeToken_Malformed(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("k"), time.Hour)
	if _, err := ts.DecodeToken("not.a.jwt"); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}

func TestDecodeToken_Tampered(t *testing.T) {
	t.Parallel()

	ts := NewTokenService([]byte("secret"), time.Hour)
	tok, err := ts.IssueToken("u3", "dave")
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// Flip a character in the payload segment.
	tampered := []byte(tok)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	if _, err := ts.DecodeToken(string(tampered)); err == nil {
		t.Fatal("expected error for tampered token, got nil")
	}
}
