package auth_test

import (
	"strings"
	"testing"

	"github.com/luminabooks/lumina/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("65f1a2b3c4d5e6f7a8b9c0d1", "reader@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "65f1a2b3c4d5e6f7a8b9c0d1" {
		t.Errorf("user_id = %q", claims.UserID)
	}
	if claims.Email != "reader@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := auth.GenerateToken("65f1a2b3c4d5e6f7a8b9c0d1", "reader@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	if _, err := auth.ValidateToken(strings.Join(parts, ".")); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
	if _, err := auth.ValidateToken(""); err == nil {
		t.Error("expected empty token to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if !auth.CheckPassword(hash, "secret123") {
		t.Error("expected correct password to verify")
	}
	if auth.CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}
