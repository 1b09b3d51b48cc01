package auth_test

import (
	"testing"

	"github.com/blog-community-api/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash should not equal the plaintext password")
	}

	if !auth.CheckPassword(hash, "hunter2hunter2") {
		t.Error("correct password should verify")
	}
	if auth.CheckPassword(hash, "wrong-password") {
		t.Error("wrong password should not verify")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	token, err := auth.SignSessionToken("session-abc", secret)
	if err != nil {
		t.Fatalf("SignSessionToken failed: %v", err)
	}

	sid, err := auth.ParseSessionToken(token, secret)
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}
	if sid != "session-abc" {
		t.Errorf("Expected session id 'session-abc', got %q", sid)
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	token, err := auth.SignSessionToken("session-abc", "secret-one")
	if err != nil {
		t.Fatalf("SignSessionToken failed: %v", err)
	}

	if _, err := auth.ParseSessionToken(token, "secret-two"); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestParseSessionTokenGarbage(t *testing.T) {
	if _, err := auth.ParseSessionToken("not-a-jwt", "secret"); err == nil {
		t.Error("garbage token should not parse")
	}
}
