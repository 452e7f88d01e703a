package utils

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken("secret", 42, 30)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	id, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _ := NewToken("secret", 42, 30)
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	// Negative TTL puts the expiry in the past.
	token, _ := NewToken("secret", 42, -1)
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := ParseToken("secret", raw); err == nil {
			t.Fatalf("garbage token %q accepted", raw)
		}
	}
}
