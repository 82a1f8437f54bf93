package jwt

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{
		ID:    "user-123",
		Email: "alice@example.com",
	}

	tokenString, err := GenerateToken(payload, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	parsed, err := ParseToken(tokenString, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if parsed.ID != payload.ID {
		t.Errorf("parsed ID = %q, want %q", parsed.ID, payload.ID)
	}
	if parsed.Email != payload.Email {
		t.Errorf("parsed Email = %q, want %q", parsed.Email, payload.Email)
	}
	if parsed.Issuer != TokenIssuer {
		t.Errorf("parsed Issuer = %q, want %q", parsed.Issuer, TokenIssuer)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(&Payload{ID: "user-123"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString, "a-different-secret"); err == nil {
		t.Error("expected parsing with wrong secret to fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	tokenString, err := GenerateToken(&Payload{ID: "user-123"}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString, testSecret); err == nil {
		t.Error("expected expired token to fail validation")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Error("expected malformed token to fail validation")
	}
}
