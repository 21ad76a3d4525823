package utils

import (
	"testing"
	"time"
)

const testSignKey = "unit-test-sign-key"

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("pdv-sync", 42, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.SignedString == "" {
		t.Fatal("expected a signed token string")
	}

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, "pdv-sync")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", parsed.UserID)
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	if _, err := GenerateJWTToken("", 1, time.Hour, testSignKey); err == nil {
		t.Error("expected error for empty issuer")
	}
	if _, err := GenerateJWTToken("pdv-sync", 1, 0, testSignKey); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := GenerateJWTToken("pdv-sync", 1, time.Hour, ""); err == nil {
		t.Error("expected error for empty sign key")
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken("someone-else", 1, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, "pdv-sync"); err == nil {
		t.Fatal("expected validation to fail for a foreign issuer")
	}
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken("pdv-sync", 1, time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, "other-key", "pdv-sync"); err == nil {
		t.Fatal("expected validation to fail for a forged signature")
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken("pdv-sync", 1, -time.Minute, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, "pdv-sync"); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}
