package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedIDToken(t *testing.T, claims IDTokenClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("provider-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestParseIDTokenClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedIDToken(t, IDTokenClaims{
		Email:  "hans@example.com",
		UserID: "uid-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := ParseIDTokenClaims(tok)
	if err != nil {
		t.Fatalf("ParseIDTokenClaims: %v", err)
	}
	if claims.Email != "hans@example.com" || claims.UserID != "uid-1" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(exp) {
		t.Fatalf("expected exp %v, got %v", exp, claims.ExpiresAt.Time)
	}
}

func TestParseIDTokenClaimsFallsBackToSubject(t *testing.T) {
	tok := signedIDToken(t, IDTokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-9"}})

	claims, err := ParseIDTokenClaims(tok)
	if err != nil {
		t.Fatalf("ParseIDTokenClaims: %v", err)
	}
	if claims.UserID != "sub-9" {
		t.Fatalf("expected subject fallback, got %q", claims.UserID)
	}
}

func TestParseIDTokenClaimsMalformed(t *testing.T) {
	if _, err := ParseIDTokenClaims("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
