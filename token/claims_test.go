package token

import (
	"encoding/base64"
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := Claims{
		UserID:   7,
		Username: "ana",
		RoleID:   2,
		RegisteredClaims: gjwt.RegisteredClaims{
			ExpiresAt: gjwt.NewNumericDate(exp),
			IssuedAt:  gjwt.NewNumericDate(time.Now()),
		},
	}
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret-test-secret-test"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeReadsIssuerClaims(t *testing.T) {
	claims, err := Decode(mintToken(t, time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "ana" || claims.RoleID != 2 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestIsExpiredFutureAndPast(t *testing.T) {
	if IsExpired(mintToken(t, time.Now().Add(time.Hour))) {
		t.Fatal("future exp reported expired")
	}
	if !IsExpired(mintToken(t, time.Now().Add(-time.Hour))) {
		t.Fatal("past exp reported valid")
	}
}

func TestIsExpiredEpochSecondOne(t *testing.T) {
	// A stored credential with exp = 1 must never authenticate, even though
	// a token string is present.
	if !IsExpired(mintToken(t, time.Unix(1, 0))) {
		t.Fatal("exp=1 reported valid")
	}
}

func TestIsExpiredFailsClosedOnMalformedInput(t *testing.T) {
	nonJSON := "eyJhbGciOiJIUzI1NiJ9." +
		base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"

	cases := map[string]string{
		"empty":             "",
		"no dots":           "justonesegment",
		"two segments":      "aaaa.bbbb",
		"bad base64":        "aaaa.!!!!.cccc",
		"non-json payload":  nonJSON,
		"missing exp claim": mintTokenWithoutExp(t),
	}
	for name, credential := range cases {
		if !IsExpired(credential) {
			t.Fatalf("%s: malformed credential reported valid", name)
		}
		if _, err := Decode(credential); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}

func mintTokenWithoutExp(t *testing.T) string {
	t.Helper()
	tok := gjwt.NewWithClaims(gjwt.SigningMethodHS256, gjwt.MapClaims{
		"user_id": 7, "username": "ana", "role_id": 2,
	})
	signed, err := tok.SignedString([]byte("test-secret-test-secret-test"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestIsExpiredAtBoundary(t *testing.T) {
	at := time.Now().Add(time.Minute).Truncate(time.Second)
	credential := mintToken(t, at)
	if !isExpiredAt(credential, at) {
		t.Fatal("exp == now must count as expired")
	}
	if isExpiredAt(credential, at.Add(-time.Second)) {
		t.Fatal("one second before exp must count as valid")
	}
}
