package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed reports a credential whose claims segment could not be
// decoded: wrong structure, non-JSON payload, or a missing exp claim.
var ErrMalformed = errors.New("malformed credential")

// Claims are the issuer-defined fields embedded in a credential. The issuer
// mirrors the profile it returns on login into the token, so these fields
// match the persisted profile snapshot.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	RoleID   int    `json:"role_id"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// Decode splits the credential and unmarshals its claims segment without
// verifying the signature. It fails when the structure is not a three-part
// token, the payload is not JSON, or the exp claim is absent.
func Decode(credential string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, errors.Join(ErrMalformed, err)
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// IsExpired reports whether the credential's exp claim has passed. Any
// decode failure counts as expired.
func IsExpired(credential string) bool {
	return isExpiredAt(credential, time.Now())
}

func isExpiredAt(credential string, now time.Time) bool {
	claims, err := Decode(credential)
	if err != nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(now)
}
