// Package jwttest issues HS256 bearer tokens shaped like the auth provider's.
package jwttest

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Token signs a token for userID that expires after ttl (negative ttl gives
// an already expired token).
func Token(t testing.TB, secret string, userID int64, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
