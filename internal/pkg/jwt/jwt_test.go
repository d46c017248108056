package jwt

import (
	"testing"
	"time"

	"foodgram/internal/testutil/jwttest"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_ValidateToken(t *testing.T) {
	s := New("secret")

	claims, err := s.ValidateToken(jwttest.Token(t, "secret", 42, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestService_Rejects(t *testing.T) {
	s := New("secret")

	_, err := s.ValidateToken(jwttest.Token(t, "other-secret", 42, time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken(jwttest.Token(t, "secret", 42, -time.Minute))
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: 42}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ValidateToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ValidateToken(jwttest.Token(t, "secret", 0, time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
