package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func TestVerify(t *testing.T) {
	v := NewVerifier(Config{Secret: testSecret, Issuer: "pet-adoption-auth"})

	token := signToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"iss":   "pet-adoption-auth",
		"email": "user@example.com",
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
}

func TestVerify_Rejections(t *testing.T) {
	v := NewVerifier(Config{Secret: testSecret, Issuer: "pet-adoption-auth"})
	ctx := context.Background()

	_, err := v.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = v.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Wrong issuer
	_, err = v.Verify(ctx, signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Missing subject
	_, err = v.Verify(ctx, signToken(t, jwt.MapClaims{
		"iss": "pet-adoption-auth",
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Expired beyond the leeway
	_, err = v.Verify(ctx, signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"iss": "pet-adoption-auth",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_LeewayToleratesClockSkew(t *testing.T) {
	v := NewVerifier(Config{Secret: testSecret, Leeway: time.Minute})

	token := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-10 * time.Second).Unix(),
	})

	_, err := v.Verify(context.Background(), token)
	assert.NoError(t, err)
}
