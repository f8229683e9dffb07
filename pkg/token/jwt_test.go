package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/shared"
)

func testJWT() *JWT {
	baseEnv := env.BaseEnv()
	baseEnv.TokenExpired = time.Hour
	env.SetEnv(baseEnv)
	return &JWT{secretKey: []byte("unit-test-secret")}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Run("Testcase #1: Positive, roundtrip keeps claim", func(t *testing.T) {
		j := testJWT()

		claim := &shared.TokenClaim{Role: "member", Email: "member@mail.com"}
		claim.Subject = "63c9a7b2e1d2f3a4b5c6d7e8"

		tokenString, err := j.GenerateToken(context.Background(), claim)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		parsed, err := j.ValidateToken(context.Background(), tokenString)
		assert.NoError(t, err)
		assert.Equal(t, "63c9a7b2e1d2f3a4b5c6d7e8", parsed.Subject)
		assert.Equal(t, "member", parsed.Role)
		assert.Equal(t, "member@mail.com", parsed.Email)
	})

	t.Run("Testcase #2: Negative, expired token", func(t *testing.T) {
		j := testJWT()

		claim := &shared.TokenClaim{}
		claim.Subject = "user-1"
		claim.ExpiresAt = time.Now().Add(-time.Minute).Unix()

		tokenString, err := j.GenerateToken(context.Background(), claim)
		assert.NoError(t, err)

		_, err = j.ValidateToken(context.Background(), tokenString)
		assert.Equal(t, ErrTokenExpired, err)
	})

	t.Run("Testcase #3: Negative, wrong signing key", func(t *testing.T) {
		j := testJWT()

		claim := &shared.TokenClaim{}
		claim.Subject = "user-1"
		tokenString, err := j.GenerateToken(context.Background(), claim)
		assert.NoError(t, err)

		other := &JWT{secretKey: []byte("another-secret")}
		_, err = other.ValidateToken(context.Background(), tokenString)
		assert.Equal(t, ErrTokenFormat, err)
	})

	t.Run("Testcase #4: Negative, garbage token", func(t *testing.T) {
		j := testJWT()

		_, err := j.ValidateToken(context.Background(), "not.a.jwt")
		assert.Equal(t, ErrTokenFormat, err)
	})
}
