package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
)

// error types of invalid token
var (
	ErrTokenFormat  = errors.New("Invalid token format")
	ErrTokenExpired = errors.New("Token is expired")
)

// JWT token utility, sign & validate with symmetric key (HS256)
type JWT struct {
	secretKey []byte
}

// NewJWT constructor, secret key from JWT_SECRET_KEY environment
func NewJWT() *JWT {
	return &JWT{
		secretKey: []byte(env.BaseEnv().JWTSecretKey),
	}
}

// GenerateToken sign new token claim
func (j *JWT) GenerateToken(ctx context.Context, claim *shared.TokenClaim) (tokenString string, err error) {
	trace := tracer.StartTrace(ctx, "JWT:GenerateToken")
	defer func() { trace.SetError(err); trace.Finish() }()

	now := time.Now()
	claim.IssuedAt = now.Unix()
	if claim.ExpiresAt == 0 {
		claim.ExpiresAt = now.Add(env.BaseEnv().TokenExpired).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)
	return token.SignedString(j.secretKey)
}

// ValidateToken implement interfaces.TokenValidator
func (j *JWT) ValidateToken(ctx context.Context, tokenString string) (claim *shared.TokenClaim, err error) {
	trace := tracer.StartTrace(ctx, "JWT:ValidateToken")
	defer func() { trace.SetError(err); trace.Finish() }()

	tokenClaim := new(shared.TokenClaim)
	tokenParse, err := jwt.ParseWithClaims(tokenString, tokenClaim, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenFormat
		}
		return j.secretKey, nil
	})

	switch ve := err.(type) {
	case *jwt.ValidationError:
		if ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenFormat
	}

	if tokenParse == nil || !tokenParse.Valid {
		return nil, ErrTokenFormat
	}

	return tokenClaim, nil
}
