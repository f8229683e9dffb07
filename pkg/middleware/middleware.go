package middleware

import (
	"errors"
	"strings"

	"github.com/meetnear/broadcast-service/config/env"
	"github.com/meetnear/broadcast-service/pkg/codebase/interfaces"
)

// Middleware impl
type Middleware struct {
	tokenValidator     interfaces.TokenValidator
	redisPool          interfaces.RedisPool
	username, password string
}

// NewMiddleware create new middleware instance
func NewMiddleware(tokenValidator interfaces.TokenValidator, redisPool interfaces.RedisPool) *Middleware {
	return &Middleware{
		tokenValidator: tokenValidator,
		redisPool:      redisPool,
		username:       env.BaseEnv().BasicAuthUsername,
		password:       env.BaseEnv().BasicAuthPassword,
	}
}

func extractAuthType(prefix, authorization string) (string, error) {
	authValues := strings.Split(authorization, " ")
	if len(authValues) == 2 && strings.ToLower(authValues[0]) == prefix {
		return authValues[1], nil
	}

	return "", errors.New("Invalid authorization")
}
