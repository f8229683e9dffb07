package interfaces

import (
	"context"
	"time"

	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/pkg/shared"
)

// Middleware abstraction
type Middleware interface {
	Basic(ctx context.Context, authKey string) error
	Bearer(ctx context.Context, tokenString string) (*shared.TokenClaim, error)

	HTTPMiddleware
}

// HTTPMiddleware interface, common middleware for http handler
type HTTPMiddleware interface {
	HTTPBasicAuth() echo.MiddlewareFunc
	HTTPBearerAuth() echo.MiddlewareFunc
	HTTPRateLimit(scope string, maxRequest int, window time.Duration) echo.MiddlewareFunc
}
