package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
	"github.com/meetnear/broadcast-service/pkg/wrapper"
)

const (
	// Bearer constanta
	Bearer = "bearer"
)

// Bearer token validator
func (m *Middleware) Bearer(ctx context.Context, tokenString string) (*shared.TokenClaim, error) {
	return m.tokenValidator.ValidateToken(ctx, tokenString)
}

// HTTPBearerAuth http jwt token middleware
func (m *Middleware) HTTPBearerAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			trace := tracer.StartTrace(c.Request().Context(), "Middleware:HTTPBearerAuth")
			defer trace.Finish()

			authorization := c.Request().Header.Get(helper.HeaderAuthorization)
			tokenValue, err := extractAuthType(Bearer, authorization)
			if err != nil {
				trace.SetError(err)
				return wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(c.Response())
			}

			tokenClaim, err := m.Bearer(trace.Context(), tokenValue)
			if err != nil {
				trace.SetError(err)
				return wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(c.Response())
			}

			trace.Log("token_claim", tokenClaim)
			ctx := shared.SetToContext(c.Request().Context(), shared.ContextKeyTokenClaim, tokenClaim)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
