package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/pkg/helper"
	"github.com/meetnear/broadcast-service/pkg/tracer"
	"github.com/meetnear/broadcast-service/pkg/wrapper"
)

const (
	// Basic constanta
	Basic = "basic"
)

// Basic auth validator
func (m *Middleware) Basic(ctx context.Context, key string) error {
	isValid := func() bool {
		data, err := base64.StdEncoding.DecodeString(key)
		if err != nil {
			return false
		}

		decoded := strings.Split(string(data), ":")
		if len(decoded) < 2 {
			return false
		}
		username, password := decoded[0], decoded[1]

		if username != m.username || password != m.password {
			return false
		}

		return true
	}

	if !isValid() {
		return errors.New("Unauthorized")
	}

	return nil
}

// HTTPBasicAuth http basic auth middleware
func (m *Middleware) HTTPBasicAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			trace := tracer.StartTrace(c.Request().Context(), "Middleware:HTTPBasicAuth")
			defer trace.Finish()

			c.Response().Header().Set("WWW-Authenticate", `Basic realm=""`)

			key, err := extractAuthType(Basic, c.Request().Header.Get(helper.HeaderAuthorization))
			if err != nil {
				trace.SetError(err)
				return wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(c.Response())
			}

			if err := m.Basic(trace.Context(), key); err != nil {
				trace.SetError(err)
				return wrapper.NewHTTPResponse(http.StatusUnauthorized, err.Error()).JSON(c.Response())
			}

			return next(c)
		}
	}
}
