package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/labstack/echo"

	"github.com/meetnear/broadcast-service/pkg/logger"
	"github.com/meetnear/broadcast-service/pkg/shared"
	"github.com/meetnear/broadcast-service/pkg/tracer"
	"github.com/meetnear/broadcast-service/pkg/wrapper"
)

// HTTPRateLimit http middleware, limit request count per subject in sliding window.
// Counter key is "ratelimit:<scope>:<subject>", subject from bearer token claim when present,
// fallback to client IP. Redis error means allow, limiting is advisory.
func (m *Middleware) HTTPRateLimit(scope string, maxRequest int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			trace := tracer.StartTrace(c.Request().Context(), "Middleware:HTTPRateLimit")
			defer trace.Finish()

			subject := c.RealIP()
			if tokenClaim, ok := shared.GetValueFromContext(c.Request().Context(), shared.ContextKeyTokenClaim).(*shared.TokenClaim); ok {
				subject = tokenClaim.Subject
			}

			key := fmt.Sprintf("ratelimit:%s:%s", scope, subject)
			trace.SetTag("key", key)

			exceeded, err := m.incrRateLimitCounter(key, maxRequest, window)
			if err != nil {
				trace.SetError(err)
				logger.LogEf("rate limit: %v", err)
				return next(c)
			}

			if exceeded {
				trace.SetTag("exceeded", true)
				return wrapper.NewHTTPResponse(http.StatusTooManyRequests, "Too many requests, please try again later").JSON(c.Response())
			}

			return next(c)
		}
	}
}

func (m *Middleware) incrRateLimitCounter(key string, maxRequest int, window time.Duration) (exceeded bool, err error) {
	conn := m.redisPool.WritePool().Get()
	defer conn.Close()

	count, err := redis.Int(conn.Do("INCR", key))
	if err != nil {
		return false, err
	}
	if count == 1 {
		if _, err := conn.Do("EXPIRE", key, int(window.Seconds())); err != nil {
			return false, err
		}
	}

	return count > maxRequest, nil
}
