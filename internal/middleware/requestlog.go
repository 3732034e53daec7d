package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/metrics"
)

// RequestID reuses an incoming X-Request-ID or assigns a fresh UUID, and
// echoes it on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set("request_id", rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

// RequestLogger writes one zerolog line per request and counts it in the
// HTTP metrics, labelled by route pattern rather than raw path.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.IncHTTP(c.Request().Method, route, strconv.Itoa(status))

			ev := log.Info()
			if status >= 500 {
				ev = log.Error().Err(err)
			}
			rid, _ := c.Get("request_id").(string)
			ev.Str("request_id", rid).
				Str("method", c.Request().Method).
				Str("route", route).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")
			return nil
		}
	}
}
