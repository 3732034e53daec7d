package middleware // reusable HTTP middleware for the booking API

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/service"
)

// bearerToken strips an optional "Bearer " prefix; a bare token is
// accepted as is.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// JWTAuth validates the Bearer token on every request it wraps.  The token
// is resolved through AuthService.Authenticate, so a token whose user has
// been removed is rejected even before it expires.  On success the
// Identity is stored under "identity" and the user id (as a string) under
// "user_id" for the rate limiter key.
func JWTAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := auth.Authenticate(c.Request().Context(), bearerToken(c.Request().Header.Get("Authorization")))
			if err != nil {
				if service.KindOf(err) == service.KindUnauthenticated {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
				}
				return err
			}
			c.Set(identityKey, id)
			c.Set("user_id", strconv.FormatUint(id.UserID, 10))
			c.Set("role", id.Role)
			return next(c)
		}
	}
}
