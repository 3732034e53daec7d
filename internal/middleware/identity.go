package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/service"
)

const identityKey = "identity"

// CurrentIdentity returns the caller stored by JWTAuth.  ok is false on
// routes that are not behind JWTAuth.
func CurrentIdentity(c echo.Context) (service.Identity, bool) {
	id, ok := c.Get(identityKey).(service.Identity)
	return id, ok
}

// userID returns the authenticated user id or "anon".
func userID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "anon"
}
