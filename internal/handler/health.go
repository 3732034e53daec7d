package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness and whether tokens are signed with a key that
// will not survive a restart.
func Health(ephemeralKey bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok", "ephemeral_signing_key": ephemeralKey})
	}
}
