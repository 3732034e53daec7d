package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/middleware"
	"github.com/iliyamo/travel-booking/internal/service"
)

// dbTimeout bounds the store work done by a single request.
const dbTimeout = 5 * time.Second

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// fail maps a service error to its HTTP status.  Unclassified errors are
// logged and reported as 500 without their details.
func fail(c echo.Context, log zerolog.Logger, err error) error {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindUnauthenticated:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindValidation:
		status = http.StatusBadRequest
	default:
		rid, _ := c.Get("request_id").(string)
		log.Error().Err(err).Str("request_id", rid).Str("route", c.Path()).Msg("request failed")
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// identity returns the caller set by JWTAuth.  Routes using it are always
// mounted behind that middleware.
func identity(c echo.Context) (service.Identity, error) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return service.Identity{}, service.ErrUnauthenticated
	}
	return id, nil
}

// bookingID parses the :id path parameter.  A malformed id cannot name a
// booking, so it is reported as not found.
func bookingID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
}
