package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/middleware"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/service"
)

// RegisterAdmin registers admin-only endpoints under /api/admin.  The role
// gate here rejects early; BookingService re-checks the predicate.
func RegisterAdmin(e *echo.Echo, h *handler.BookingHandler, auth *service.AuthService) {
	g := e.Group("/api/admin",
		middleware.JWTAuth(auth),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.PUT("/bookings/:id/verify", h.Verify)
	g.GET("/bookings/export", h.Export)
}
