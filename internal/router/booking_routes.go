package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/middleware"
	"github.com/iliyamo/travel-booking/internal/service"
)

// RegisterBookings registers the booking endpoints available to any
// authenticated user.  Ownership is checked by the booking service, so an
// admin reaches the same routes with wider visibility.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, auth *service.AuthService) {
	g := e.Group("/api/bookings", middleware.JWTAuth(auth))
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/:id/ticket", h.Ticket)
	g.POST("/:id/payment", h.UploadPayment)
}
