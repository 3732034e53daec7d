package router // package router wires handlers and middleware onto echo

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/artifact"
	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/middleware"
	"github.com/iliyamo/travel-booking/internal/search"
	"github.com/iliyamo/travel-booking/internal/service"
)

// Deps is everything the HTTP layer needs.  Redis may be nil, in which
// case the search cache is bypassed and the limiter runs in-process.
type Deps struct {
	Auth         *service.AuthService
	Bookings     *service.BookingService
	Files        *artifact.FileStore
	Search       *search.Generator
	Redis        *redis.Client
	RateLimit    config.RateLimitConfig
	Cache        config.CacheConfig
	EphemeralKey bool
	Log          zerolog.Logger
}

// New builds the echo instance with all routes registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("16M"))
	e.Use(echomw.CORS())

	RegisterRoutes(e, d)
	RegisterAuth(e, handler.NewAuthHandler(d.Auth, d.Log), d)
	bookings := handler.NewBookingHandler(d.Bookings, d.Log)
	RegisterBookings(e, bookings, d.Auth)
	RegisterAdmin(e, bookings, d.Auth)
	return e
}

// RegisterRoutes registers the unauthenticated endpoints: health, metrics,
// search and stored uploads.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/api/health", handler.Health(d.EphemeralKey))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s := handler.NewSearchHandler(d.Search)
	e.GET("/api/search", s.Search, middleware.NewRedisCache(d.Cache, d.Redis))
	e.POST("/api/search", s.Search)

	e.GET("/api/uploads/:kind/:file", handler.NewUploadsHandler(d.Files).Serve)
}

// RegisterAuth registers register and login behind the token bucket.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, d Deps) {
	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log)
	e.POST("/api/register", a.Register, limit)
	e.POST("/api/login", a.Login, limit)
}
