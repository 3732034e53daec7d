package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/service"
	"github.com/iliyamo/travel-booking/internal/utils"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func do(e *echo.Echo, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func limitCfg() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
}

func TestTokenBucketRedis(t *testing.T) {
	e := echo.New()
	e.POST("/api/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		NewTokenBucket(limitCfg(), newRedis(t), zerolog.Nop()))

	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/login", nil).Code)
	rec := do(e, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do(e, http.MethodPost, "/api/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	other := do(e, http.MethodPost, "/api/login", map[string]string{echo.HeaderXForwardedFor: "10.1.1.1"})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestTokenBucketLocalFallback(t *testing.T) {
	e := echo.New()
	e.POST("/api/register", func(c echo.Context) error { return c.NoContent(http.StatusCreated) },
		NewTokenBucket(limitCfg(), nil, zerolog.Nop()))

	assert.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/register", nil).Code)
	assert.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/register", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodPost, "/api/register", nil).Code)
}

func TestTokenBucketDisabled(t *testing.T) {
	cfg := limitCfg()
	cfg.Enabled = false
	e := echo.New()
	e.POST("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, nil, zerolog.Nop()))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/x", nil).Code)
	}
}

func TestRedisCacheReplaysResponse(t *testing.T) {
	calls := 0
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 1 << 20}
	e := echo.New()
	e.GET("/api/search", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"call": calls})
	}, NewRedisCache(cfg, newRedis(t)))

	first := do(e, http.MethodGet, "/api/search?from=A&to=B", nil)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := do(e, http.MethodGet, "/api/search?to=B&from=A", nil)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Contains(t, second.Header().Get(echo.HeaderContentType), "application/json")

	third := do(e, http.MethodGet, "/api/search?from=A&to=C", nil)
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestRedisCacheSkipsErrors(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache"}
	calls := 0
	e := echo.New()
	e.GET("/api/search", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad"})
	}, NewRedisCache(cfg, newRedis(t)))

	do(e, http.MethodGet, "/api/search", nil)
	rec := do(e, http.MethodGet, "/api/search", nil)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func newAuth(t *testing.T) (*service.AuthService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	auth := service.NewAuthService(store.Users, utils.NewTokenIssuer("k", time.Hour), bcrypt.MinCost, zerolog.Nop())
	return auth, store
}

func tokenFor(t *testing.T, auth *service.AuthService, email, role string) string {
	t.Helper()
	hash, err := utils.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	id, err := auth.Users.Create(context.Background(), model.User{Name: email, Email: email, PasswordHash: hash, Role: role})
	require.NoError(t, err)
	tok, err := auth.Tokens.Issue(id, role)
	require.NoError(t, err)
	return tok.Token
}

func TestJWTAuthAndRequireRole(t *testing.T) {
	auth, _ := newAuth(t)
	userTok := tokenFor(t, auth, "u@x.io", model.RoleUser)
	adminTok := tokenFor(t, auth, "a@x.io", model.RoleAdmin)

	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		id, ok := CurrentIdentity(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"email": id.Email, "uid": userID(c)})
	}, JWTAuth(auth))
	e.GET("/admin", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) },
		JWTAuth(auth), RequireRole(model.RoleAdmin))

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"}).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/me", map[string]string{"Authorization": userTok}).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/me", map[string]string{"Authorization": "bearer " + userTok}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer "}).Code)

	rec := do(e, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + userTok})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"u@x.io","uid":"1"}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + userTok}).Code)
	assert.Equal(t, http.StatusNoContent, do(e, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + adminTok}).Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "abc", bearerToken("abc"))
	assert.Equal(t, "", bearerToken(""))
}

func TestRequestIDAndLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(), RequestLogger(zerolog.Nop()))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := do(e, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)

	rec = do(e, http.MethodGet, "/ok", map[string]string{echo.HeaderXRequestID: "abc"})
	assert.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/missing", nil).Code)
}
