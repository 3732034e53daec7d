package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/service"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Auth *service.AuthService
	Log  zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Log: log}
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    userPart  `json:"user"`
}

// Register creates a regular user account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	uid, err := h.Auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully", "user_id": uid})
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	res, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:   res.Token.Token,
		Expires: res.Token.Exp,
		User:    userPart{ID: res.User.ID, Name: res.User.Name, Email: res.User.Email, Role: res.User.Role},
	})
}
