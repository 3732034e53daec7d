package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/utils"
)

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID uint64
	Name   string
	Email  string
	Role   string
}

func (id Identity) IsAdmin() bool { return id.Role == model.RoleAdmin }

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token utils.AccessToken
	User  model.User
}

// AuthService is the authorization gate: it registers users, issues tokens,
// resolves tokens to identities and evaluates the access predicates.
type AuthService struct {
	Users      UserStore
	Tokens     *utils.TokenIssuer
	BcryptCost int
	Log        zerolog.Logger
}

func NewAuthService(users UserStore, tokens *utils.TokenIssuer, bcryptCost int, log zerolog.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, BcryptCost: bcryptCost, Log: log}
}

// Register creates a regular user and returns its id.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (uint64, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return 0, newError(KindValidation, "missing required fields")
	}
	hash, err := utils.HashPassword(password, s.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return 0, newError(KindValidation, "password is too long")
	}
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.Users.Create(ctx, model.User{Name: name, Email: email, PasswordHash: hash, Role: model.RoleUser})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return 0, newError(KindConflict, "email already exists")
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	s.Log.Info().Uint64("user_id", id).Msg("user registered")
	return id, nil
}

// Login verifies the password and issues a new access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginResult{}, newError(KindValidation, "missing email or password")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, newError(KindUnauthenticated, "invalid email or password")
		}
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, newError(KindUnauthenticated, "invalid email or password")
	}
	tok, err := s.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{Token: tok, User: u}, nil
}

// Authenticate resolves a raw bearer token into an Identity.  The role is
// read from the stored user so a token cannot outlive a role change.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (Identity, error) {
	if strings.TrimSpace(raw) == "" {
		return Identity{}, newError(KindUnauthenticated, "token is missing")
	}
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return Identity{}, newError(KindUnauthenticated, "token is invalid")
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, newError(KindUnauthenticated, "user not found")
		}
		return Identity{}, fmt.Errorf("load user: %w", err)
	}
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

// AuthorizeSelfOrAdmin permits the resource owner or any admin.
func AuthorizeSelfOrAdmin(id Identity, ownerID uint64) error {
	if id.IsAdmin() || id.UserID == ownerID {
		return nil
	}
	return newError(KindForbidden, "access denied")
}

// AuthorizeAdmin permits admins only.
func AuthorizeAdmin(id Identity) error {
	if id.IsAdmin() {
		return nil
	}
	return newError(KindForbidden, "admin access required")
}

// EnsureAdmin seeds an admin account when none exists.  It reports whether
// a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	n, err := s.Users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	hash, err := utils.HashPassword(password, s.BcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.Users.Create(ctx, model.User{Name: name, Email: email, PasswordHash: hash, Role: model.RoleAdmin})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	s.Log.Warn().Uint64("user_id", id).Str("email", email).Msg("seeded default admin account")
	return true, nil
}
