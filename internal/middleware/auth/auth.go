package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/nk_store/internal/authz"
	"github.com/Skotchmaster/nk_store/internal/logging"
	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/tokens"
)

const (
	AccessCookie = "accessToken"

	ctxClaims = "token_claims"
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxUser   = "user"
)

// UserResolver turns verified token claims into a stored user and its role.
type UserResolver interface {
	Resolve(ctx context.Context, id, email, name string) (*models.User, string, error)
}

type Middleware struct {
	JWTSecret []byte
	Users     UserResolver

	verify echo.MiddlewareFunc
}

// New builds the middleware. Tokens are read from the Authorization bearer
// header first, then from the access cookie.
func New(secret []byte, users UserResolver) *Middleware {
	m := &Middleware{JWTSecret: secret, Users: users}
	m.verify = echojwt.WithConfig(echojwt.Config{
		ContextKey:  ctxClaims,
		TokenLookup: "header:Authorization:Bearer ,cookie:" + AccessCookie,
		ParseTokenFunc: func(c echo.Context, raw string) (any, error) {
			return tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth")
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}
			l.Warn("auth_error", "status", 401, "reason", "invalid access token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		},
	})
	return m
}

type ValidatorFunc func(role string) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

// RequireStaff admits admins and staff.
func (m *Middleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(role string) error {
		if !authz.IsStaff(role) {
			return echo.NewHTTPError(http.StatusForbidden, "staff access required")
		}
		return nil
	})
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(role string) error {
		if !authz.IsAdmin(role) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return m.verify(func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "auth")

		claims, ok := c.Get(ctxClaims).(*tokens.AccessClaims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		user, role, err := m.Users.Resolve(ctx, claims.Subject, claims.Email, claims.Name)
		if err != nil {
			l.Error("auth_error", "status", 500, "reason", "cannot load user", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot load user")
		}

		if validator != nil {
			if err := validator(role); err != nil {
				l.Warn("auth_error", "status", 403, "reason", "role not allowed", "user_id", user.ID, "role", role)
				return err
			}
		}

		setUserContext(c, user, role)
		return next(c)
	})
}

func setUserContext(c echo.Context, u *models.User, role string) {
	c.Set(ctxUserID, u.ID)
	c.Set(ctxRole, role)
	c.Set(ctxUser, u)
}

func UserID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}

func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}

func User(c echo.Context) *models.User {
	u, _ := c.Get(ctxUser).(*models.User)
	return u
}
