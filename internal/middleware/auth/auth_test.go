package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/tokens"
)

var secret = []byte("test-secret")

type stubUsers struct {
	roles map[string]string
	err   error
}

func (s stubUsers) Resolve(_ context.Context, id, email, name string) (*models.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	role := s.roles[id]
	if role == "" {
		role = models.RoleUser
	}
	return &models.User{ID: id, Email: email, DisplayName: name, Role: role}, role, nil
}

func token(t *testing.T, id string, ttl time.Duration) string {
	t.Helper()
	tok, err := tokens.NewAccessToken(id, id+"@nk.in", "Name", secret, ttl)
	require.NoError(t, err)
	return tok
}

func run(t *testing.T, mw echo.MiddlewareFunc, setup func(*http.Request)) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return c, err
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "want echo.HTTPError, got %v", err)
	return he.Code
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()
	m := New(secret, stubUsers{})

	c, err := run(t, m.RequireAuth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "u1", time.Minute))
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", UserID(c))
	assert.Equal(t, models.RoleUser, Role(c))
	assert.Equal(t, "u1@nk.in", User(c).Email)

	c, err = run(t, m.RequireAuth, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessCookie, Value: token(t, "u2", time.Minute)})
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", UserID(c))

	_, err = run(t, m.RequireAuth, nil)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, m.RequireAuth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "u1", -time.Minute))
	})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, err = run(t, m.RequireAuth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	failing := New(secret, stubUsers{err: errors.New("db down")})
	_, err = run(t, failing.RequireAuth, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "u1", time.Minute))
	})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}

func TestRoleGates(t *testing.T) {
	t.Parallel()
	m := New(secret, stubUsers{roles: map[string]string{"a": models.RoleAdmin, "s": models.RoleStaff}})
	with := func(id string) func(*http.Request) {
		return func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, id, time.Minute))
		}
	}

	tests := []struct {
		name string
		mw   echo.MiddlewareFunc
		user string
		want int
	}{
		{name: "admin on admin route", mw: m.RequireAdmin, user: "a", want: http.StatusOK},
		{name: "staff on admin route", mw: m.RequireAdmin, user: "s", want: http.StatusForbidden},
		{name: "staff on staff route", mw: m.RequireStaff, user: "s", want: http.StatusOK},
		{name: "admin on staff route", mw: m.RequireStaff, user: "a", want: http.StatusOK},
		{name: "user on staff route", mw: m.RequireStaff, user: "u", want: http.StatusForbidden},
	}
	for _, tt := range tests {
		_, err := run(t, tt.mw, with(tt.user))
		if tt.want == http.StatusOK {
			assert.NoError(t, err, tt.name)
			continue
		}
		assert.Equal(t, tt.want, statusOf(t, err), tt.name)
	}
}
