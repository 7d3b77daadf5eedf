package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(req *http.Request) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := Middleware(Config{})(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)
	return rec, err
}

func forbidden(t *testing.T, err error) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "want echo.HTTPError, got %v", err)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/cart", nil)
	rec, err := serve(req)
	require.NoError(t, err)
	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	cookieWrite := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/orders", nil)
		r.Header.Set("Origin", "http://example.com")
		r.AddCookie(&http.Cookie{Name: "accessToken", Value: "jwt"})
		r.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: token})
		if header != "" {
			r.Header.Set("X-CSRF-Token", header)
		}
		return r
	}

	_, err = serve(cookieWrite(token))
	assert.NoError(t, err)

	_, err = serve(cookieWrite(""))
	forbidden(t, err)

	_, err = serve(cookieWrite("other"))
	forbidden(t, err)

	r := cookieWrite(token)
	r.Header.Set("Origin", "http://evil.example")
	_, err = serve(r)
	forbidden(t, err)

	bearer := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/orders", nil)
	bearer.Header.Set(echo.HeaderAuthorization, "Bearer jwt")
	_, err = serve(bearer)
	assert.NoError(t, err)

	anonymous := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/orders", nil)
	_, err = serve(anonymous)
	assert.NoError(t, err)
}
