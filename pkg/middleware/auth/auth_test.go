package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toomajBandad/MoonShop-Backend/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

func issue(t *testing.T, role string) (string, string) {
	t.Helper()
	id := uuid.NewString()
	tok, _, err := tokens.NewIssuer(testSecret, time.Minute).Issue(id, role)
	require.NoError(t, err)
	return id, tok
}

func run(t *testing.T, mw echo.MiddlewareFunc, setup func(r *http.Request)) (echo.Context, error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return c, err, called
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(testSecret)
	userID, tok := issue(t, tokens.RoleUser)

	t.Run("bearer header", func(t *testing.T) {
		t.Parallel()
		c, err, called := run(t, m.RequireAuth, func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
		})
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, userID, c.Get(ContextUserID))
		assert.Equal(t, tokens.RoleUser, c.Get(ContextRole))
	})

	t.Run("cookie", func(t *testing.T) {
		t.Parallel()
		_, err, called := run(t, m.RequireAuth, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "accessToken", Value: tok})
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err, called := run(t, m.RequireAuth, nil)
		assert.False(t, called)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err, called := run(t, m.RequireAuth, func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer nope")
		})
		assert.False(t, called)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	m := NewAuthMiddleware(testSecret)
	_, userTok := issue(t, tokens.RoleUser)
	_, adminTok := issue(t, tokens.RoleAdmin)

	_, err, called := run(t, m.RequireAdmin, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+userTok)
	})
	assert.False(t, called)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	_, err, called = run(t, m.RequireAdmin, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+adminTok)
	})
	require.NoError(t, err)
	assert.True(t, called)
}
