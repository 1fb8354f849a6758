package tokens

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	exp := time.Now().Add(AccessTTL).UTC()

	token, err := SignAccessToken(42, secret, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, []byte("right"), time.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token, err := SignAccessToken(1, secret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	assert.Error(t, err)
}

func TestRequireLogin(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireLogin(secret)

	t.Run("valid cookie", func(t *testing.T) {
		token, err := SignAccessToken(7, secret, time.Now().Add(time.Minute))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, mw(next)(c))
		assert.EqualValues(t, 7, c.Get("userID"))
	})

	t.Run("bearer header", func(t *testing.T) {
		token, err := SignAccessToken(8, secret, time.Now().Add(time.Minute))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, mw(next)(c))
		assert.EqualValues(t, 8, c.Get("userID"))
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := mw(next)(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError")
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "not-a-jwt"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := mw(next)(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, "expected HTTPError")
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}
