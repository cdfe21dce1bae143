package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veletic/cinema-ticketing/internal/utils"
)

func callJWT(t *testing.T, secret, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := JWTAuth(secret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	const secret = "s"
	at, err := utils.NewAccessToken(secret, 42, 2, "MANAGER", 15)
	require.NoError(t, err)

	rec, c := callJWT(t, secret, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// numeric claims decode as float64
	assert.Equal(t, float64(42), c.Get("user_id"))
	assert.Equal(t, float64(2), c.Get("role_id"))
	assert.Equal(t, "MANAGER", c.Get("role_name"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := callJWT(t, "s", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("issuer-secret", 1, 1, "CUSTOMER", 15)
	require.NoError(t, err)

	rec, _ := callJWT(t, "other-secret", "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	const secret = "s"
	at, err := utils.NewAccessToken(secret, 1, 1, "CUSTOMER", -5)
	require.NoError(t, err)

	rec, _ := callJWT(t, secret, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _ := callJWT(t, "s", "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
