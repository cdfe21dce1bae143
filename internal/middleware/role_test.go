package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veletic/cinema-ticketing/internal/model"
)

func callWithRole(t *testing.T, min uint8, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role_id", role)
	}
	h := RequireRole(min)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleOrdering(t *testing.T) {
	// a manager passes manager gates and customer gates, but not admin
	assert.Equal(t, http.StatusOK, callWithRole(t, model.RoleCustomer, float64(model.RoleManager)).Code)
	assert.Equal(t, http.StatusOK, callWithRole(t, model.RoleManager, float64(model.RoleManager)).Code)
	assert.Equal(t, http.StatusForbidden, callWithRole(t, model.RoleAdmin, float64(model.RoleManager)).Code)
}

func TestRequireRoleAdminPassesEverywhere(t *testing.T) {
	for _, min := range []uint8{model.RoleCustomer, model.RoleManager, model.RoleAdmin} {
		assert.Equal(t, http.StatusOK, callWithRole(t, min, float64(model.RoleAdmin)).Code)
	}
}

func TestRequireRoleMissingClaim(t *testing.T) {
	rec := callWithRole(t, model.RoleCustomer, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleClaimTypes(t *testing.T) {
	// JWT decoding yields float64, tests and internal callers may use
	// native ints
	for _, role := range []interface{}{uint8(2), int(2), int64(2), float64(2)} {
		assert.Equal(t, http.StatusOK, callWithRole(t, model.RoleManager, role).Code)
	}
	assert.Equal(t, http.StatusUnauthorized, callWithRole(t, model.RoleCustomer, "CUSTOMER").Code)
}
