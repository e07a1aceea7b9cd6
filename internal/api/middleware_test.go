package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/entity"
)

// callRequireAdmin runs the middleware with the given context token, the way
// the JWT middleware would have stored it, and records the response.
func callRequireAdmin(t *testing.T, token interface{}) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if token != nil {
		c.Set("user", token)
	}

	handler := RequireAdmin()(func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "ok"})
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireAdminAllowsAdminToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": entity.RoleAdmin})

	rec := callRequireAdmin(t, token)

	assert.Equal(t, 200, rec.Code)
}

func TestRequireAdminRejectsCustomerToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": entity.RoleCustomer})

	rec := callRequireAdmin(t, token)

	assert.Equal(t, 403, rec.Code)
}

func TestRequireAdminRejectsTokenWithoutRole(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "user@example.com"})

	rec := callRequireAdmin(t, token)

	assert.Equal(t, 403, rec.Code)
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	rec := callRequireAdmin(t, nil)

	assert.Equal(t, 401, rec.Code)
}
