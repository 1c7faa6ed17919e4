package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/skwermkt/internal/config"
	"github.com/example/skwermkt/internal/utils"
)

func newProtectedApp(cfg *config.Config, roles ...string) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{AuthMiddleware(cfg)}
	if len(roles) > 0 {
		chain = append(chain, RestrictTo(roles...))
	}
	app.Get("/protected", append(chain, func(c *fiber.Ctx) error {
		id, _ := GetCurrentUserID(c)
		role, _ := GetCurrentUserRole(c)
		return c.JSON(fiber.Map{"id": id.String(), "role": role})
	})...)
	return app
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newProtectedApp(cfg)

	token, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), "vendor", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MissingAndMalformedHeaders(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newProtectedApp(cfg)

	cases := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRestrictTo_RoleEnforcement(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := newProtectedApp(cfg, "vendor")

	vendorToken, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), "vendor", time.Hour)
	require.NoError(t, err)
	customerToken, err := utils.GenerateToken(cfg.JWTSecret, uuid.New(), "customer", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+vendorToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
