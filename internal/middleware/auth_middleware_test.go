package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"authsvc/internal/middleware"
	"authsvc/internal/repositories"
	"authsvc/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	authService := services.NewAuthService(repositories.NewMemoryUserRepository(), nil)
	user, err := authService.RegisterUser("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": middleware.CurrentUser(c).ID})
	})
	return app, user.AccessToken
}

func TestAuthRequired(t *testing.T) {
	app, token := setupApp(t)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"unknown token", "not-a-token", http.StatusUnauthorized},
		{"raw token", token, http.StatusOK},
		{"bearer token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &payload))

			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, true, payload["loggedOut"])
			} else {
				assert.NotEmpty(t, payload["id"])
			}
		})
	}
}

func TestCurrentUser_WithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Nil(t, middleware.CurrentUser(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
