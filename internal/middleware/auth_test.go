package middleware

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/pkg/jwt"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, jwtService jwt.JWTService, roles ...string) *fiber.App {
	t.Helper()
	m := NewMiddleware("http://localhost:3000")
	app := fiber.New()

	handlers := []fiber.Handler{m.AuthMiddleware(jwtService)}
	if len(roles) > 0 {
		handlers = append(handlers, m.RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		identity, _ := GetIdentity(c)
		return c.SendString(identity.Email)
	})
	app.Get("/private", handlers...)
	return app
}

func token(t *testing.T, jwtService jwt.JWTService, email, role string) string {
	t.Helper()
	tok, err := jwtService.GenerateToken(domain.Identity{AccountID: uuid.New(), Email: email, Role: role})
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_HeaderThenCookie(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	app := newTestApp(t, jwtService)

	header := token(t, jwtService, "header@example.com", domain.RoleUser)
	cookie := token(t, jwtService, "cookie@example.com", domain.RoleUser)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+header)
	req.Header.Set("Cookie", AuthCookieName+"="+cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := make([]byte, 64)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "header@example.com", string(body[:n]))

	req = httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Cookie", AuthCookieName+"="+cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	n, _ = resp.Body.Read(body)
	assert.Equal(t, "cookie@example.com", string(body[:n]))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	app := newTestApp(t, jwtService)
	foreign := token(t, jwt.NewJWTService("other", time.Hour), "x@example.com", domain.RoleUser)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"bad token":    "Bearer nope",
		"wrong secret": "Bearer " + foreign,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	app := newTestApp(t, jwtService, domain.RoleAdmin)

	for role, want := range map[string]int{
		domain.RoleUser:  fiber.StatusForbidden,
		domain.RoleAdmin: fiber.StatusOK,
	} {
		req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, jwtService, "a@example.com", role))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

func TestRoleMiddleware_ForbiddenBody(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	app := newTestApp(t, jwtService, domain.RoleAdmin)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, jwtService, "a@example.com", domain.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, domain.MessageUserNotAllowed, body.Message)
	assert.Equal(t, "FORBIDDEN", body.Code)
}
