package middleware

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthCookieName = "token"
	identityKey    = "identity"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		RoleMiddleware(roles ...string) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct {
		allowOrigins string
	}
)

func NewMiddleware(allowOrigins string) Middleware {
	return &middleware{allowOrigins: allowOrigins}
}

// GetIdentity returns the identity the auth middleware attached to the request.
func GetIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

func setIdentity(c *fiber.Ctx, identity domain.Identity) {
	c.Locals(identityKey, identity)
}
