package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORSMiddleware allows credentialed requests from the configured client origins.
func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := strings.TrimSpace(m.allowOrigins)
	allowCredentials := origins != "" && origins != "*"
	if origins == "" {
		origins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: allowCredentials,
	})
}
