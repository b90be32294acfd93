package handlers

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/internal/api/presenters"
	"Meal-Planner-Backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// identityOrAbort returns the caller identity, writing a 401 response when it is missing.
func identityOrAbort(c *fiber.Ctx) (domain.Identity, bool, error) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domain.Identity{}, false, presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenNotFound, domain.ErrTokenNotFound)
	}
	return identity, true, nil
}
