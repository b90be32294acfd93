package presenters

import (
	"Meal-Planner-Backend/domain"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUpstream        = "UPSTREAM_ERROR"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)

type (
	Response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	ErrorBody struct {
		Success bool                `json:"success"`
		Message string              `json:"message"`
		Code    string              `json:"code"`
		Error   string              `json:"error,omitempty"`
		Errors  map[string][]string `json:"errors,omitempty"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Classify maps an error to its HTTP status and stable code. fallback is used for errors
// that carry no domain kind, e.g. a malformed request body.
func Classify(err error, fallback int) (int, string) {
	switch domain.KindOf(err) {
	case domain.ErrValidation:
		return fiber.StatusBadRequest, CodeValidation
	case domain.ErrUnauthenticated:
		return fiber.StatusUnauthorized, CodeUnauthenticated
	case domain.ErrForbidden:
		return fiber.StatusForbidden, CodeForbidden
	case domain.ErrNotFound:
		return fiber.StatusNotFound, CodeNotFound
	case domain.ErrConflict:
		return fiber.StatusBadRequest, CodeConflict
	case domain.ErrUpstream:
		return fiber.StatusBadGateway, CodeUpstream
	case domain.ErrInternal:
		return fiber.StatusInternalServerError, CodeInternal
	}
	return fallback, codeForStatus(fallback)
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusUnauthorized:
		return CodeUnauthenticated
	case status == fiber.StatusForbidden:
		return CodeForbidden
	case status == fiber.StatusNotFound:
		return CodeNotFound
	case status == fiber.StatusBadGateway:
		return CodeUpstream
	case status == fiber.StatusTooManyRequests:
		return CodeRateLimited
	case status >= 400 && status < 500:
		return CodeValidation
	default:
		return CodeInternal
	}
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	status, code := Classify(err, statusCode)
	body := ErrorBody{
		Success: false,
		Message: message,
		Code:    code,
	}

	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		body.Errors = fields
		body.Error = domain.ErrValidation.Error()
	case domain.KindOf(err) != nil && status < fiber.StatusInternalServerError:
		body.Error = err.Error()
	case status >= fiber.StatusInternalServerError:
		if err != nil && domain.KindOf(err) == nil {
			log.Errorw("request failed", "path", c.Path(), "error", err)
		}
		body.Error = strings.ToLower(utils.StatusMessage(status))
		if code == CodeUpstream {
			body.Error = domain.ErrUpstream.Error()
		}
	default:
		body.Error = strings.ToLower(utils.StatusMessage(status))
	}

	return c.Status(status).JSON(body)
}
