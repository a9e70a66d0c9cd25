package handlers

import (
	"errors"

	"cosign/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFromError maps service-layer sentinel errors to HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrPaymentFailed):
		return fiber.StatusPaymentRequired
	default:
		return fiber.StatusInternalServerError
	}
}

// userID returns the session user id set by the auth middleware.
func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
