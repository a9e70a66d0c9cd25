package middleware

import (
	"strings"

	"cosign/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TokenCookie is the cookie carrying the session JWT.
const TokenCookie = "token"

// tokenFromRequest pulls the session token from the httpOnly cookie, or
// from an Authorization Bearer header for non-browser clients.
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(TokenCookie); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthRequired is a Fiber middleware that rejects requests without a valid
// session token and stores the user id in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "You must be signed in to do that",
			})
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		// Store the session identity for subsequent handlers.
		c.Locals("user_id", userID)

		return c.Next()
	}
}
