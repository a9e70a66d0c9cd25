package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cosign/internal/middleware"
	"cosign/internal/models"
	"cosign/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and user
// administration.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/signin", h.HandleSignin)
	authRoutes.Post("/signout", h.HandleSignout)
	authRoutes.Post("/request-reset", h.HandleRequestReset)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// RegisterProtectedRoutes registers routes that require a session.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/auth/me", h.HandleMe)
	router.Get("/users", h.HandleListUsers)
	router.Put("/users/:id/permissions", h.HandleUpdatePermissions)
}

// setTokenCookie attaches the session JWT as an httpOnly cookie, the way
// the browser frontend expects it.
func setTokenCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		HTTPOnly: true,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})
}

// SignupRequest represents the request body for signup. The password rides
// in the request only; the stored model never serializes it back out.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleSignup handles new user registration and signs the user in.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signup request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	token, err := h.authService.Signup(&user)
	if err != nil {
		log.Printf("Error signing up user: %v", err)
		if strings.Contains(err.Error(), "already registered") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Signup failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not sign up user",
			"error":   err.Error(),
		})
	}

	setTokenCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User signed up successfully",
		"user":    user,
	})
}

// SigninRequest represents the request body for signin.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignin handles user sign-in and issues the session cookie.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing signin request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	user, token, err := h.authService.Signin(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during signin for %s: %v", req.Email, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	setTokenCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Signin successful",
		"user":    user,
	})
}

// HandleSignout clears the session cookie.
func (h *AuthHandler) HandleSignout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{
		"message": "Goodbye!",
	})
}

// HandleRequestReset generates a password-reset token and emails it.
func (h *AuthHandler) HandleRequestReset(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.authService.RequestReset(req.Email); err != nil {
		log.Printf("Error requesting password reset for %s: %v", req.Email, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not request password reset",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Thanks! Check your email for a reset link.",
	})
}

// ResetPasswordRequest represents the request body for a password reset.
type ResetPasswordRequest struct {
	ResetToken      string `json:"reset_token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,min=6"`
}

// HandleResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	user, token, err := h.authService.ResetPassword(req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		log.Printf("Error resetting password: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not reset password",
			"error":   err.Error(),
		})
	}

	setTokenCookie(c, token)
	return c.JSON(fiber.Map{
		"message": "Password reset successfully",
		"user":    user,
	})
}

// HandleMe returns the currently signed-in user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.CurrentUser(userID(c))
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not load current user",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleListUsers returns all users; requires ADMIN or PERMISSIONUPDATE.
func (h *AuthHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(userID(c))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not list users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleUpdatePermissions replaces a user's permission set; requires ADMIN
// or PERMISSIONUPDATE.
func (h *AuthHandler) HandleUpdatePermissions(c *fiber.Ctx) error {
	targetID := c.Params("id")
	var req struct {
		Permissions []string `json:"permissions"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.authService.UpdatePermissions(userID(c), targetID, req.Permissions)
	if err != nil {
		log.Printf("Error updating permissions for user %s: %v", targetID, err)
		if strings.Contains(err.Error(), "unknown permission") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not update permissions",
				"error":   err.Error(),
			})
		}
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not update permissions",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}
