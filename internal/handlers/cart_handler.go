package handlers

import (
	"fmt"
	"log"

	"cosign/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the signed-in user's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes. All of them require a session.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddToCart)
	cartRoutes.Delete("/items/:id", h.HandleRemoveFromCart)
}

// HandleGetCart retrieves the current user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(userID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleAddToCart adds an item to the cart, incrementing the quantity if
// the item is already there.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req struct {
		ItemID string `json:"item_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "item_id is required",
		})
	}

	cartItem, err := h.service.AddToCart(userID(c), req.ItemID)
	if err != nil {
		log.Printf("Error adding item %s to cart: %v", req.ItemID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cartItem)
}

// HandleRemoveFromCart removes a cart entry owned by the current user.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	cartItemID := c.Params("id")
	if err := h.service.RemoveFromCart(userID(c), cartItemID); err != nil {
		log.Printf("Error removing cart item %s: %v", cartItemID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not remove item from cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Cart item %s removed", cartItemID),
	})
}
