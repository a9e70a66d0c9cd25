package handlers

import (
	"log"

	"cosign/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and order history.
type OrderHandler struct {
	orderService    *services.OrderService
	checkoutService *services.CheckoutService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, checkoutService *services.CheckoutService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers the order and checkout routes. All of them
// require a session.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// CheckoutRequest carries the opaque payment token obtained from the
// payment processor's client-side tooling. No amount field exists on
// purpose: totals are always recomputed server-side.
type CheckoutRequest struct {
	Token string `json:"token"`
}

// HandleCheckout converts the current user's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A payment token is required",
		})
	}

	order, err := h.checkoutService.Checkout(c.UserContext(), userID(c), req.Token)
	if err != nil {
		log.Printf("Error during checkout for user %s: %v", userID(c), err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Checkout failed",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves the current user's orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetOrdersForUser(userID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order if the caller owns it or is
// an admin.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrderByID(userID(c), orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}
