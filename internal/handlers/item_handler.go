package handlers

import (
	"fmt"
	"log"

	"cosign/internal/models"
	"cosign/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public item routes.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
}

// RegisterProtectedRoutes registers the item routes that require a session.
func (h *ItemHandler) RegisterProtectedRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Put("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItems retrieves all items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		log.Printf("Error getting all items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	itemID := c.Params("id")
	item, err := h.service.GetItemByID(itemID)
	if err != nil {
		log.Printf("Error getting item by ID %s: %v", itemID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": fmt.Sprintf("Could not retrieve item %s", itemID),
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// HandleCreateItem creates a new catalog item owned by the signed-in user.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(item); err != nil {
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

	if err := h.service.CreateItem(userID(c), &item); err != nil {
		log.Printf("Error creating item: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not create item",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing item.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")

	if err := h.validate.Struct(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateItem(userID(c), &item); err != nil {
		log.Printf("Error updating item %s: %v", item.ID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not update item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item if the caller owns it or holds the
// required permission.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.service.DeleteItem(userID(c), itemID); err != nil {
		log.Printf("Error deleting item %s: %v", itemID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not delete item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Item %s deleted successfully", itemID),
	})
}
