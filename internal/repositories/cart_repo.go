package repositories

import "cosign/internal/models"

// CartRepository defines the interface for cart item data access.
// GetByUser and GetByID return entries with the Item relation populated.
type CartRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetByID(id string) (*models.CartItem, error)
	GetByUserAndItem(userID, itemID string) (*models.CartItem, error)
	Create(cartItem *models.CartItem) error
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
}
