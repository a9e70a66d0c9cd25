package repositories

import (
	"fmt"

	"cosign/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUser retrieves all cart items for a user, with item fields preloaded.
func (r *GORMCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var cartItems []models.CartItem
	if err := r.db.Preload("Item").Find(&cartItems, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return cartItems, nil
}

// GetByID retrieves a single cart item by its ID, with item fields preloaded.
func (r *GORMCartRepository) GetByID(id string) (*models.CartItem, error) {
	var cartItem models.CartItem
	if err := r.db.Preload("Item").First(&cartItem, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart item with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get cart item by ID %s: %w", id, err)
	}
	return &cartItem, nil
}

// GetByUserAndItem retrieves the cart entry a user already has for an item,
// if any.
func (r *GORMCartRepository) GetByUserAndItem(userID, itemID string) (*models.CartItem, error) {
	var cartItem models.CartItem
	if err := r.db.First(&cartItem, "user_id = ? AND item_id = ?", userID, itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no cart item for user %s and item %s", userID, itemID)
		}
		return nil, fmt.Errorf("failed to get cart item for user %s and item %s: %w", userID, itemID, err)
	}
	return &cartItem, nil
}

// Create creates a new cart item in the database.
func (r *GORMCartRepository) Create(cartItem *models.CartItem) error {
	if cartItem.ID == "" {
		cartItem.ID = uuid.New().String()
	}
	if err := r.db.Create(cartItem).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// UpdateQuantity sets the quantity of an existing cart item.
func (r *GORMCartRepository) UpdateQuantity(id string, quantity int) error {
	res := r.db.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item quantity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s not found for quantity update", id)
	}
	return nil
}

// Delete deletes a cart item by its ID.
func (r *GORMCartRepository) Delete(id string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s not found for deletion", id)
	}
	return nil
}
