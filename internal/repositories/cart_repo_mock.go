package repositories

import (
	"fmt"
	"sync"

	"cosign/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	cartItems map[string]models.CartItem
	mu        sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		cartItems: make(map[string]models.CartItem),
	}
}

// GetByUser returns all cart items belonging to a user.
func (r *MockCartRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cartItems []models.CartItem
	for _, ci := range r.cartItems {
		if ci.UserID == userID {
			cartItems = append(cartItems, ci)
		}
	}
	return cartItems, nil
}

// GetByID returns a cart item by its ID.
func (r *MockCartRepository) GetByID(id string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ci, ok := r.cartItems[id]
	if !ok {
		return nil, fmt.Errorf("cart item with ID %s not found", id)
	}
	return &ci, nil
}

// GetByUserAndItem returns the entry a user already has for an item, if any.
func (r *MockCartRepository) GetByUserAndItem(userID, itemID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ci := range r.cartItems {
		if ci.UserID == userID && ci.ItemID == itemID {
			return &ci, nil
		}
	}
	return nil, fmt.Errorf("no cart item for user %s and item %s", userID, itemID)
}

// Create adds a new cart item.
func (r *MockCartRepository) Create(cartItem *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cartItem.ID == "" {
		cartItem.ID = uuid.New().String()
	}
	r.cartItems[cartItem.ID] = *cartItem
	return nil
}

// UpdateQuantity sets the quantity of an existing cart item.
func (r *MockCartRepository) UpdateQuantity(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ci, ok := r.cartItems[id]
	if !ok {
		return fmt.Errorf("cart item with ID %s not found for quantity update", id)
	}
	ci.Quantity = quantity
	r.cartItems[id] = ci
	return nil
}

// Delete removes a cart item by its ID.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cartItems[id]; !ok {
		return fmt.Errorf("cart item with ID %s not found for deletion", id)
	}
	delete(r.cartItems, id)
	return nil
}

// deleteMany removes a set of cart items in one go. Used by the mock order
// repository to mirror the transactional cart clear.
func (r *MockCartRepository) deleteMany(ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.cartItems, id)
	}
}
