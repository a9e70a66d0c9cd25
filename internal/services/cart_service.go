package services

import (
	"fmt"

	"cosign/internal/models"
	"cosign/internal/repositories"
)

// CartService handles business logic related to a user's cart.
type CartService struct {
	cartRepo repositories.CartRepository
	itemRepo repositories.ItemRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, itemRepo repositories.ItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// GetCart retrieves the signed-in user's cart with item fields populated.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.cartRepo.GetByUser(userID)
}

// AddToCart puts an item in the user's cart. If the item is already there,
// its quantity is incremented instead of creating a duplicate entry.
func (s *CartService) AddToCart(userID, itemID string) (*models.CartItem, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	if _, err := s.itemRepo.GetByID(itemID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	existing, err := s.cartRepo.GetByUserAndItem(userID, itemID)
	if err == nil && existing != nil {
		if err := s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity+1); err != nil {
			return nil, fmt.Errorf("failed to increment cart item: %w", err)
		}
		return s.cartRepo.GetByID(existing.ID)
	}

	cartItem := &models.CartItem{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	if err := s.cartRepo.Create(cartItem); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}
	return s.cartRepo.GetByID(cartItem.ID)
}

// RemoveFromCart deletes a cart entry. Only the entry's owner may remove it.
func (s *CartService) RemoveFromCart(userID, cartItemID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	cartItem, err := s.cartRepo.GetByID(cartItemID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if cartItem.UserID != userID {
		return ErrForbidden
	}

	return s.cartRepo.Delete(cartItemID)
}
