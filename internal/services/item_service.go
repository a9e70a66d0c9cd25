package services

import (
	"fmt"

	"cosign/internal/models"
	"cosign/internal/repositories"
)

// ItemService handles business logic related to catalog items.
type ItemService struct {
	repo     repositories.ItemRepository
	userRepo repositories.UserRepository
}

// NewItemService creates a new ItemService.
func NewItemService(repo repositories.ItemRepository, userRepo repositories.UserRepository) *ItemService {
	return &ItemService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// GetAllItems retrieves all items.
func (s *ItemService) GetAllItems() ([]models.Item, error) {
	return s.repo.GetAll()
}

// GetItemByID retrieves a single item by its ID.
func (s *ItemService) GetItemByID(id string) (*models.Item, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return item, nil
}

// CreateItem creates a new item owned by the signed-in user.
func (s *ItemService) CreateItem(userID string, item *models.Item) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	item.UserID = userID
	return s.repo.Create(item)
}

// UpdateItem updates an existing item's catalog fields.
func (s *ItemService) UpdateItem(userID string, item *models.Item) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	existing, err := s.repo.GetByID(item.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	// Ownership stays with the original creator.
	item.UserID = existing.UserID
	return s.repo.Update(item)
}

// DeleteItem deletes an item. The caller must own the item or hold the
// ADMIN or ITEMDELETE permission.
func (s *ItemService) DeleteItem(userID, itemID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	item, err := s.repo.GetByID(itemID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	ownsItem := item.UserID == userID
	if !ownsItem {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if !user.HasPermission(models.PermissionAdmin, models.PermissionItemDelete) {
			return ErrForbidden
		}
	}

	return s.repo.Delete(itemID)
}
