package repositories

import (
	"fmt"
	"sync"

	"cosign/internal/models"

	"github.com/google/uuid"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.Item),
	}
}

// GetAll returns all items.
func (r *MockItemRepository) GetAll() ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		itemList = append(itemList, item)
	}
	return itemList, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s not found", id)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Update replaces an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("item with ID %s not found for update", item.ID)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("item with ID %s not found for deletion", id)
	}
	delete(r.items, id)
	return nil
}
