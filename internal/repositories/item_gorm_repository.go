package repositories

import (
	"fmt"

	"cosign/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetAll retrieves all items from the database.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID from the database.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("item with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// Create creates a new item in the database.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update updates an existing item in the database.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Save(item) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound if no rows affected
		// for an update, so we check RowsAffected.
		return fmt.Errorf("item with ID %s not found for update", item.ID)
	}
	return nil
}

// Delete deletes an item by its ID from the database.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s not found for deletion", id)
	}
	return nil
}
