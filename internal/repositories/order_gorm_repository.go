package repositories

import (
	"fmt"
	"time"

	"cosign/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAllByUser retrieves all orders belonging to a user, newest first,
// with their item snapshots.
func (r *GORMOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID, with its item snapshots.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// CreateWithCartClear persists the order and deletes the converted cart
// items inside a single database transaction. A failure in either write
// rolls back both, so a charged order can never leave stale cart entries
// behind, and a failed cart clear never leaves a half-written order.
func (r *GORMOrderRepository) CreateWithCartClear(order *models.Order, cartItemIDs []string) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = now
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if len(cartItemIDs) > 0 {
			if err := tx.Delete(&models.CartItem{}, "id IN ?", cartItemIDs).Error; err != nil {
				return fmt.Errorf("failed to clear cart items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("order transaction failed: %w", err)
	}
	return nil
}
