package repositories

import (
	"cosign/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// CreateWithCartClear persists a new order (with its item snapshots) and
// deletes the given cart items as one atomic unit: either the order exists
// and the cart entries are gone, or neither change happened.
type OrderRepository interface {
	GetAllByUser(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	CreateWithCartClear(order *models.Order, cartItemIDs []string) error
}
