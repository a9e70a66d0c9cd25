package repositories

import (
	"fmt"
	"sync"
	"time"

	"cosign/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// When constructed with a MockCartRepository it mirrors the transactional
// contract of CreateWithCartClear by deleting the cart items it is handed.
type MockOrderRepository struct {
	orders map[string]models.Order
	cart   *MockCartRepository
	mu     sync.RWMutex

	// FailCreate forces CreateWithCartClear to fail, for exercising the
	// charged-but-not-persisted path in tests.
	FailCreate bool
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
// cart may be nil when cart clearing is irrelevant to the test.
func NewMockOrderRepository(cart *MockCartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		cart:   cart,
	}
}

// GetAllByUser returns all orders belonging to a user.
func (r *MockOrderRepository) GetAllByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return &order, nil
}

// CreateWithCartClear stores the order and removes the converted cart items
// from the attached cart repository.
func (r *MockOrderRepository) CreateWithCartClear(order *models.Order, cartItemIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		return fmt.Errorf("order transaction failed: store unavailable")
	}

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
	r.orders[order.ID] = *order

	if r.cart != nil {
		r.cart.deleteMany(cartItemIDs)
	}
	return nil
}
