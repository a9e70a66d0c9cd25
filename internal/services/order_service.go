package services

import (
	"fmt"

	"cosign/internal/models"
	"cosign/internal/repositories"
)

// OrderService handles read access to order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// GetOrdersForUser retrieves the signed-in user's orders.
func (s *OrderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.orderRepo.GetAllByUser(userID)
}

// GetOrderByID retrieves a single order. The caller must own the order or
// hold the ADMIN permission.
func (s *OrderService) GetOrderByID(userID, orderID string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	if order.UserID != userID {
		user, err := s.userRepo.GetByID(userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		if !user.HasPermission(models.PermissionAdmin) {
			return nil, ErrForbidden
		}
	}

	return order, nil
}
