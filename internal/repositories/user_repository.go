package repositories

import "cosign/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
}
