package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"cosign/internal/models"
	"cosign/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// TestMain is used to set up the test environment.
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_Signup(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret", "http://localhost:7777")

	user := &models.User{
		Name:     "Test User",
		Email:    "Test@Example.com",
		Password: "password123",
	}

	mockRepo.On("GetByEmail", "test@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	token, err := authService.Signup(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// Email is lowercased, password is hashed, default permission applied
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	assert.Equal(t, []models.Permission{models.PermissionUser}, user.Permissions)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Signup(&models.User{Name: "Other", Email: "test@example.com", Password: "password123"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Signin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, "http://localhost:7777")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful signin
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	got, token, err := authService.Signin("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, got.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, err = authService.Signin("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email reports the same generic error
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("user with email nobody@example.com not found")).Once()
	_, _, err = authService.Signin("nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RequestReset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret", "http://localhost:7777")

	user := &models.User{
		ID:    "user-123",
		Email: "test@example.com",
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	var saved *models.User
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.User)
	}).Return(nil).Once()

	err := authService.RequestReset("test@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, saved.ResetToken)
	assert.Len(t, *saved.ResetToken, 40) // 20 random bytes, hex encoded
	assert.NotNil(t, saved.ResetTokenExpiry)
	assert.True(t, saved.ResetTokenExpiry.After(time.Now()))
	mockRepo.AssertExpectations(t)

	// Unknown email
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, fmt.Errorf("not found")).Once()
	err = authService.RequestReset("nobody@example.com")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret", "http://localhost:7777")

	resetToken := "abcdef0123456789"
	expiry := time.Now().Add(30 * time.Minute)
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	user := &models.User{
		ID:               "user-123",
		Email:            "test@example.com",
		Password:         string(oldHash),
		ResetToken:       &resetToken,
		ResetTokenExpiry: &expiry,
	}

	// Mismatched confirmation
	_, _, err := authService.ResetPassword(resetToken, "newpassword", "different")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	// Expired token
	expired := time.Now().Add(-time.Minute)
	expiredUser := &models.User{ID: "user-456", ResetToken: &resetToken, ResetTokenExpiry: &expired}
	mockRepo.On("GetByResetToken", resetToken).Return(expiredUser, nil).Once()
	_, _, err = authService.ResetPassword(resetToken, "newpassword", "newpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or expired")
	mockRepo.AssertExpectations(t)

	// Successful reset clears token state and rehashes the password
	mockRepo.On("GetByResetToken", resetToken).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, token, err := authService.ResetPassword(resetToken, "newpassword", "newpassword")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Nil(t, updated.ResetToken)
	assert.Nil(t, updated.ResetTokenExpiry)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newpassword")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdatePermissions(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret", "http://localhost:7777")

	admin := &models.User{
		ID:          "admin-1",
		Permissions: []models.Permission{models.PermissionAdmin},
	}
	regular := &models.User{
		ID:          "user-1",
		Permissions: []models.Permission{models.PermissionUser},
	}

	// Caller without the required permission is rejected
	mockRepo.On("GetByID", "user-1").Return(regular, nil).Once()
	_, err := authService.UpdatePermissions("user-1", "user-2", []string{"ADMIN"})
	assert.ErrorIs(t, err, services.ErrForbidden)
	mockRepo.AssertExpectations(t)

	// Unknown permission values are rejected by the closed enum
	mockRepo.On("GetByID", "admin-1").Return(admin, nil).Once()
	_, err = authService.UpdatePermissions("admin-1", "user-1", []string{"SUPERUSER"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown permission")
	mockRepo.AssertExpectations(t)

	// Successful update
	target := &models.User{ID: "user-1", Permissions: []models.Permission{models.PermissionUser}}
	mockRepo.On("GetByID", "admin-1").Return(admin, nil).Once()
	mockRepo.On("GetByID", "user-1").Return(target, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	updated, err := authService.UpdatePermissions("admin-1", "user-1", []string{"USER", "ITEMDELETE"})
	assert.NoError(t, err)
	assert.Equal(t, []models.Permission{models.PermissionUser, models.PermissionItemDelete}, updated.Permissions)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, "test_jwt_secret", "http://localhost:7777")

	// A token signed with a different secret is rejected
	other := services.NewAuthService(mockRepo, nil, "other_secret", "http://localhost:7777")
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "test@example.com", Password: string(hashedPassword)}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Twice()

	_, goodToken, err := authService.Signin(user.Email, "password123")
	assert.NoError(t, err)
	_, badToken, err := other.Signin(user.Email, "password123")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(goodToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	_, err = authService.ValidateToken(badToken)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}
