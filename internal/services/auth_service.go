package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"cosign/internal/models"
	"cosign/internal/repositories"
	"cosign/pkg/mailer"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = time.Hour

// Sender delivers transactional email. Satisfied by *mailer.Mailer.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo    repositories.UserRepository
	mail        Sender
	jwtSecret   []byte
	frontendURL string
	tokenDurat  time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. mail may be nil, in which case
// password-reset emails are logged instead of sent.
func NewAuthService(userRepo repositories.UserRepository, mail Sender, jwtSecret, frontendURL string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		mail:        mail,
		jwtSecret:   []byte(jwtSecret),
		frontendURL: frontendURL,
		tokenDurat:  365 * 24 * time.Hour, // Cookie-carried token, valid for a year
	}
}

// Signup registers a new user with a hashed password, the default USER
// permission, and a signed session token.
func (s *AuthService) Signup(user *models.User) (string, error) {
	user.Email = strings.ToLower(user.Email)

	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return "", fmt.Errorf("email '%s' already registered", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Permissions = []models.Permission{models.PermissionUser}

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueToken(user.ID)
}

// Signin authenticates a user by email and password and returns the user
// and a signed session token. Failures are deliberately indistinguishable
// between unknown email and wrong password.
func (s *AuthService) Signin(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser loads the user for a session user id.
func (s *AuthService) CurrentUser(userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return user, nil
}

// RequestReset generates a reset token for the user with the given email,
// persists it with an expiry, and emails a reset link.
func (s *AuthService) RequestReset(email string) error {
	user, err := s.userRepo.GetByEmail(strings.ToLower(email))
	if err != nil {
		return fmt.Errorf("no user found for email %s", email)
	}

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(buf)
	expiry := time.Now().Add(resetTokenTTL)

	user.ResetToken = &resetToken
	user.ResetTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset?resetToken=%s", s.frontendURL, resetToken)
	body := mailer.NiceEmail(fmt.Sprintf(`Your password reset token is here! <a href="%s">Click to reset.</a>`, link))
	if s.mail == nil {
		log.Printf("Mailer not configured; reset link for %s: %s", user.Email, link)
		return nil
	}
	if err := s.mail.Send(user.Email, "Your Password Reset Token", body); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword validates a reset token, stores the new password hash,
// clears the token, and returns the user with a fresh session token.
func (s *AuthService) ResetPassword(resetToken, password, confirmPassword string) (*models.User, string, error) {
	if password != confirmPassword {
		return nil, "", fmt.Errorf("passwords do not match")
	}

	user, err := s.userRepo.GetByResetToken(resetToken)
	if err != nil {
		return nil, "", fmt.Errorf("this token is either invalid or expired")
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return nil, "", fmt.Errorf("this token is either invalid or expired")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil

	if err := s.userRepo.Update(user); err != nil {
		return nil, "", fmt.Errorf("failed to save new password: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ListUsers returns all users. The caller must hold ADMIN or
// PERMISSIONUPDATE.
func (s *AuthService) ListUsers(callerID string) ([]models.User, error) {
	caller, err := s.CurrentUser(callerID)
	if err != nil {
		return nil, err
	}
	if !caller.HasPermission(models.PermissionAdmin, models.PermissionPermissionUpdate) {
		return nil, ErrForbidden
	}
	return s.userRepo.GetAll()
}

// UpdatePermissions replaces a target user's permission set. The caller
// must hold ADMIN or PERMISSIONUPDATE; the permissions themselves are
// validated against the closed enumeration.
func (s *AuthService) UpdatePermissions(callerID, targetUserID string, raw []string) (*models.User, error) {
	caller, err := s.CurrentUser(callerID)
	if err != nil {
		return nil, err
	}
	if !caller.HasPermission(models.PermissionAdmin, models.PermissionPermissionUpdate) {
		return nil, ErrForbidden
	}

	perms, err := models.ParsePermissions(raw)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByID(targetUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	target.Permissions = perms
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}
	return target, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// issueToken signs a session JWT for the given user id.
func (s *AuthService) issueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
