package services

import (
	"fmt"
	"strings"

	"storefront/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account business logic
type UserService struct {
	userRepo UserRepository
	cartRepo CartRepository
}

// UserRepository interface for user data operations
type UserRepository interface {
	Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	List() ([]*models.User, error)
	Update(id int, req *models.UserUpdateRequest) (*models.User, error)
	UpdatePassword(id int, passwordHash string) error
	Delete(id int) error
}

// CartRepository interface for the cart operations user management needs
type CartRepository interface {
	GetOrCreateByUser(userID int) (*models.Cart, error)
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, cartRepo CartRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		cartRepo: cartRepo,
	}
}

// CreateUser registers a new account and provisions its cart. The password
// is hashed before storage and never leaves this layer in plain form.
func (s *UserService) CreateUser(req *models.UserCreateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateEmail
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(req, hash)
	if err != nil {
		return nil, err
	}

	if _, err := s.cartRepo.GetOrCreateByUser(user.ID); err != nil {
		return nil, fmt.Errorf("failed to provision cart: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAllUsers retrieves all users
func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.userRepo.List()
}

// UpdateUser updates a profile. Only admins may change roles.
func (s *UserService) UpdateUser(id int, req *models.UserUpdateRequest, requestingUser *models.User) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Role != "" && !requestingUser.IsAdmin() {
		return nil, models.ErrForbidden
	}

	return s.userRepo.Update(id, req)
}

// ChangePassword validates and stores a new password for the user
func (s *UserService) ChangePassword(id int, newPassword string) error {
	if err := models.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}

	if CheckPassword(newPassword, user.PasswordHash) {
		return models.ErrSamePassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(id, hash)
}

// DeleteUser removes an account. The schema cascades the owned cart.
func (s *UserService) DeleteUser(id int) error {
	return s.userRepo.Delete(id)
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the candidate matches the stored hash
func CheckPassword(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// NormalizeEmail lowercases and trims an email for storage and lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
