package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleAdmin   UserRole = "admin"
	RolePremium UserRole = "premium"
)

// User represents a registered account
type User struct {
	ID                 int        `json:"id" db:"id"`
	FirstName          string     `json:"first_name" db:"first_name"`
	LastName           string     `json:"last_name" db:"last_name"`
	Email              string     `json:"email" db:"email"`
	Age                int        `json:"age" db:"age"`
	PasswordHash       string     `json:"-" db:"password_hash"`
	Role               UserRole   `json:"role" db:"role"`
	ResetToken         *string    `json:"-" db:"reset_token"`
	ResetTokenExpires  *time.Time `json:"-" db:"reset_token_expires"`
	LastPasswordChange *time.Time `json:"-" db:"last_password_change"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}

// UserCreateRequest represents the data needed to register a new user
type UserCreateRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Age       int      `json:"age"`
	Password  string   `json:"password"`
	Role      UserRole `json:"role"`
}

// UserUpdateRequest represents the fields a user update may change
type UserUpdateRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Age       int      `json:"age"`
	Role      UserRole `json:"role"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates user registration data
func (req *UserCreateRequest) Validate() error {
	if err := validateUserName(req.FirstName, "first name"); err != nil {
		return err
	}

	if err := validateUserName(req.LastName, "last name"); err != nil {
		return err
	}

	if err := ValidateEmail(req.Email); err != nil {
		return err
	}

	if err := validateUserAge(req.Age); err != nil {
		return err
	}

	if err := ValidatePassword(req.Password); err != nil {
		return err
	}

	if req.Role != "" {
		if err := validateUserRole(req.Role); err != nil {
			return err
		}
	}

	return nil
}

// Validate validates user update data
func (req *UserUpdateRequest) Validate() error {
	if req.FirstName != "" {
		if err := validateUserName(req.FirstName, "first name"); err != nil {
			return err
		}
	}

	if req.LastName != "" {
		if err := validateUserName(req.LastName, "last name"); err != nil {
			return err
		}
	}

	if req.Age != 0 {
		if err := validateUserAge(req.Age); err != nil {
			return err
		}
	}

	if req.Role != "" {
		if err := validateUserRole(req.Role); err != nil {
			return err
		}
	}

	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}

	return nil
}

// ValidatePassword enforces the minimum password strength
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	return nil
}

func validateUserName(name, field string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(field + " is required")
	}

	if len(strings.TrimSpace(name)) < 2 {
		return errors.New(field + " must be at least 2 characters")
	}

	return nil
}

func validateUserAge(age int) error {
	if age < 0 {
		return errors.New("age cannot be negative")
	}

	if age > 120 {
		return errors.New("age cannot exceed 120")
	}

	return nil
}

func validateUserRole(role UserRole) error {
	switch role {
	case RoleUser, RoleAdmin, RolePremium:
		return nil
	default:
		return errors.New("invalid role")
	}
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageProducts returns true if the user may create catalog products
func (u *User) CanManageProducts() bool {
	return u.Role == RoleAdmin || u.Role == RolePremium
}
