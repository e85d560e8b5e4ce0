package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
)

// UserRepository handles user data operations
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, age, password_hash, role,
	reset_token, reset_token_expires, last_password_change, created_at, updated_at`

// Create inserts a new user with an already-hashed password
func (r *UserRepository) Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	now := time.Now().UTC()
	result, err := r.db.Exec(`
		INSERT INTO users (first_name, last_name, email, age, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		strings.ToLower(strings.TrimSpace(req.Email)),
		req.Age,
		passwordHash,
		role,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted user id: %w", err)
	}

	return r.GetByID(int(id))
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = ?", userColumns)
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by email, including the password hash
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = ?", userColumns)
	return r.scanUser(r.db.QueryRow(query, strings.ToLower(strings.TrimSpace(email))))
}

// EmailExists reports whether an account with the given email exists
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// List retrieves all users ordered by creation time
func (r *UserRepository) List() ([]*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users ORDER BY created_at ASC", userColumns)

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Update updates a user's profile fields
func (r *UserRepository) Update(id int, req *models.UserUpdateRequest) (*models.User, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	firstName := existing.FirstName
	if req.FirstName != "" {
		firstName = strings.TrimSpace(req.FirstName)
	}
	lastName := existing.LastName
	if req.LastName != "" {
		lastName = strings.TrimSpace(req.LastName)
	}
	age := existing.Age
	if req.Age != 0 {
		age = req.Age
	}
	role := existing.Role
	if req.Role != "" {
		role = req.Role
	}

	_, err = r.db.Exec(`
		UPDATE users
		SET first_name = ?, last_name = ?, age = ?, role = ?, updated_at = ?
		WHERE id = ?`,
		firstName, lastName, age, role, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetByID(id)
}

// UpdatePassword stores a new password hash and records the change time
func (r *UserRepository) UpdatePassword(id int, passwordHash string) error {
	now := time.Now().UTC()
	result, err := r.db.Exec(`
		UPDATE users
		SET password_hash = ?, last_password_change = ?, updated_at = ?
		WHERE id = ?`,
		passwordHash, now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// SetResetToken stores a password-reset token and its expiry on the user row
func (r *UserRepository) SetResetToken(id int, token string, expires time.Time) error {
	result, err := r.db.Exec(`
		UPDATE users
		SET reset_token = ?, reset_token_expires = ?, updated_at = ?
		WHERE id = ?`,
		token, expires.UTC(), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// GetByResetToken retrieves the user holding an unexpired reset token
func (r *UserRepository) GetByResetToken(token string) (*models.User, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM users WHERE reset_token = ? AND reset_token_expires > ?",
		userColumns,
	)

	user, err := r.scanUser(r.db.QueryRow(query, token, time.Now().UTC()))
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, models.ErrInvalidResetToken
		}
		return nil, err
	}
	return user, nil
}

// ClearResetToken removes a stored reset token so it cannot be reused
func (r *UserRepository) ClearResetToken(id int) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET reset_token = NULL, reset_token_expires = NULL, updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// Delete removes a user. The owned cart is removed by the schema's cascade.
func (r *UserRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *UserRepository) scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Age,
		&user.PasswordHash,
		&user.Role,
		&user.ResetToken,
		&user.ResetTokenExpires,
		&user.LastPasswordChange,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
