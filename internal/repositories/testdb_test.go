package repositories

import (
	"database/sql"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB opens a fresh in-memory database with the full schema applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.NewConnection(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())

	return db.DB
}

func createTestUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	user, err := NewUserRepository(db).Create(&models.UserCreateRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Age:       30,
	}, "$2a$10$fakehashfakehashfakehashfakehashfakehashfakehashfake")
	require.NoError(t, err)

	return user
}

func createTestProduct(t *testing.T, db *sql.DB, code string, price, stock int) *models.Product {
	t.Helper()

	product, err := NewProductRepository(db).Create(&models.ProductCreateRequest{
		Title:       "Product " + code,
		Description: "A test product",
		Code:        code,
		Price:       price,
		Stock:       stock,
		Category:    "test",
	}, nil)
	require.NoError(t, err)

	return product
}
