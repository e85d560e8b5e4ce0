package repositories

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	t.Run("code is stored uppercase", func(t *testing.T) {
		product, err := repo.Create(&models.ProductCreateRequest{
			Title:       "Keyboard",
			Description: "A keyboard",
			Code:        "kb-001",
			Price:       12999,
			Stock:       10,
			Category:    "peripherals",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "KB-001", product.Code)
		assert.True(t, product.Status)
		assert.Empty(t, product.Thumbnails)
	})

	t.Run("duplicate code is rejected case-insensitively", func(t *testing.T) {
		_, err := repo.Create(&models.ProductCreateRequest{
			Title:       "Another Keyboard",
			Description: "Another keyboard",
			Code:        "KB-001",
			Price:       9999,
			Stock:       5,
			Category:    "peripherals",
		}, nil)

		assert.ErrorIs(t, err, models.ErrDuplicateCode)
	})

	t.Run("thumbnails round trip", func(t *testing.T) {
		product, err := repo.Create(&models.ProductCreateRequest{
			Title:       "Monitor",
			Description: "A monitor",
			Code:        "MON-001",
			Price:       29900,
			Stock:       3,
			Category:    "displays",
			Thumbnails:  []string{"/img/front.jpg", "/img/back.jpg"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"/img/front.jpg", "/img/back.jpg"}, product.Thumbnails)
	})
}

func TestProductRepository_DecrementStock(t *testing.T) {
	t.Run("decrements when enough stock is available", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductRepository(db)
		product := createTestProduct(t, db, "P-001", 1000, 5)

		require.NoError(t, repo.DecrementStock(product.ID, 2))

		got, err := repo.GetByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Stock)
	})

	t.Run("refuses to go below zero and leaves stock untouched", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductRepository(db)
		product := createTestProduct(t, db, "P-001", 1000, 1)

		err := repo.DecrementStock(product.ID, 3)
		assert.ErrorIs(t, err, models.ErrInsufficientStock)

		got, err := repo.GetByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Stock)
	})

	t.Run("can take stock exactly to zero", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewProductRepository(db)
		product := createTestProduct(t, db, "P-001", 1000, 4)

		require.NoError(t, repo.DecrementStock(product.ID, 4))

		got, err := repo.GetByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)

		// Nothing left to take
		assert.ErrorIs(t, repo.DecrementStock(product.ID, 1), models.ErrInsufficientStock)
	})
}

func TestProductRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	inactive := false
	createTestProduct(t, db, "A-001", 100, 1)
	createTestProduct(t, db, "A-002", 200, 1)
	_, err := repo.Create(&models.ProductCreateRequest{
		Title:       "Hidden",
		Description: "Inactive product",
		Code:        "B-001",
		Price:       300,
		Stock:       1,
		Category:    "other",
		Status:      &inactive,
	}, nil)
	require.NoError(t, err)

	t.Run("unfiltered listing counts everything", func(t *testing.T) {
		products, total, err := repo.List(ProductSearchFilters{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, products, 3)
	})

	t.Run("category filter", func(t *testing.T) {
		products, total, err := repo.List(ProductSearchFilters{Category: "other", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, products, 1)
		assert.Equal(t, "B-001", products[0].Code)
	})

	t.Run("status filter", func(t *testing.T) {
		active := true
		_, total, err := repo.List(ProductSearchFilters{Status: &active, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("pagination window", func(t *testing.T) {
		products, total, err := repo.List(ProductSearchFilters{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, products, 1)
	})
}

func TestProductRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "P-001", 1000, 5)

	t.Run("only sent fields change", func(t *testing.T) {
		newPrice := 2000
		updated, err := repo.Update(product.ID, &models.ProductUpdateRequest{Price: &newPrice})

		require.NoError(t, err)
		assert.Equal(t, 2000, updated.Price)
		assert.Equal(t, product.Title, updated.Title)
		assert.Equal(t, product.Stock, updated.Stock)
	})

	t.Run("unknown product", func(t *testing.T) {
		newPrice := 100
		_, err := repo.Update(999, &models.ProductUpdateRequest{Price: &newPrice})
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})
}

func TestProductRepository_GetByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	createTestProduct(t, db, "P-001", 1000, 5)

	product, err := repo.GetByCode("p-001")
	require.NoError(t, err)
	assert.Equal(t, "P-001", product.Code)

	_, err = repo.GetByCode("NOPE")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}
