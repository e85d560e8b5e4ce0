package repositories

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_GetOrCreateByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "user@example.com")

	cart, err := repo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)
	assert.True(t, cart.IsEmpty())

	// A second call returns the same cart
	again, err := repo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartRepository_AddItem(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "user@example.com")
	product := createTestProduct(t, db, "P-001", 1000, 10)

	cart, err := repo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.AddItem(cart.ID, product.ID, 2))

	t.Run("adding the same product merges quantities", func(t *testing.T) {
		require.NoError(t, repo.AddItem(cart.ID, product.ID, 3))

		cart, err := repo.GetByUser(user.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("lines keep insertion order", func(t *testing.T) {
		second := createTestProduct(t, db, "P-002", 500, 10)
		require.NoError(t, repo.AddItem(cart.ID, second.ID, 1))

		cart, err := repo.GetByUser(user.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, product.ID, cart.Items[0].ProductID)
		assert.Equal(t, second.ID, cart.Items[1].ProductID)
	})
}

func TestCartRepository_UpdateItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "user@example.com")
	product := createTestProduct(t, db, "P-001", 1000, 10)

	cart, err := repo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, product.ID, 2))

	require.NoError(t, repo.UpdateItemQuantity(cart.ID, product.ID, 7))

	got, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Items[0].Quantity)

	t.Run("product not in the cart", func(t *testing.T) {
		err := repo.UpdateItemQuantity(cart.ID, 999, 1)
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})
}

func TestCartRepository_RemoveItemAndClear(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "user@example.com")
	first := createTestProduct(t, db, "P-001", 1000, 10)
	second := createTestProduct(t, db, "P-002", 500, 10)

	cart, err := repo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, first.ID, 1))
	require.NoError(t, repo.AddItem(cart.ID, second.ID, 1))

	require.NoError(t, repo.RemoveItem(cart.ID, first.ID))

	got, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, second.ID, got.Items[0].ProductID)

	t.Run("removing an absent line fails", func(t *testing.T) {
		assert.ErrorIs(t, repo.RemoveItem(cart.ID, first.ID), models.ErrProductNotFound)
	})

	require.NoError(t, repo.Clear(cart.ID))

	got, err = repo.GetByUser(user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCartRepository_ReplaceItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCartRepository(db)
	user := createTestUser(t, db, "user@example.com")
	first := createTestProduct(t, db, "P-001", 1000, 10)
	second := createTestProduct(t, db, "P-002", 500, 10)

	cart, err := repo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, first.ID, 2))
	require.NoError(t, repo.AddItem(cart.ID, second.ID, 3))

	// Only the second line survives settlement
	require.NoError(t, repo.ReplaceItems(cart.ID, []models.CartItem{
		{ProductID: second.ID, Quantity: 3},
	}))

	got, err := repo.GetByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, second.ID, got.Items[0].ProductID)
	assert.Equal(t, 3, got.Items[0].Quantity)

	t.Run("replacing with nothing empties the cart", func(t *testing.T) {
		require.NoError(t, repo.ReplaceItems(cart.ID, nil))

		got, err := repo.GetByUser(user.ID)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})
}

func TestCartRepository_DeletingUserCascades(t *testing.T) {
	db := setupTestDB(t)
	cartRepo := NewCartRepository(db)
	userRepo := NewUserRepository(db)
	user := createTestUser(t, db, "user@example.com")
	product := createTestProduct(t, db, "P-001", 1000, 10)

	cart, err := cartRepo.GetOrCreateByUser(user.ID)
	require.NoError(t, err)
	require.NoError(t, cartRepo.AddItem(cart.ID, product.ID, 1))

	require.NoError(t, userRepo.Delete(user.ID))

	_, err = cartRepo.GetByUser(user.ID)
	assert.ErrorIs(t, err, models.ErrCartNotFound)
}
