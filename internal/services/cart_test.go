package services

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartMutator is a mock implementation of CartMutator
type MockCartMutator struct {
	mock.Mock
}

func (m *MockCartMutator) GetOrCreateByUser(userID int) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartMutator) GetByUser(userID int) (*models.Cart, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartMutator) AddItem(cartID, productID, quantity int) error {
	args := m.Called(cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartMutator) UpdateItemQuantity(cartID, productID, quantity int) error {
	args := m.Called(cartID, productID, quantity)
	return args.Error(0)
}

func (m *MockCartMutator) RemoveItem(cartID, productID int) error {
	args := m.Called(cartID, productID)
	return args.Error(0)
}

func (m *MockCartMutator) Clear(cartID int) error {
	args := m.Called(cartID)
	return args.Error(0)
}

// ProductReader is covered by MockProductStore from purchase_test.go

func TestCartService_GetCart(t *testing.T) {
	t.Run("lines are joined with products and totalled", func(t *testing.T) {
		cartRepo := new(MockCartMutator)
		productRepo := new(MockProductStore)
		service := NewCartService(cartRepo, productRepo)

		cartRepo.On("GetOrCreateByUser", 7).Return(&models.Cart{
			ID:     3,
			UserID: 7,
			Items: []models.CartItem{
				{ProductID: 1, Quantity: 2},
				{ProductID: 2, Quantity: 1},
			},
		}, nil)
		productRepo.On("GetByID", 1).Return(&models.Product{ID: 1, Price: 1500}, nil)
		productRepo.On("GetByID", 2).Return(&models.Product{ID: 2, Price: 700}, nil)

		detail, err := service.GetCart(7)

		require.NoError(t, err)
		assert.Equal(t, 3, detail.ID)
		require.Len(t, detail.Items, 2)
		assert.Equal(t, 3000, detail.Items[0].Subtotal)
		assert.Equal(t, 700, detail.Items[1].Subtotal)
		assert.Equal(t, 3700, detail.Total)
	})

	t.Run("deleted product keeps its line without a subtotal", func(t *testing.T) {
		cartRepo := new(MockCartMutator)
		productRepo := new(MockProductStore)
		service := NewCartService(cartRepo, productRepo)

		cartRepo.On("GetOrCreateByUser", 7).Return(&models.Cart{
			ID:     3,
			UserID: 7,
			Items:  []models.CartItem{{ProductID: 99, Quantity: 2}},
		}, nil)
		productRepo.On("GetByID", 99).Return(nil, models.ErrProductNotFound)

		detail, err := service.GetCart(7)

		require.NoError(t, err)
		require.Len(t, detail.Items, 1)
		assert.Nil(t, detail.Items[0].Product)
		assert.Equal(t, 0, detail.Total)
	})
}

func TestCartService_AddProduct(t *testing.T) {
	t.Run("adds after stock check", func(t *testing.T) {
		cartRepo := new(MockCartMutator)
		productRepo := new(MockProductStore)
		service := NewCartService(cartRepo, productRepo)

		productRepo.On("GetByID", 1).Return(&models.Product{ID: 1, Price: 1000, Stock: 5}, nil)
		cartRepo.On("GetOrCreateByUser", 7).Return(&models.Cart{
			ID:     3,
			UserID: 7,
			Items:  []models.CartItem{{ProductID: 1, Quantity: 2}},
		}, nil)
		cartRepo.On("AddItem", 3, 1, 2).Return(nil)

		detail, err := service.AddProduct(7, 1, 2)

		require.NoError(t, err)
		assert.Equal(t, 2000, detail.Total)
		cartRepo.AssertExpectations(t)
	})

	t.Run("more than current stock is refused", func(t *testing.T) {
		cartRepo := new(MockCartMutator)
		productRepo := new(MockProductStore)
		service := NewCartService(cartRepo, productRepo)

		productRepo.On("GetByID", 1).Return(&models.Product{ID: 1, Stock: 1}, nil)

		detail, err := service.AddProduct(7, 1, 5)

		assert.Nil(t, detail)
		assert.ErrorIs(t, err, models.ErrInsufficientStock)
		cartRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product", func(t *testing.T) {
		cartRepo := new(MockCartMutator)
		productRepo := new(MockProductStore)
		service := NewCartService(cartRepo, productRepo)

		productRepo.On("GetByID", 99).Return(nil, models.ErrProductNotFound)

		detail, err := service.AddProduct(7, 99, 1)

		assert.Nil(t, detail)
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})

	t.Run("zero quantity is invalid", func(t *testing.T) {
		cartRepo := new(MockCartMutator)
		productRepo := new(MockProductStore)
		service := NewCartService(cartRepo, productRepo)

		detail, err := service.AddProduct(7, 1, 0)

		assert.Nil(t, detail)
		assert.Error(t, err)
		productRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartRepo := new(MockCartMutator)
	productRepo := new(MockProductStore)
	service := NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", 1).Return(&models.Product{ID: 1, Price: 1000, Stock: 5}, nil)
	cartRepo.On("GetByUser", 7).Return(&models.Cart{ID: 3, UserID: 7}, nil).Once()
	cartRepo.On("UpdateItemQuantity", 3, 1, 4).Return(nil)
	cartRepo.On("GetOrCreateByUser", 7).Return(&models.Cart{
		ID:     3,
		UserID: 7,
		Items:  []models.CartItem{{ProductID: 1, Quantity: 4}},
	}, nil)

	detail, err := service.UpdateQuantity(7, 1, 4)

	require.NoError(t, err)
	assert.Equal(t, 4000, detail.Total)
	cartRepo.AssertExpectations(t)
}

func TestCartService_ClearCart(t *testing.T) {
	cartRepo := new(MockCartMutator)
	service := NewCartService(cartRepo, new(MockProductStore))

	cartRepo.On("GetByUser", 7).Return(&models.Cart{ID: 3, UserID: 7}, nil)
	cartRepo.On("Clear", 3).Return(nil)

	err := service.ClearCart(7)

	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
}
