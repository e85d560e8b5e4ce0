package services

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(req *models.ProductCreateRequest, ownerID *int) (*models.Product, error) {
	args := m.Called(req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) CodeExists(code string) (bool, error) {
	args := m.Called(code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(filters repositories.ProductSearchFilters) ([]*models.Product, int, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) Update(id int, req *models.ProductUpdateRequest) (*models.Product, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func validProductRequest() *models.ProductCreateRequest {
	return &models.ProductCreateRequest{
		Title:       "Mechanical Keyboard",
		Description: "A keyboard",
		Code:        "KB-001",
		Price:       12999,
		Stock:       10,
		Category:    "peripherals",
	}
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("admin creates a system product", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		req := validProductRequest()
		repo.On("CodeExists", req.Code).Return(false, nil)
		repo.On("Create", req, (*int)(nil)).Return(&models.Product{ID: 1, Code: "KB-001"}, nil)

		product, err := service.CreateProduct(req, &models.User{ID: 9, Role: models.RoleAdmin})

		require.NoError(t, err)
		assert.Nil(t, product.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("premium user owns what they create", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		req := validProductRequest()
		repo.On("CodeExists", req.Code).Return(false, nil)
		repo.On("Create", req, mock.MatchedBy(func(ownerID *int) bool {
			return ownerID != nil && *ownerID == 5
		})).Return(&models.Product{ID: 1}, nil)

		_, err := service.CreateProduct(req, &models.User{ID: 5, Role: models.RolePremium})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("plain users may not create products", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		product, err := service.CreateProduct(validProductRequest(), &models.User{ID: 2, Role: models.RoleUser})

		assert.Nil(t, product)
		assert.ErrorIs(t, err, models.ErrForbidden)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := NewProductService(repo)

		req := validProductRequest()
		repo.On("CodeExists", req.Code).Return(true, nil)

		product, err := service.CreateProduct(req, &models.User{ID: 9, Role: models.RoleAdmin})

		assert.Nil(t, product)
		assert.ErrorIs(t, err, models.ErrDuplicateCode)
	})
}

func TestProductService_Ownership(t *testing.T) {
	ownerID := 5
	ownedProduct := &models.Product{ID: 1, Code: "KB-001", OwnerID: &ownerID}
	systemProduct := &models.Product{ID: 2, Code: "KB-002"}

	tests := []struct {
		name          string
		product       *models.Product
		user          *models.User
		expectedError error
	}{
		{
			name:    "admin may touch any product",
			product: ownedProduct,
			user:    &models.User{ID: 99, Role: models.RoleAdmin},
		},
		{
			name:    "premium owner may touch their product",
			product: ownedProduct,
			user:    &models.User{ID: 5, Role: models.RolePremium},
		},
		{
			name:          "premium non-owner is forbidden",
			product:       ownedProduct,
			user:          &models.User{ID: 6, Role: models.RolePremium},
			expectedError: models.ErrForbidden,
		},
		{
			name:          "premium user cannot touch system products",
			product:       systemProduct,
			user:          &models.User{ID: 5, Role: models.RolePremium},
			expectedError: models.ErrForbidden,
		},
		{
			name:          "plain user is forbidden",
			product:       ownedProduct,
			user:          &models.User{ID: 5, Role: models.RoleUser},
			expectedError: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProductRepository)
			service := NewProductService(repo)

			repo.On("GetByID", tt.product.ID).Return(tt.product, nil)
			if tt.expectedError == nil {
				repo.On("Delete", tt.product.ID).Return(nil)
			}

			err := service.DeleteProduct(tt.product.ID, tt.user)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "Delete", mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductService_UpdateProduct_CodeChange(t *testing.T) {
	repo := new(MockProductRepository)
	service := NewProductService(repo)

	admin := &models.User{ID: 9, Role: models.RoleAdmin}
	existing := &models.Product{ID: 1, Code: "KB-001"}
	newCode := "KB-002"
	req := &models.ProductUpdateRequest{Code: &newCode}

	repo.On("GetByID", 1).Return(existing, nil)
	repo.On("CodeExists", newCode).Return(true, nil)

	product, err := service.UpdateProduct(1, req, admin)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, models.ErrDuplicateCode)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		limit, offset      int
		total              int
		expectedPage       int
		expectedTotalPages int
	}{
		{"first page", 10, 0, 35, 1, 4},
		{"second page", 10, 10, 35, 2, 4},
		{"exact fit", 10, 20, 30, 3, 3},
		{"empty result", 10, 0, 0, 1, 0},
		{"defaults applied", 0, -5, 25, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.limit, tt.offset, tt.total)
			assert.Equal(t, tt.expectedPage, p.Page)
			assert.Equal(t, tt.expectedTotalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}
