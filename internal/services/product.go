package services

import (
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles catalog business logic
type ProductService struct {
	productRepo ProductRepository
}

// ProductRepository interface for catalog data operations
type ProductRepository interface {
	Create(req *models.ProductCreateRequest, ownerID *int) (*models.Product, error)
	GetByID(id int) (*models.Product, error)
	CodeExists(code string) (bool, error)
	List(filters repositories.ProductSearchFilters) ([]*models.Product, int, error)
	Update(id int, req *models.ProductUpdateRequest) (*models.Product, error)
	Delete(id int) error
}

// NewProductService creates a new product service
func NewProductService(productRepo ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProduct creates a product. Products created by premium users belong
// to them; admin-created products are system products (no owner).
func (s *ProductService) CreateProduct(req *models.ProductCreateRequest, creator *models.User) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !creator.CanManageProducts() {
		return nil, models.ErrForbidden
	}

	exists, err := s.productRepo.CodeExists(req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check product code: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateCode
	}

	var ownerID *int
	if creator.Role == models.RolePremium {
		id := creator.ID
		ownerID = &id
	}

	return s.productRepo.Create(req, ownerID)
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetAllProducts retrieves products with pagination
func (s *ProductService) GetAllProducts(filters repositories.ProductSearchFilters) ([]*models.Product, *Pagination, error) {
	products, total, err := s.productRepo.List(filters)
	if err != nil {
		return nil, nil, err
	}

	return products, NewPagination(filters.Limit, filters.Offset, total), nil
}

// UpdateProduct updates a product. Admins may update any product; premium
// users only their own.
func (s *ProductService) UpdateProduct(id int, req *models.ProductUpdateRequest, user *models.User) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwnership(product, user); err != nil {
		return nil, err
	}

	if req.Code != nil && models.NormalizedCode(*req.Code) != product.Code {
		exists, err := s.productRepo.CodeExists(*req.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to check product code: %w", err)
		}
		if exists {
			return nil, models.ErrDuplicateCode
		}
	}

	return s.productRepo.Update(id, req)
}

// DeleteProduct removes a product under the same ownership rules as update
func (s *ProductService) DeleteProduct(id int, user *models.User) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.authorizeOwnership(product, user); err != nil {
		return err
	}

	return s.productRepo.Delete(id)
}

func (s *ProductService) authorizeOwnership(product *models.Product, user *models.User) error {
	if user.IsAdmin() {
		return nil
	}
	if !user.CanManageProducts() {
		return models.ErrForbidden
	}
	if !product.OwnedBy(user.ID) {
		return models.ErrForbidden
	}
	return nil
}

// Pagination describes one page of a listing
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination derives page numbers from limit/offset and a total count
func NewPagination(limit, offset, total int) *Pagination {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	totalPages := (total + limit - 1) / limit
	return &Pagination{
		Page:       offset/limit + 1,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
