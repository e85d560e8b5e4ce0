package services

import (
	"fmt"

	"storefront/internal/models"
)

// CartService handles cart business logic
type CartService struct {
	cartRepo    CartMutator
	productRepo ProductReader
}

// CartMutator is the full cart access the cart API needs
type CartMutator interface {
	GetOrCreateByUser(userID int) (*models.Cart, error)
	GetByUser(userID int) (*models.Cart, error)
	AddItem(cartID, productID, quantity int) error
	UpdateItemQuantity(cartID, productID, quantity int) error
	RemoveItem(cartID, productID int) error
	Clear(cartID int) error
}

// ProductReader is the read-only catalog access the cart API needs
type ProductReader interface {
	GetByID(id int) (*models.Product, error)
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartMutator, productRepo ProductReader) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart shaped with product details and totals,
// creating an empty cart on first access
func (s *CartService) GetCart(userID int) (*models.CartDetail, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	detail := &models.CartDetail{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]models.CartItemDetail, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if err == models.ErrProductNotFound {
				// A product deleted after it was carted still shows as a
				// line; settlement will classify it unavailable.
				detail.Items = append(detail.Items, models.CartItemDetail{
					Quantity: item.Quantity,
				})
				continue
			}
			return nil, fmt.Errorf("failed to load product %d: %w", item.ProductID, err)
		}

		subtotal := product.Price * item.Quantity
		detail.Items = append(detail.Items, models.CartItemDetail{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		detail.Total += subtotal
	}

	return detail, nil
}

// AddProduct adds quantity of a product to the user's cart after checking
// that the product exists and has that much stock right now
func (s *CartService) AddProduct(userID, productID, quantity int) (*models.CartDetail, error) {
	if err := models.ValidateQuantity(quantity); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, models.ErrInsufficientStock
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddItem(cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

// UpdateQuantity sets the quantity of a product already in the cart
func (s *CartService) UpdateQuantity(userID, productID, quantity int) (*models.CartDetail, error) {
	if err := models.ValidateQuantity(quantity); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, models.ErrInsufficientStock
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.UpdateItemQuantity(cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

// RemoveProduct deletes one product line from the user's cart
func (s *CartService) RemoveProduct(userID, productID int) (*models.CartDetail, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.RemoveItem(cart.ID, productID); err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

// ClearCart removes every line from the user's cart
func (s *CartService) ClearCart(userID int) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}

	return s.cartRepo.Clear(cart.ID)
}
