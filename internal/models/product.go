package models

import (
	"errors"
	"strings"
	"time"
)

// Product represents a catalog product
type Product struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Code        string    `json:"code" db:"code"`
	Price       int       `json:"price" db:"price"` // Price in cents
	Status      bool      `json:"status" db:"status"`
	Stock       int       `json:"stock" db:"stock"`
	Category    string    `json:"category" db:"category"`
	Thumbnails  []string  `json:"thumbnails" db:"thumbnails"`
	OwnerID     *int      `json:"owner_id,omitempty" db:"owner_id"` // nil = system product
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductCreateRequest represents the data needed to create a product
type ProductCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Price       int      `json:"price"`
	Status      *bool    `json:"status"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// ProductUpdateRequest represents the fields a product update may change.
// Pointer fields distinguish "not sent" from zero values.
type ProductUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Code        *string  `json:"code"`
	Price       *int     `json:"price"`
	Status      *bool    `json:"status"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Thumbnails  []string `json:"thumbnails"`
}

// Validate validates product creation data
func (req *ProductCreateRequest) Validate() error {
	if err := validateProductTitle(req.Title); err != nil {
		return err
	}

	if strings.TrimSpace(req.Description) == "" {
		return errors.New("description is required")
	}

	if err := validateProductCode(req.Code); err != nil {
		return err
	}

	if err := validateProductPrice(req.Price); err != nil {
		return err
	}

	if err := validateProductStock(req.Stock); err != nil {
		return err
	}

	if strings.TrimSpace(req.Category) == "" {
		return errors.New("category is required")
	}

	return nil
}

// Validate validates product update data
func (req *ProductUpdateRequest) Validate() error {
	if req.Title != nil {
		if err := validateProductTitle(*req.Title); err != nil {
			return err
		}
	}

	if req.Code != nil {
		if err := validateProductCode(*req.Code); err != nil {
			return err
		}
	}

	if req.Price != nil {
		if err := validateProductPrice(*req.Price); err != nil {
			return err
		}
	}

	if req.Stock != nil {
		if err := validateProductStock(*req.Stock); err != nil {
			return err
		}
	}

	return nil
}

func validateProductTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title is required")
	}

	if len(strings.TrimSpace(title)) < 3 {
		return errors.New("title must be at least 3 characters")
	}

	return nil
}

func validateProductCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("code is required")
	}

	return nil
}

func validateProductPrice(price int) error {
	if price < 0 {
		return errors.New("price cannot be negative")
	}

	return nil
}

func validateProductStock(stock int) error {
	if stock < 0 {
		return errors.New("stock cannot be negative")
	}

	return nil
}

// NormalizedCode returns the product code in its canonical uppercase form
func NormalizedCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PriceInCurrency returns the price in the main currency unit
func (p *Product) PriceInCurrency() float64 {
	return float64(p.Price) / 100.0
}

// OwnedBy returns true if the product belongs to the given user
func (p *Product) OwnedBy(userID int) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}
