package models

import (
	"errors"
	"time"
)

// Cart represents a user's shopping cart. Each user owns exactly one cart.
type Cart struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Items     []CartItem `json:"products"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// CartItem is one (product, quantity) line inside a cart
type CartItem struct {
	ProductID int `json:"product_id" db:"product_id"`
	Quantity  int `json:"quantity" db:"quantity"`
}

// CartItemDetail is a cart line joined with its live product record
type CartItemDetail struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
	Subtotal int      `json:"subtotal"` // price * quantity, in cents
}

// CartDetail is a cart shaped for API responses, with product details and totals
type CartDetail struct {
	ID     int              `json:"id"`
	UserID int              `json:"user_id"`
	Items  []CartItemDetail `json:"products"`
	Total  int              `json:"total"` // in cents
}

// ValidateQuantity validates a cart line quantity
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}

	return nil
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Quantity returns the quantity of the given product in the cart, or 0
func (c *Cart) Quantity(productID int) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}
