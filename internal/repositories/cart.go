package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"storefront/internal/models"
)

// CartRepository handles cart data operations
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreateByUser returns the user's cart, creating an empty one if missing
func (r *CartRepository) GetOrCreateByUser(userID int) (*models.Cart, error) {
	cart, err := r.GetByUser(userID)
	if err == nil {
		return cart, nil
	}
	if err != models.ErrCartNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = r.db.Exec(
		"INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, ?, ?)",
		userID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return r.GetByUser(userID)
}

// GetByUser retrieves a user's cart with its lines in insertion order
func (r *CartRepository) GetByUser(userID int) (*models.Cart, error) {
	cart := &models.Cart{}
	err := r.db.QueryRow(`
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = ?`, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	items, err := r.loadItems(cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return cart, nil
}

// AddItem adds quantity of a product to the cart, merging with an existing line
func (r *CartRepository) AddItem(cartID, productID, quantity int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = quantity + excluded.quantity`,
		cartID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return r.touch(cartID)
}

// UpdateItemQuantity sets the quantity of an existing cart line
func (r *CartRepository) UpdateItemQuantity(cartID, productID, quantity int) error {
	result, err := r.db.Exec(`
		UPDATE cart_items
		SET quantity = ?
		WHERE cart_id = ? AND product_id = ?`,
		quantity, cartID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}

	return r.touch(cartID)
}

// RemoveItem deletes one product line from the cart
func (r *CartRepository) RemoveItem(cartID, productID int) error {
	result, err := r.db.Exec(
		"DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?",
		cartID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}

	return r.touch(cartID)
}

// Clear removes every line from the cart
func (r *CartRepository) Clear(cartID int) error {
	if _, err := r.db.Exec("DELETE FROM cart_items WHERE cart_id = ?", cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return r.touch(cartID)
}

// ReplaceItems rewrites the cart to contain exactly the given lines
func (r *CartRepository) ReplaceItems(cartID int, items []models.CartItem) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cart_items WHERE cart_id = ?", cartID); err != nil {
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	for _, item := range items {
		if _, err := tx.Exec(
			"INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)",
			cartID, item.ProductID, item.Quantity,
		); err != nil {
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}

	if _, err := tx.Exec(
		"UPDATE carts SET updated_at = ? WHERE id = ?",
		time.Now().UTC(), cartID,
	); err != nil {
		return fmt.Errorf("failed to update cart timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart rewrite: %w", err)
	}

	return nil
}

func (r *CartRepository) loadItems(cartID int) ([]models.CartItem, error) {
	rows, err := r.db.Query(`
		SELECT product_id, quantity
		FROM cart_items
		WHERE cart_id = ?
		ORDER BY id ASC`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

func (r *CartRepository) touch(cartID int) error {
	if _, err := r.db.Exec(
		"UPDATE carts SET updated_at = ? WHERE id = ?",
		time.Now().UTC(), cartID,
	); err != nil {
		return fmt.Errorf("failed to update cart timestamp: %w", err)
	}
	return nil
}
