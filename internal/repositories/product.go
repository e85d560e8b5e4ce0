package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
)

// ProductRepository handles catalog data operations
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductSearchFilters represents filters for catalog listing
type ProductSearchFilters struct {
	Category string // Filter by category
	Status   *bool  // Filter by active flag
	Limit    int    // Number of results to return
	Offset   int    // Number of results to skip
}

const productColumns = `id, title, description, code, price, status, stock,
	category, thumbnails, owner_id, created_at, updated_at`

// Create inserts a new product
func (r *ProductRepository) Create(req *models.ProductCreateRequest, ownerID *int) (*models.Product, error) {
	status := true
	if req.Status != nil {
		status = *req.Status
	}

	thumbnails, err := marshalThumbnails(req.Thumbnails)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := r.db.Exec(`
		INSERT INTO products (title, description, code, price, status, stock, category, thumbnails, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(req.Title),
		strings.TrimSpace(req.Description),
		models.NormalizedCode(req.Code),
		req.Price,
		status,
		req.Stock,
		strings.TrimSpace(req.Category),
		thumbnails,
		ownerID,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: products.code") {
			return nil, models.ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted product id: %w", err)
	}

	return r.GetByID(int(id))
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = ?", productColumns)
	return r.scanProduct(r.db.QueryRow(query, id))
}

// GetByCode retrieves a product by its unique code
func (r *ProductRepository) GetByCode(code string) (*models.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE code = ?", productColumns)
	return r.scanProduct(r.db.QueryRow(query, models.NormalizedCode(code)))
}

// CodeExists reports whether a product with the given code exists
func (r *ProductRepository) CodeExists(code string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM products WHERE code = ?",
		models.NormalizedCode(code),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check code existence: %w", err)
	}
	return count > 0, nil
}

// List retrieves products matching the filters, plus the total match count
func (r *ProductRepository) List(filters ProductSearchFilters) ([]*models.Product, int, error) {
	var conditions []string
	var args []interface{}

	if filters.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filters.Category)
	}

	if filters.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filters.Status)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	if filters.Limit <= 0 {
		filters.Limit = 10
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		%s
		ORDER BY created_at ASC
		LIMIT ? OFFSET ?`, productColumns, whereClause)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// Update applies the non-nil fields of the request to a product
func (r *ProductRepository) Update(id int, req *models.ProductUpdateRequest) (*models.Product, error) {
	var sets []string
	var args []interface{}

	if req.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, strings.TrimSpace(*req.Description))
	}
	if req.Code != nil {
		sets = append(sets, "code = ?")
		args = append(args, models.NormalizedCode(*req.Code))
	}
	if req.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *req.Price)
	}
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}
	if req.Stock != nil {
		sets = append(sets, "stock = ?")
		args = append(args, *req.Stock)
	}
	if req.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, strings.TrimSpace(*req.Category))
	}
	if req.Thumbnails != nil {
		thumbnails, err := marshalThumbnails(req.Thumbnails)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "thumbnails = ?")
		args = append(args, thumbnails)
	}

	if len(sets) == 0 {
		return r.GetByID(id)
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.Exec(query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: products.code") {
			return nil, models.ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, models.ErrProductNotFound
	}

	return r.GetByID(id)
}

// Delete removes a product
func (r *ProductRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically decrements stock if at least quantity is
// available. The stock >= ? guard makes the check and the decrement a single
// statement, so concurrent settlements cannot drive stock negative.
func (r *ProductRepository) DecrementStock(id, quantity int) error {
	result, err := r.db.Exec(`
		UPDATE products
		SET stock = stock - ?, updated_at = ?
		WHERE id = ? AND stock >= ?`,
		quantity, time.Now().UTC(), id, quantity,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrInsufficientStock
	}

	return nil
}

func (r *ProductRepository) scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var thumbnails string
	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Code,
		&product.Price,
		&product.Status,
		&product.Stock,
		&product.Category,
		&thumbnails,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if err := json.Unmarshal([]byte(thumbnails), &product.Thumbnails); err != nil {
		return nil, fmt.Errorf("failed to decode thumbnails: %w", err)
	}

	return product, nil
}

func marshalThumbnails(thumbnails []string) (string, error) {
	if thumbnails == nil {
		thumbnails = []string{}
	}
	encoded, err := json.Marshal(thumbnails)
	if err != nil {
		return "", fmt.Errorf("failed to encode thumbnails: %w", err)
	}
	return string(encoded), nil
}
