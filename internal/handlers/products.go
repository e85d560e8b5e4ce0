package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the catalog endpoints
type ProductHandler struct {
	productService *services.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /api/products
// @Summary List catalog products with pagination
// @Tags products
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Param category query string false "filter by category"
// @Success 200 {object} Response
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filters := repositories.ProductSearchFilters{
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	if statusParam := c.Query("status"); statusParam != "" {
		status, err := strconv.ParseBool(statusParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid status filter")
			return
		}
		filters.Status = &status
	}

	products, pagination, err := h.productService.GetAllProducts(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "products retrieved", gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "product retrieved", product)
}

// Create handles POST /api/products (admin or premium)
func (h *ProductHandler) Create(c *gin.Context) {
	var req models.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(&req, middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "product created", product)
}

// Update handles PUT /api/products/:id (owner or admin)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req models.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(id, &req, middleware.CurrentUser(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "product updated", product)
}

// Delete handles DELETE /api/products/:id (owner or admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.DeleteProduct(id, middleware.CurrentUser(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "product deleted", nil)
}
