package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// CartHandler serves the cart endpoints, including purchase settlement
type CartHandler struct {
	cartService     *services.CartService
	purchaseService *services.PurchaseService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *services.CartService, purchaseService *services.PurchaseService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		purchaseService: purchaseService,
	}
}

// Get handles GET /api/carts
func (h *CartHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	cart, err := h.cartService.GetCart(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "cart retrieved", cart)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// AddProduct handles POST /api/carts/products/:pid
func (h *CartHandler) AddProduct(c *gin.Context) {
	user := middleware.CurrentUser(c)

	productID, err := strconv.Atoi(c.Param("pid"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	req := quantityRequest{Quantity: 1}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	cart, err := h.cartService.AddProduct(user.ID, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "product added to cart", cart)
}

// UpdateQuantity handles PUT /api/carts/products/:pid
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	user := middleware.CurrentUser(c)

	productID, err := strconv.Atoi(c.Param("pid"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.cartService.UpdateQuantity(user.ID, productID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "quantity updated", cart)
}

// RemoveProduct handles DELETE /api/carts/products/:pid
func (h *CartHandler) RemoveProduct(c *gin.Context) {
	user := middleware.CurrentUser(c)

	productID, err := strconv.Atoi(c.Param("pid"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	cart, err := h.cartService.RemoveProduct(user.ID, productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "product removed from cart", cart)
}

// Clear handles DELETE /api/carts
func (h *CartHandler) Clear(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.cartService.ClearCart(user.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "cart cleared", nil)
}

// Purchase handles POST /api/carts/purchase
// @Summary Settle the caller's cart into a purchase ticket
// @Description Satisfiable lines become one ticket; unavailable lines stay in
// @Description the cart and are listed in the response.
// @Tags carts
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} Response "empty cart"
// @Router /api/carts/purchase [post]
func (h *CartHandler) Purchase(c *gin.Context) {
	user := middleware.CurrentUser(c)

	result, err := h.purchaseService.Settle(user.ID, user.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// A partial settlement is still a success; the unavailable lines are
	// reported, never silently dropped.
	respondSuccess(c, http.StatusOK, result.Message, gin.H{
		"ticket":              result.Ticket,
		"unavailableProducts": result.Unavailable,
	})
}
