package handlers

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the session endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/sessions/register
// @Summary Register a new account
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body models.UserCreateRequest true "registration data"
// @Success 201 {object} Response
// @Router /api/sessions/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Self-registration never grants elevated roles
	req.Role = models.RoleUser

	user, err := h.authService.Register(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "user registered", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/sessions/login
// @Summary Verify credentials and issue a JWT
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Router /api/sessions/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout handles POST /api/sessions/logout. Tokens are stateless, so this
// only acknowledges; clients drop the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	respondSuccess(c, http.StatusOK, "logged out", nil)
}

// Current handles GET /api/sessions/current
func (h *AuthHandler) Current(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	respondSuccess(c, http.StatusOK, "current user", user)
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset handles POST /api/sessions/request-password-reset.
// The response is identical whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req passwordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := models.ValidateEmail(req.Email); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "if the email exists, reset instructions have been sent", nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /api/sessions/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "password reset successful", nil)
}
