package handlers

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// respondServiceError maps domain errors onto HTTP statuses. Anything not in
// the taxonomy is a store-level failure and surfaces as a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCartNotFound),
		errors.Is(err, models.ErrTicketNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrDuplicateCode):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrSamePassword),
		errors.Is(err, models.ErrInvalidResetToken),
		isValidationError(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func isValidationError(err error) bool {
	return strings.HasPrefix(err.Error(), "validation failed")
}
