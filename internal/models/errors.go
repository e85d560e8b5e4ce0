package models

import "errors"

// Common errors used throughout the application
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartNotFound        = errors.New("cart not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrDuplicateCode       = errors.New("product code already exists")
	ErrDuplicateTicketCode = errors.New("ticket code already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrSamePassword        = errors.New("new password must differ from the current one")
	ErrForbidden           = errors.New("insufficient permissions")
)
