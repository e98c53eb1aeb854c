package utils

import "errors"

// Common application errors used across services.
var (
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrCategoryNotFound  = errors.New("CATEGORY_NOT_FOUND")
	ErrCategoryExists    = errors.New("CATEGORY_EXISTS")
	ErrCategoryProtected = errors.New("CATEGORY_PROTECTED")
	ErrInvalidProduct    = errors.New("INVALID_PRODUCT")
)
