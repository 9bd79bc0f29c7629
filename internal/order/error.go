package order

import "errors"

var (
	// -- Validation & Input --
	ErrMissingItems        = errors.New("items and shipping address are required")
	ErrProductUnavailable  = errors.New("product not found or inactive")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidAmount       = errors.New("order amounts are not valid numbers")
	ErrInvalidStatusUpdate = errors.New("invalid status update")
	ErrInvalidPaging       = errors.New("page and limit must be positive")

	// -- Resource State --
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotCancellable = errors.New("order cannot be cancelled")
)
