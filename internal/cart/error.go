package cart

import "errors"

var (
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrProductNotFound   = errors.New("product not found or inactive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartItemNotFound  = errors.New("cart item not found")
)
