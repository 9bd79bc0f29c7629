package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingFields   = errors.New("name, price, category, brand and stockCount are required")
	ErrInvalidPaging   = errors.New("page and limit must be positive")
)
