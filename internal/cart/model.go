package cart

import "time"

// Item is one row of a user's cart, joined with the live product fields the
// storefront renders.
type Item struct {
	ProductID int64     `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

type AddParams struct {
	UserID    int64
	ProductID int64
	Quantity  int
}
