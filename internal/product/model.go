package product

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	Image         string    `json:"image"`
	Images        []string  `json:"images"`
	Badge         *string   `json:"badge,omitempty"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	InStock       bool      `json:"inStock"`
	StockCount    int       `json:"stockCount"`
	Description   string    `json:"description"`
	Features      []string  `json:"features"`
	Colors        []string  `json:"colors"`
	Sizes         []string  `json:"sizes"`
	FreeShipping  bool      `json:"freeShipping"`
	EstimatedDays *string   `json:"estimatedDays,omitempty"`
	Sales         int       `json:"sales"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListOptions filters and paginates the catalog listing.
type ListOptions struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// CreateParams holds the fields accepted on product creation.
type CreateParams struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Badge         *string  `json:"badge"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand"`
	StockCount    int      `json:"stockCount"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	FreeShipping  bool     `json:"freeShipping"`
	EstimatedDays *string  `json:"estimatedDays"`
}

// UpdateParams is a partial update. Nil pointers leave the stored value
// untouched; present pointers always apply, including zero values.
type UpdateParams struct {
	Name          *string   `json:"name"`
	Price         *float64  `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Image         *string   `json:"image"`
	Images        *[]string `json:"images"`
	Badge         *string   `json:"badge"`
	Category      *string   `json:"category"`
	Brand         *string   `json:"brand"`
	StockCount    *int      `json:"stockCount"`
	Description   *string   `json:"description"`
	Features      *[]string `json:"features"`
	Colors        *[]string `json:"colors"`
	Sizes         *[]string `json:"sizes"`
	FreeShipping  *bool     `json:"freeShipping"`
	EstimatedDays *string   `json:"estimatedDays"`
}
