package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item is a snapshot of the product at purchase time. Prices never change
// after the order is placed.
type Item struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type ShippingAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a ShippingAddress) Complete() bool {
	return a.Name != "" && a.Street != "" && a.City != "" &&
		a.State != "" && a.ZipCode != "" && a.Country != ""
}

// TrackingUpdate is one entry of the append-only tracking log.
type TrackingUpdate struct {
	Status   Status    `json:"status"`
	Date     time.Time `json:"date"`
	Location *string   `json:"location,omitempty"`
}

type Order struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"userId"`
	OrderNumber     string           `json:"orderNumber"`
	Status          Status           `json:"status"`
	Items           []Item           `json:"items"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	Subtotal        float64          `json:"subtotal"`
	Discount        float64          `json:"discount"`
	Shipping        float64          `json:"shipping"`
	Tax             float64          `json:"tax"`
	Total           float64          `json:"total"`
	TrackingNumber  *string          `json:"trackingNumber,omitempty"`
	TrackingUpdates []TrackingUpdate `json:"trackingUpdates"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// RequestedItem is what the checkout request carries per line.
type RequestedItem struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

type PlaceParams struct {
	UserID          int64
	Items           []RequestedItem
	ShippingAddress ShippingAddress
	Discount        float64
}

// AdminUpdateParams is the admin status/tracking mutation. Nil fields are
// left untouched.
type AdminUpdateParams struct {
	Status         *string `json:"status"`
	TrackingNumber *string `json:"trackingNumber"`
	Location       *string `json:"location"`
}

// ListResult is one page of orders.
type ListResult struct {
	Orders     []*Order `json:"orders"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}
