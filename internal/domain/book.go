package domain

import "time"

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusSold        BookStatus = "sold"
	BookStatusUnavailable BookStatus = "unavailable"
)

type Book struct {
	ID          int32      `json:"id"`
	VendorID    int32      `json:"vendor_id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	ISBN        string     `json:"isbn,omitempty"`
	Category    string     `json:"category,omitempty"`
	Condition   string     `json:"condition,omitempty"`
	Price       float64    `json:"price"`
	RentalPrice float64    `json:"rental_price,omitempty"`
	Quantity    int32      `json:"quantity"`
	Status      BookStatus `json:"status"`
	Description string     `json:"description,omitempty"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}
