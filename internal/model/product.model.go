package model

import (
	"strings"
	"time"
)

// Product is a purchase line item. Only purchase transactions own products;
// line items are created in bulk with their transaction and never edited.
type Product struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductName   string    `json:"product_name"`
	Quantity      string    `json:"quantity,omitempty"` // free text, e.g. "2kg"
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductInput is a not-yet-persisted line item.
type ProductInput struct {
	ProductName string  `json:"product_name"`
	Quantity    string  `json:"quantity"`
	Amount      float64 `json:"amount"`
}

func (p ProductInput) Validate() error {
	if strings.TrimSpace(p.ProductName) == "" || p.Amount <= 0 {
		return ErrInvalidProduct
	}
	return nil
}

// ProductsTotal sums the amounts of a list of line items. A purchase's
// amount is always this sum when line items are present.
func ProductsTotal(items []ProductInput) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}
