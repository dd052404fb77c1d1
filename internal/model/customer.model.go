package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName = errors.New("customer name is required")
)

// Customer is the root aggregate of the ledger. TotalPending is the cached
// running balance: the sum of purchase amounts minus the sum of payment
// amounts, maintained incrementally inside the same database transaction
// that records each entry.
type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	PhotoURI     string     `json:"photo_uri,omitempty"`
	TotalPending float64    `json:"total_pending"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"` // set = archived
}

func (c *Customer) Archived() bool {
	return c.DeletedAt != nil
}

// CustomerRequest is the input for creating or updating a customer.
type CustomerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	PhotoURI string `json:"photo_uri"`
}

func (p *CustomerRequest) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrEmptyName
	}
	return nil
}
