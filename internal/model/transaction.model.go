package model

import (
	"errors"
	"time"
)

// DateLayout is the business-date format. Dates are compared as strings;
// ISO dates order lexicographically, which the reporting queries rely on.
const DateLayout = "2006-01-02"

type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionPayment  TransactionType = "payment"
)

var (
	ErrInvalidType    = errors.New("transaction type must be purchase or payment")
	ErrInvalidAmount  = errors.New("transaction amount must be positive")
	ErrInvalidDate    = errors.New("transaction date must be YYYY-MM-DD")
	ErrInvalidProduct = errors.New("product line items need a name and a positive amount")
)

// Transaction is a single ledger entry. Date is the business day it belongs
// to (back-datable), CreatedAt is the audit timestamp. Entries are immutable
// once recorded; they only disappear when their customer is permanently
// deleted.
type Transaction struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionWithProducts annotates a transaction with its line items.
// Payments always carry an empty slice.
type TransactionWithProducts struct {
	Transaction
	Products []*Product `json:"products"`
}

// TransactionRecordRequest is the input for recording a purchase or payment.
// For a purchase with line items the amount is derived from the products and
// any supplied Amount is ignored.
type TransactionRecordRequest struct {
	CustomerID  string          `json:"customer_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Products    []ProductInput  `json:"products"`
}

func (p TransactionRecordRequest) Validate() error {
	if p.CustomerID == "" {
		return errors.New("customer_id is required")
	}
	if p.Type != TransactionPurchase && p.Type != TransactionPayment {
		return ErrInvalidType
	}
	if p.Date != "" {
		if _, err := time.Parse(DateLayout, p.Date); err != nil {
			return ErrInvalidDate
		}
	}
	for _, item := range p.Products {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CustomerTotals is the per-customer reconciliation view: summed with sign,
// the two figures must equal the customer's cached TotalPending.
type CustomerTotals struct {
	TotalPurchases float64 `json:"total_purchases"`
	TotalPayments  float64 `json:"total_payments"`
}
