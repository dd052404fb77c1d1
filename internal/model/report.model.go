package model

// PeriodSummary aggregates all transactions whose business date falls in an
// inclusive date range, across every customer. Archived customers' history
// still counts here: the queries run over the transaction log, not the
// customer listing.
type PeriodSummary struct {
	TotalPurchases   float64 `json:"total_purchases"`
	TotalPayments    float64 `json:"total_payments"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int64   `json:"transaction_count"`
}

// DaySummary is one day's purchase and payment sums. Breakdown results are
// sparse: days without transactions are omitted, not zero-filled.
type DaySummary struct {
	Date      string  `json:"date"`
	Purchases float64 `json:"purchases"`
	Payments  float64 `json:"payments"`
}

// TopDebtor ranks an active customer by positive pending balance.
type TopDebtor struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	PhotoURI     string  `json:"photo_uri,omitempty"`
	TotalPending float64 `json:"total_pending"`
}
