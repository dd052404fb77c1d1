// Package statement renders a customer's account statement as a standalone
// HTML document. It is a read-only consumer of the ledger: the UI layer
// turns the HTML into a PDF or a share-out, which is out of scope here.
package statement

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/ekhata-app/ekhata/internal/model"
)

type row struct {
	Date      string
	Label     string
	Products  []*model.Product
	IsPayment bool
	Amount    string
}

type data struct {
	Name           string
	Phone          string
	GeneratedAt    string
	TotalPurchases string
	TotalPayments  string
	Pending        string
	HasPending     bool
	Rows           []row
}

// Render builds the statement for one customer from their full history,
// most recent entry first. Totals are recomputed from the listed entries so
// the document is self-consistent even if it is generated mid-write.
func Render(customer *model.Customer, transactions []*model.TransactionWithProducts) ([]byte, error) {
	d := data{
		Name:        customer.Name,
		Phone:       customer.Phone,
		GeneratedAt: time.Now().Format("2 January 2006"),
		Pending:     rupees(customer.TotalPending),
		HasPending:  customer.TotalPending > 0,
	}

	var purchases, payments float64
	for _, txn := range transactions {
		r := row{
			Date:   txn.Date,
			Amount: rupees(txn.Amount),
		}
		switch txn.Type {
		case model.TransactionPayment:
			payments += txn.Amount
			r.IsPayment = true
			r.Label = "Payment received"
		default:
			purchases += txn.Amount
			r.Products = txn.Products
			r.Label = txn.Description
			if r.Label == "" {
				r.Label = "Purchase"
			}
		}
		d.Rows = append(d.Rows, r)
	}
	d.TotalPurchases = rupees(purchases)
	d.TotalPayments = rupees(payments)

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rupees(v float64) string {
	return fmt.Sprintf("₹%.0f", v)
}

var tmpl = template.Must(template.New("statement").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Segoe UI', Tahoma, sans-serif; color: #1E293B; padding: 24px; font-size: 13px; }
    .header { background: #3B7DD8; color: #fff; padding: 28px 24px; border-radius: 12px; margin-bottom: 20px; text-align: center; }
    .customer-info { display: flex; justify-content: space-between; background: #F8FAFC; border: 1px solid #E2E8F0; border-radius: 10px; padding: 16px 20px; margin-bottom: 16px; }
    .customer-name { font-size: 18px; font-weight: 700; }
    .summary { display: flex; gap: 10px; margin-bottom: 20px; }
    .summary-card { flex: 1; border-radius: 10px; padding: 14px; text-align: center; }
    .summary-card.purchases { background: #FEE2E2; }
    .summary-card.payments { background: #DCFCE7; }
    .summary-card.pending { background: {{if .HasPending}}#FEF3C7{{else}}#DCFCE7{{end}}; }
    table { width: 100%; border-collapse: collapse; }
    th { background: #F1F5F9; font-size: 11px; text-transform: uppercase; padding: 10px 8px; text-align: left; }
    td { padding: 10px 8px; border-bottom: 1px solid #E2E8F0; }
    td.purchase { color: #E11D48; }
    td.payment { color: #16A34A; }
    .product-line { font-size: 11px; color: #64748B; }
  </style>
</head>
<body>
  <div class="header"><h1>eKhata</h1><div class="tagline">Account Statement</div></div>
  <div class="customer-info">
    <div>
      <div class="customer-name">{{.Name}}</div>
      {{if .Phone}}<div class="customer-phone">{{.Phone}}</div>{{end}}
    </div>
    <div class="customer-date">{{.GeneratedAt}}</div>
  </div>
  <div class="summary">
    <div class="summary-card purchases"><div class="summary-label">Purchases</div><div class="summary-value">{{.TotalPurchases}}</div></div>
    <div class="summary-card payments"><div class="summary-label">Payments</div><div class="summary-value">{{.TotalPayments}}</div></div>
    <div class="summary-card pending"><div class="summary-label">Pending</div><div class="summary-value">{{.Pending}}</div></div>
  </div>
  <table>
    <tr><th>Date</th><th>Details</th><th>Items</th><th>Purchase</th><th>Payment</th></tr>
    {{range .Rows}}
    <tr>
      <td>{{.Date}}</td>
      <td>{{.Label}}</td>
      <td>{{range .Products}}<div class="product-line">{{.ProductName}}{{if .Quantity}} ({{.Quantity}}){{end}} &#8377;{{printf "%.0f" .Amount}}</div>{{end}}</td>
      {{if .IsPayment}}<td></td><td class="payment">- {{.Amount}}</td>{{else}}<td class="purchase">+ {{.Amount}}</td><td></td>{{end}}
    </tr>
    {{end}}
  </table>
</body>
</html>
`))
