package repository

import (
	"context"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/pkg/store"
)

// ReportRepository serves the read-only dashboard aggregates. Date-range
// queries run over the transaction log directly, so history belonging to
// archived customers still counts; the customer-scoped rankings exclude
// archived rows.
type ReportRepository struct {
	*store.Store
}

func NewReportRepository(db *store.Store) *ReportRepository {
	return &ReportRepository{
		db,
	}
}

// PeriodSummary totals all transactions with a business date in
// [start, end] inclusive. Dates compare lexicographically as ISO strings.
func (r *ReportRepository) PeriodSummary(ctx context.Context, start, end string) (*model.PeriodSummary, error) {
	purchases, err := r.sumInRange(ctx, model.TransactionPurchase, start, end)
	if err != nil {
		return nil, err
	}

	payments, err := r.sumInRange(ctx, model.TransactionPayment, start, end)
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.DB(ctx).
		Model(&TransactionEntity{}).
		Where("date BETWEEN ? AND ?", start, end).
		Count(&count).
		Error
	if err != nil {
		return nil, err
	}

	return &model.PeriodSummary{
		TotalPurchases:   purchases,
		TotalPayments:    payments,
		NetBalance:       purchases - payments,
		TransactionCount: count,
	}, nil
}

// DailyBreakdown returns one entry per day that has at least one
// transaction, newest day first. Empty days are omitted.
func (r *ReportRepository) DailyBreakdown(ctx context.Context, start, end string) ([]*model.DaySummary, error) {
	var rows []struct {
		Date  string
		Type  string
		Total float64
	}
	err := r.DB(ctx).
		Model(&TransactionEntity{}).
		Select("date, type, COALESCE(SUM(amount), 0) AS total").
		Where("date BETWEEN ? AND ?", start, end).
		Group("date, type").
		Order("date DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	var days []*model.DaySummary
	byDate := make(map[string]*model.DaySummary)
	for _, row := range rows {
		day, ok := byDate[row.Date]
		if !ok {
			day = &model.DaySummary{Date: row.Date}
			byDate[row.Date] = day
			days = append(days, day)
		}
		if row.Type == string(model.TransactionPurchase) {
			day.Purchases = row.Total
		} else {
			day.Payments = row.Total
		}
	}
	return days, nil
}

// TopDebtors ranks active customers by positive pending balance. Zero and
// credit balances are excluded, as are archived customers.
func (r *ReportRepository) TopDebtors(ctx context.Context, limit int) ([]*model.TopDebtor, error) {
	var entities []*CustomerEntity
	err := r.DB(ctx).
		Where("total_pending > 0 AND deleted_at IS NULL").
		Order("total_pending DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	debtors := make([]*model.TopDebtor, len(entities))
	for i, e := range entities {
		debtors[i] = &model.TopDebtor{
			ID:           e.ID,
			Name:         e.Name,
			Phone:        fromNullable(e.Phone),
			PhotoURI:     fromNullable(e.PhotoURI),
			TotalPending: e.TotalPending,
		}
	}
	return debtors, nil
}

// TotalOutstanding sums positive pending balances of active customers.
// Credit balances never offset it: it is money owed to the shop, not a net
// position.
func (r *ReportRepository) TotalOutstanding(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB(ctx).
		Model(&CustomerEntity{}).
		Where("total_pending > 0 AND deleted_at IS NULL").
		Select("COALESCE(SUM(total_pending), 0)").
		Scan(&total).
		Error
	return total, err
}

func (r *ReportRepository) sumInRange(ctx context.Context, t model.TransactionType, start, end string) (float64, error) {
	var total float64
	err := r.DB(ctx).
		Model(&TransactionEntity{}).
		Where("type = ? AND date BETWEEN ? AND ?", string(t), start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).
		Error
	return total, err
}
