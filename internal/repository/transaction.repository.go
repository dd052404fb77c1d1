package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/pkg/store"
)

type TransactionRepository struct {
	*store.Store
}

func NewTransactionRepository(db *store.Store) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(txn)
	entity.ID = uuid.NewString()
	entity.CreatedAt = time.Now()

	if err := r.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

// ListForCustomer returns the customer's full history, most recent business
// day first, ties broken by audit timestamp.
func (r *TransactionRepository) ListForCustomer(ctx context.Context, customerID string) ([]*model.Transaction, error) {
	var entities []*TransactionEntity
	err := r.DB(ctx).
		Where("customer_id = ?", customerID).
		Order("date DESC, created_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(entities), nil
}

// ListForCustomerWithProducts annotates each transaction with its line
// items, fetched in one IN query rather than per row. Payments get an empty
// slice.
func (r *TransactionRepository) ListForCustomerWithProducts(ctx context.Context, customerID string) ([]*model.TransactionWithProducts, error) {
	txns, err := r.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return []*model.TransactionWithProducts{}, nil
	}

	ids := make([]string, len(txns))
	for i, txn := range txns {
		ids[i] = txn.ID
	}

	var productEntities []*ProductEntity
	err = r.DB(ctx).
		Where("transaction_id IN ?", ids).
		Order("created_at ASC").
		Find(&productEntities).
		Error
	if err != nil {
		return nil, err
	}

	byTransaction := make(map[string][]*model.Product, len(txns))
	for _, e := range productEntities {
		byTransaction[e.TransactionID] = append(byTransaction[e.TransactionID], toProductModel(e))
	}

	result := make([]*model.TransactionWithProducts, len(txns))
	for i, txn := range txns {
		products := byTransaction[txn.ID]
		if products == nil {
			products = []*model.Product{}
		}
		result[i] = &model.TransactionWithProducts{
			Transaction: *txn,
			Products:    products,
		}
	}
	return result, nil
}

func (r *TransactionRepository) TotalPurchases(ctx context.Context, customerID string) (float64, error) {
	return r.sumByType(ctx, customerID, model.TransactionPurchase)
}

func (r *TransactionRepository) TotalPayments(ctx context.Context, customerID string) (float64, error) {
	return r.sumByType(ctx, customerID, model.TransactionPayment)
}

func (r *TransactionRepository) sumByType(ctx context.Context, customerID string, t model.TransactionType) (float64, error) {
	var total float64
	err := r.DB(ctx).
		Model(&TransactionEntity{}).
		Where("customer_id = ? AND type = ?", customerID, string(t)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).
		Error
	return total, err
}
