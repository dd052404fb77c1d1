package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/pkg/store"
)

type ProductRepository struct {
	*store.Store
}

func NewProductRepository(db *store.Store) *ProductRepository {
	return &ProductRepository{
		db,
	}
}

func (r *ProductRepository) ListForTransaction(ctx context.Context, transactionID string) ([]*model.Product, error) {
	var entities []*ProductEntity
	err := r.DB(ctx).
		Where("transaction_id = ?", transactionID).
		Order("created_at ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toProductModels(entities), nil
}

// CreateMany bulk-inserts line items under one transaction. Input is
// validated at the ledger service boundary; this layer trusts it. Creation
// timestamps are staggered by a microsecond so list order matches insert
// order.
func (r *ProductRepository) CreateMany(ctx context.Context, transactionID string, items []model.ProductInput) ([]*model.Product, error) {
	if len(items) == 0 {
		return []*model.Product{}, nil
	}

	now := time.Now()
	entities := make([]*ProductEntity, len(items))
	for i, item := range items {
		entities[i] = &ProductEntity{
			ID:            uuid.NewString(),
			TransactionID: transactionID,
			ProductName:   item.ProductName,
			Quantity:      toNullable(item.Quantity),
			Amount:        item.Amount,
			CreatedAt:     now.Add(time.Duration(i) * time.Microsecond),
		}
	}

	if err := r.DB(ctx).Create(entities).Error; err != nil {
		return nil, err
	}

	return toProductModels(entities), nil
}

// Delete removes a single line item. Present for completeness; no current
// flow edits persisted line items.
func (r *ProductRepository) Delete(ctx context.Context, productID string) error {
	result := r.DB(ctx).Where("id = ?", productID).Delete(&ProductEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
