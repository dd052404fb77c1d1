package repository

import (
	"time"

	"github.com/ekhata-app/ekhata/internal/model"
)

type ProductEntity struct {
	ID            string             `db:"id"             gorm:"primaryKey;column:id"`
	TransactionID string             `db:"transaction_id" gorm:"column:transaction_id;not null;index"`
	Transaction   *TransactionEntity `db:"-"              gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
	ProductName   string             `db:"product_name"   gorm:"column:product_name;not null"`
	Quantity      *string            `db:"quantity"       gorm:"column:quantity"`
	Amount        float64            `db:"amount"         gorm:"column:amount;not null"`
	CreatedAt     time.Time          `db:"created_at"     gorm:"column:created_at;not null"`
}

func (ProductEntity) TableName() string {
	return "products"
}

func toProductModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}
	return &model.Product{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		ProductName:   e.ProductName,
		Quantity:      fromNullable(e.Quantity),
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt,
	}
}

func toProductModels(entities []*ProductEntity) []*model.Product {
	models := make([]*model.Product, len(entities))
	for i, e := range entities {
		models[i] = toProductModel(e)
	}
	return models
}

// Entities lists every table for schema migration, in FK dependency order.
func Entities() []any {
	return []any{&CustomerEntity{}, &TransactionEntity{}, &ProductEntity{}}
}
