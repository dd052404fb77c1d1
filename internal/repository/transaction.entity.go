package repository

import (
	"time"

	"github.com/ekhata-app/ekhata/internal/model"
)

type TransactionEntity struct {
	ID          string          `db:"id"          gorm:"primaryKey;column:id"`
	CustomerID  string          `db:"customer_id" gorm:"column:customer_id;not null;index"`
	Customer    *CustomerEntity `db:"-"           gorm:"foreignKey:CustomerID;references:ID;constraint:OnDelete:CASCADE"`
	Type        string          `db:"type"        gorm:"column:type;not null;check:type IN ('purchase','payment')"`
	Amount      float64         `db:"amount"      gorm:"column:amount;not null"`
	Description *string         `db:"description" gorm:"column:description"`
	Date        string          `db:"date"        gorm:"column:date;not null;index"`
	CreatedAt   time.Time       `db:"created_at"  gorm:"column:created_at;not null"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		Type:        string(m.Type),
		Amount:      m.Amount,
		Description: toNullable(m.Description),
		Date:        m.Date,
		CreatedAt:   m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		CustomerID:  e.CustomerID,
		Type:        model.TransactionType(e.Type),
		Amount:      e.Amount,
		Description: fromNullable(e.Description),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
