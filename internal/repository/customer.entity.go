package repository

import (
	"time"

	"github.com/ekhata-app/ekhata/internal/model"
)

type CustomerEntity struct {
	ID           string     `db:"id"            gorm:"primaryKey;column:id"`
	Name         string     `db:"name"          gorm:"column:name;not null;index"`
	Phone        *string    `db:"phone"         gorm:"column:phone"`
	PhotoURI     *string    `db:"photo_uri"     gorm:"column:photo_uri"`
	TotalPending float64    `db:"total_pending" gorm:"column:total_pending;not null;default:0"`
	CreatedAt    time.Time  `db:"created_at"    gorm:"column:created_at;not null"`
	UpdatedAt    time.Time  `db:"updated_at"    gorm:"column:updated_at;not null"`
	DeletedAt    *time.Time `db:"deleted_at"    gorm:"column:deleted_at;index"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:           e.ID,
		Name:         e.Name,
		Phone:        fromNullable(e.Phone),
		PhotoURI:     fromNullable(e.PhotoURI),
		TotalPending: e.TotalPending,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		DeletedAt:    e.DeletedAt,
	}
}

func toCustomerModels(entities []*CustomerEntity) []*model.Customer {
	models := make([]*model.Customer, len(entities))
	for i, e := range entities {
		models[i] = toCustomerModel(e)
	}
	return models
}

// Optional text columns are stored as NULL rather than empty strings, same
// as the rest of the schema's nullable fields.
func toNullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
