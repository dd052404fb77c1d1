package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/pkg/store"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProductNotFound     = errors.New("product not found")
)

type CustomerRepository struct {
	*store.Store
}

func NewCustomerRepository(db *store.Store) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, m *model.Customer) (*model.Customer, error) {
	now := time.Now()
	entity := &CustomerEntity{
		ID:           uuid.NewString(),
		Name:         m.Name,
		Phone:        toNullable(m.Phone),
		PhotoURI:     toNullable(m.PhotoURI),
		TotalPending: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := r.DB(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

// GetByID returns the customer regardless of archive state.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) ListActive(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.DB(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) ListArchived(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	err := r.DB(ctx).
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) CountArchived(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&CustomerEntity{}).
		Where("deleted_at IS NOT NULL").
		Count(&count).
		Error
	return count, err
}

// Update overwrites the mutable fields only. Balance and archive state are
// untouched.
func (r *CustomerRepository) Update(ctx context.Context, id string, m *model.Customer) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	entity.Name = m.Name
	entity.Phone = toNullable(m.Phone)
	entity.PhotoURI = toNullable(m.PhotoURI)
	entity.UpdatedAt = time.Now()

	if err := r.DB(ctx).Model(&entity).Updates(map[string]any{
		"name":       entity.Name,
		"phone":      entity.Phone,
		"photo_uri":  entity.PhotoURI,
		"updated_at": entity.UpdatedAt,
	}).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

// Archive soft-deletes the customer. Archiving an already-archived customer
// is a no-op success and keeps the original archive time.
func (r *CustomerRepository) Archive(ctx context.Context, id string) error {
	var entity CustomerEntity
	err := r.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	if entity.DeletedAt != nil {
		return nil
	}

	now := time.Now()
	return r.DB(ctx).Model(&CustomerEntity{}).Where("id = ?", id).Updates(map[string]any{
		"deleted_at": now,
		"updated_at": now,
	}).Error
}

// Restore clears the archive mark. Restoring an active customer is a no-op
// success.
func (r *CustomerRepository) Restore(ctx context.Context, id string) error {
	var entity CustomerEntity
	err := r.DB(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	if entity.DeletedAt == nil {
		return nil
	}

	return r.DB(ctx).Model(&CustomerEntity{}).Where("id = ?", id).Updates(map[string]any{
		"deleted_at": nil,
		"updated_at": time.Now(),
	}).Error
}

// PermanentlyDelete removes the customer row. The engine's cascade rules
// take the customer's transactions and their products down with it.
func (r *CustomerRepository) PermanentlyDelete(ctx context.Context, id string) error {
	result := r.DB(ctx).Where("id = ?", id).Delete(&CustomerEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// AdjustPending adds delta to the cached running balance. Only the ledger
// service calls this, inside the same transaction that records the entry;
// anywhere else would let the cache drift from the transaction log.
func (r *CustomerRepository) AdjustPending(ctx context.Context, id string, delta float64) error {
	result := r.DB(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_pending": gorm.Expr("total_pending + ?", delta),
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
