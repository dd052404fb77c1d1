package services

import (
	"context"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/pkg/logger"
)

type CustomerRepository interface {
	Create(ctx context.Context, m *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ListActive(ctx context.Context) ([]*model.Customer, error)
	ListArchived(ctx context.Context) ([]*model.Customer, error)
	CountArchived(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, m *model.Customer) (*model.Customer, error)
	Archive(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentlyDelete(ctx context.Context, id string) error
}

type CustomerService struct {
	customerRepo CustomerRepository
}

func NewCustomerService(customerRepo CustomerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
	}
}

func (s *CustomerService) Create(ctx context.Context, p model.CustomerRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.customerRepo.Create(ctx, &model.Customer{
		Name:     p.Name,
		Phone:    p.Phone,
		PhotoURI: p.PhotoURI,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("customer created", "customer_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, p model.CustomerRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return s.customerRepo.Update(ctx, id, &model.Customer{
		Name:     p.Name,
		Phone:    p.Phone,
		PhotoURI: p.PhotoURI,
	})
}

func (s *CustomerService) Get(ctx context.Context, id string) (*model.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *CustomerService) ListActive(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.ListActive(ctx)
}

func (s *CustomerService) ListArchived(ctx context.Context) ([]*model.Customer, error) {
	return s.customerRepo.ListArchived(ctx)
}

func (s *CustomerService) CountArchived(ctx context.Context) (int64, error) {
	return s.customerRepo.CountArchived(ctx)
}

func (s *CustomerService) Archive(ctx context.Context, id string) error {
	if err := s.customerRepo.Archive(ctx, id); err != nil {
		return err
	}
	logger.Info("customer archived", "customer_id", id)
	return nil
}

func (s *CustomerService) Restore(ctx context.Context, id string) error {
	if err := s.customerRepo.Restore(ctx, id); err != nil {
		return err
	}
	logger.Info("customer restored", "customer_id", id)
	return nil
}

// PermanentlyDelete is irreversible: the customer's whole transaction and
// product history goes with the row. The two-step confirmation lives at the
// UI boundary; this layer just makes the operation distinct from Archive.
func (s *CustomerService) PermanentlyDelete(ctx context.Context, id string) error {
	if err := s.customerRepo.PermanentlyDelete(ctx, id); err != nil {
		return err
	}
	logger.Warn("customer permanently deleted", "customer_id", id)
	return nil
}
