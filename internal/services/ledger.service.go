package services

import (
	"context"
	"time"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/pkg/logger"
	"github.com/ekhata-app/ekhata/pkg/prom"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	ListForCustomer(ctx context.Context, customerID string) ([]*model.Transaction, error)
	ListForCustomerWithProducts(ctx context.Context, customerID string) ([]*model.TransactionWithProducts, error)
	TotalPurchases(ctx context.Context, customerID string) (float64, error)
	TotalPayments(ctx context.Context, customerID string) (float64, error)
}

type ProductRepository interface {
	CreateMany(ctx context.Context, transactionID string, items []model.ProductInput) ([]*model.Product, error)
	ListForTransaction(ctx context.Context, transactionID string) ([]*model.Product, error)
}

type BalanceRepository interface {
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	AdjustPending(ctx context.Context, id string, delta float64) error
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// LedgerService records purchases and payments. Each record is one atomic
// unit: the transaction row, its product rows and the customer's cached
// balance commit together or not at all.
type LedgerService struct {
	transactionRepo TransactionRepository
	productRepo     ProductRepository
	customerRepo    BalanceRepository
}

func NewLedgerService(transactionRepo TransactionRepository, productRepo ProductRepository, customerRepo BalanceRepository) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
	}
}

// Record validates and persists one ledger entry. For a purchase with line
// items the amount is derived from the products; a caller-supplied amount
// is ignored in that case. Validation happens before any write; the writes
// themselves run inside one database transaction.
func (s *LedgerService) Record(ctx context.Context, p model.TransactionRecordRequest) (*model.Transaction, error) {
	started := time.Now()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	amount := p.Amount
	itemized := p.Type == model.TransactionPurchase && len(p.Products) > 0
	if itemized {
		amount = model.ProductsTotal(p.Products)
	}
	if amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	// Existence check up front so an unknown customer surfaces as not-found
	// rather than a constraint violation mid-write.
	if _, err := s.customerRepo.GetByID(ctx, p.CustomerID); err != nil {
		return nil, err
	}

	date := p.Date
	if date == "" {
		date = time.Now().Format(model.DateLayout)
	}

	delta := amount
	if p.Type == model.TransactionPayment {
		delta = -amount
	}

	var created *model.Transaction
	err := s.customerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		txn, err := s.transactionRepo.Create(ctx, &model.Transaction{
			CustomerID:  p.CustomerID,
			Type:        p.Type,
			Amount:      amount,
			Description: p.Description,
			Date:        date,
		})
		if err != nil {
			return err
		}

		if itemized {
			if _, err := s.productRepo.CreateMany(ctx, txn.ID, p.Products); err != nil {
				return err
			}
		}

		if err := s.customerRepo.AdjustPending(ctx, p.CustomerID, delta); err != nil {
			return err
		}

		created = txn
		return nil
	})
	if err != nil {
		logger.Error("failed to record transaction",
			"customer_id", p.CustomerID,
			"type", p.Type,
			"amount", amount,
			"error", err,
		)
		return nil, err
	}

	prom.IncCounterVec(prom.SystemLedger, prom.MetricTransactionsRecorded, string(p.Type))
	prom.ObserveHistogramVec(prom.SystemLedger, prom.MetricRecordDuration, time.Since(started).Seconds(), string(p.Type))

	logger.Info("transaction recorded",
		"transaction_id", created.ID,
		"customer_id", created.CustomerID,
		"type", created.Type,
		"amount", created.Amount,
		"date", created.Date,
	)
	return created, nil
}

func (s *LedgerService) ListForCustomer(ctx context.Context, customerID string) ([]*model.Transaction, error) {
	return s.transactionRepo.ListForCustomer(ctx, customerID)
}

func (s *LedgerService) ListForCustomerWithProducts(ctx context.Context, customerID string) ([]*model.TransactionWithProducts, error) {
	return s.transactionRepo.ListForCustomerWithProducts(ctx, customerID)
}

// Totals is the detail-screen reconciliation view: purchases minus payments
// must equal the customer's cached pending balance.
func (s *LedgerService) Totals(ctx context.Context, customerID string) (*model.CustomerTotals, error) {
	purchases, err := s.transactionRepo.TotalPurchases(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.transactionRepo.TotalPayments(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &model.CustomerTotals{TotalPurchases: purchases, TotalPayments: payments}, nil
}
