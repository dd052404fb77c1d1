package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/internal/repository"
	"github.com/ekhata-app/ekhata/pkg/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s := store.New(db)
	require.NoError(t, s.AutoMigrate(repository.Entities()...))
	return s
}

type ledgerFixture struct {
	store        *store.Store
	customers    *repository.CustomerRepository
	transactions *repository.TransactionRepository
	products     *repository.ProductRepository
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	s := setupTestStore(t)
	return &ledgerFixture{
		store:        s,
		customers:    repository.NewCustomerRepository(s),
		transactions: repository.NewTransactionRepository(s),
		products:     repository.NewProductRepository(s),
	}
}

// failingProductRepo explodes on insert so the surrounding database
// transaction must roll back.
type failingProductRepo struct {
	*repository.ProductRepository
}

func (f *failingProductRepo) CreateMany(ctx context.Context, transactionID string, items []model.ProductInput) ([]*model.Product, error) {
	return nil, errors.New("product insert failed")
}

type failingBalanceRepo struct {
	*repository.CustomerRepository
}

func (f *failingBalanceRepo) AdjustPending(ctx context.Context, id string, delta float64) error {
	return errors.New("balance update failed")
}

func TestLedgerService_Record_RollsBackOnProductFailure(t *testing.T) {
	ctx := context.Background()
	fx := newLedgerFixture(t)

	customer, err := fx.customers.Create(ctx, &model.Customer{Name: "Ram"})
	require.NoError(t, err)

	svc := NewLedgerService(fx.transactions, &failingProductRepo{fx.products}, fx.customers)

	_, err = svc.Record(ctx, model.TransactionRecordRequest{
		CustomerID: customer.ID,
		Type:       model.TransactionPurchase,
		Products:   []model.ProductInput{{ProductName: "Rice", Amount: 150}},
	})
	require.Error(t, err)

	// the transaction row written before the failure must be gone
	listed, err := fx.transactions.ListForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	got, err := fx.customers.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), got.TotalPending)
}

func TestLedgerService_Record_RollsBackOnBalanceFailure(t *testing.T) {
	ctx := context.Background()
	fx := newLedgerFixture(t)

	customer, err := fx.customers.Create(ctx, &model.Customer{Name: "Sita"})
	require.NoError(t, err)

	svc := NewLedgerService(fx.transactions, fx.products, &failingBalanceRepo{fx.customers})

	_, err = svc.Record(ctx, model.TransactionRecordRequest{
		CustomerID: customer.ID,
		Type:       model.TransactionPurchase,
		Amount:     250,
	})
	require.Error(t, err)

	listed, err := fx.transactions.ListForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestLedgerService_Record_BalanceMatchesTotals(t *testing.T) {
	ctx := context.Background()
	fx := newLedgerFixture(t)
	svc := NewLedgerService(fx.transactions, fx.products, fx.customers)

	customer, err := fx.customers.Create(ctx, &model.Customer{Name: "Ram"})
	require.NoError(t, err)

	entries := []model.TransactionRecordRequest{
		{CustomerID: customer.ID, Type: model.TransactionPurchase, Amount: 300, Date: "2024-01-10"},
		{CustomerID: customer.ID, Type: model.TransactionPayment, Amount: 120, Date: "2024-01-12"},
		{CustomerID: customer.ID, Type: model.TransactionPurchase, Amount: 80, Date: "2024-01-15"},
		{CustomerID: customer.ID, Type: model.TransactionPayment, Amount: 60, Date: "2024-01-20"},
	}
	for _, e := range entries {
		_, err := svc.Record(ctx, e)
		require.NoError(t, err)
	}

	totals, err := svc.Totals(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(380), totals.TotalPurchases)
	assert.Equal(t, float64(180), totals.TotalPayments)

	got, err := fx.customers.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, totals.TotalPurchases-totals.TotalPayments, got.TotalPending)
}

func TestLedgerService_PurchaseThenPayment(t *testing.T) {
	ctx := context.Background()
	fx := newLedgerFixture(t)
	svc := NewLedgerService(fx.transactions, fx.products, fx.customers)
	customerSvc := NewCustomerService(fx.customers)

	customer, err := customerSvc.Create(ctx, model.CustomerRequest{Name: "Ram"})
	require.NoError(t, err)

	purchase, err := svc.Record(ctx, model.TransactionRecordRequest{
		CustomerID: customer.ID,
		Type:       model.TransactionPurchase,
		Date:       "2024-03-01",
		Products: []model.ProductInput{
			{ProductName: "Rice", Amount: 150},
			{ProductName: "Oil", Amount: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(250), purchase.Amount)

	_, err = svc.Record(ctx, model.TransactionRecordRequest{
		CustomerID: customer.ID,
		Type:       model.TransactionPayment,
		Amount:     100,
		Date:       "2024-03-05",
	})
	require.NoError(t, err)

	got, err := customerSvc.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(150), got.TotalPending)

	history, err := svc.ListForCustomerWithProducts(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// most recent first
	assert.Equal(t, model.TransactionPayment, history[0].Type)
	assert.Empty(t, history[0].Products)

	assert.Equal(t, model.TransactionPurchase, history[1].Type)
	require.Len(t, history[1].Products, 2)
	assert.Equal(t, "Rice", history[1].Products[0].ProductName)
	assert.Equal(t, "Oil", history[1].Products[1].ProductName)
}
