package e2e

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ekhata-app/ekhata/internal/handlers"
	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/internal/repository"
	"github.com/ekhata-app/ekhata/internal/services"
	"github.com/ekhata-app/ekhata/pkg/store"
)

type TestEnvironment struct {
	Store              *store.Store
	CustomerRepo       *repository.CustomerRepository
	TransactionRepo    *repository.TransactionRepository
	ProductRepo        *repository.ProductRepository
	ReportRepo         *repository.ReportRepository
	CustomerService    *services.CustomerService
	LedgerService      *services.LedgerService
	CustomerHandler    *handlers.CustomerHandler
	TransactionHandler *handlers.TransactionHandler
	ReportHandler      *handlers.ReportHandler
	StatementHandler   *handlers.StatementHandler
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s := store.New(db)
	require.NoError(t, s.AutoMigrate(repository.Entities()...))

	customerRepo := repository.NewCustomerRepository(s)
	transactionRepo := repository.NewTransactionRepository(s)
	productRepo := repository.NewProductRepository(s)
	reportRepo := repository.NewReportRepository(s)

	customerService := services.NewCustomerService(customerRepo)
	ledgerService := services.NewLedgerService(transactionRepo, productRepo, customerRepo)

	return &TestEnvironment{
		Store:              s,
		CustomerRepo:       customerRepo,
		TransactionRepo:    transactionRepo,
		ProductRepo:        productRepo,
		ReportRepo:         reportRepo,
		CustomerService:    customerService,
		LedgerService:      ledgerService,
		CustomerHandler:    handlers.NewCustomerHandler(customerService),
		TransactionHandler: handlers.NewTransactionHandler(ledgerService),
		ReportHandler:      handlers.NewReportHandler(reportRepo),
		StatementHandler:   handlers.NewStatementHandler(customerService, ledgerService),
	}
}

func newRequestCtx(method, path string, body []byte) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&fasthttp.Request{}, nil, nil)
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func TestE2E_LedgerFlow(t *testing.T) {
	env := setupE2EEnvironment(t)

	// create the customer through the HTTP surface
	body, _ := json.Marshal(model.CustomerRequest{Name: "Ram", Phone: "9800000000"})
	ctx := newRequestCtx("POST", "/api/v1/customers", body)
	env.CustomerHandler.CreateCustomer(ctx)
	require.Equal(t, 201, ctx.Response.StatusCode())

	var customer model.Customer
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &customer))
	require.NotEmpty(t, customer.ID)
	assert.Equal(t, float64(0), customer.TotalPending)

	// itemized purchase: amount derives from the line items
	body, _ = json.Marshal(map[string]any{
		"type": "purchase",
		"date": "2024-03-01",
		"products": []model.ProductInput{
			{ProductName: "Rice", Quantity: "5kg", Amount: 150},
			{ProductName: "Oil", Amount: 100},
		},
	})
	ctx = newRequestCtx("POST", "/api/v1/customers/"+customer.ID+"/transactions", body)
	ctx.SetUserValue("id", customer.ID)
	env.TransactionHandler.RecordTransaction(ctx)
	require.Equal(t, 201, ctx.Response.StatusCode())

	var purchase model.Transaction
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &purchase))
	assert.Equal(t, float64(250), purchase.Amount)

	// partial payment
	body, _ = json.Marshal(map[string]any{"type": "payment", "amount": 100, "date": "2024-03-05"})
	ctx = newRequestCtx("POST", "/api/v1/customers/"+customer.ID+"/transactions", body)
	ctx.SetUserValue("id", customer.ID)
	env.TransactionHandler.RecordTransaction(ctx)
	require.Equal(t, 201, ctx.Response.StatusCode())

	// pending balance settles at 150
	got, err := env.CustomerService.Get(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(150), got.TotalPending)

	// history is most recent first and the purchase keeps its two line items
	history, err := env.LedgerService.ListForCustomerWithProducts(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.TransactionPayment, history[0].Type)
	assert.Empty(t, history[0].Products)
	assert.Equal(t, model.TransactionPurchase, history[1].Type)
	assert.Len(t, history[1].Products, 2)

	// statement renders from the same history
	ctx = newRequestCtx("GET", "/api/v1/customers/"+customer.ID+"/statement", nil)
	ctx.SetUserValue("id", customer.ID)
	env.StatementHandler.GetStatement(ctx)
	require.Equal(t, 200, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), "Rice")
}

func TestE2E_ArchiveAndReports(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	ram, err := env.CustomerService.Create(ctx, model.CustomerRequest{Name: "Ram"})
	require.NoError(t, err)
	sita, err := env.CustomerService.Create(ctx, model.CustomerRequest{Name: "Sita"})
	require.NoError(t, err)

	_, err = env.LedgerService.Record(ctx, model.TransactionRecordRequest{
		CustomerID: ram.ID, Type: model.TransactionPurchase, Amount: 300, Date: "2024-01-10",
	})
	require.NoError(t, err)
	_, err = env.LedgerService.Record(ctx, model.TransactionRecordRequest{
		CustomerID: sita.ID, Type: model.TransactionPurchase, Amount: 500, Date: "2024-01-12",
	})
	require.NoError(t, err)

	require.NoError(t, env.CustomerService.Archive(ctx, sita.ID))

	// archived customers drop out of the debtor views
	debtors, err := env.ReportRepo.TopDebtors(ctx, 5)
	require.NoError(t, err)
	require.Len(t, debtors, 1)
	assert.Equal(t, ram.ID, debtors[0].ID)

	outstanding, err := env.ReportRepo.TotalOutstanding(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(300), outstanding)

	// but their history still counts in date-range aggregates
	summary, err := env.ReportRepo.PeriodSummary(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, float64(800), summary.TotalPurchases)
	assert.Equal(t, int64(2), summary.TransactionCount)

	// restore brings them back
	require.NoError(t, env.CustomerService.Restore(ctx, sita.ID))
	debtors, err = env.ReportRepo.TopDebtors(ctx, 5)
	require.NoError(t, err)
	require.Len(t, debtors, 2)
	assert.Equal(t, sita.ID, debtors[0].ID)
}

func TestE2E_PermanentDeleteCascades(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	customer, err := env.CustomerService.Create(ctx, model.CustomerRequest{Name: "Hari"})
	require.NoError(t, err)

	txn, err := env.LedgerService.Record(ctx, model.TransactionRecordRequest{
		CustomerID: customer.ID,
		Type:       model.TransactionPurchase,
		Products:   []model.ProductInput{{ProductName: "Sugar", Amount: 90}},
	})
	require.NoError(t, err)

	require.NoError(t, env.CustomerService.PermanentlyDelete(ctx, customer.ID))

	_, err = env.CustomerService.Get(ctx, customer.ID)
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)

	listed, err := env.TransactionRepo.ListForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)

	products, err := env.ProductRepo.ListForTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Empty(t, products)
}
