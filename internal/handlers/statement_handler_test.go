package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/internal/repository"
)

func TestStatementHandler_GetStatement(t *testing.T) {
	t.Run("renders html", func(t *testing.T) {
		customers := new(MockCustomerService)
		ledger := new(MockLedgerService)
		handler := NewStatementHandler(customers, ledger)

		customers.On("Get", mock.Anything, "c1").
			Return(&model.Customer{ID: "c1", Name: "Ram", TotalPending: 150}, nil)
		ledger.On("ListForCustomerWithProducts", mock.Anything, "c1").
			Return([]*model.TransactionWithProducts{
				{
					Transaction: model.Transaction{Type: model.TransactionPurchase, Amount: 250, Date: "2024-03-01"},
					Products:    []*model.Product{{ProductName: "Rice", Amount: 250}},
				},
			}, nil)

		ctx := setupTestContext("GET", "/customers/c1/statement", nil)
		ctx.SetUserValue("id", "c1")
		handler.GetStatement(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.Contains(t, string(ctx.Response.Header.ContentType()), "text/html")

		body := string(ctx.Response.Body())
		assert.Contains(t, body, "Ram")
		assert.Contains(t, body, "Rice")
	})

	t.Run("unknown customer", func(t *testing.T) {
		customers := new(MockCustomerService)
		ledger := new(MockLedgerService)
		handler := NewStatementHandler(customers, ledger)

		customers.On("Get", mock.Anything, "ghost").Return(nil, repository.ErrCustomerNotFound)

		ctx := setupTestContext("GET", "/customers/ghost/statement", nil)
		ctx.SetUserValue("id", "ghost")
		handler.GetStatement(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
		ledger.AssertNotCalled(t, "ListForCustomerWithProducts", mock.Anything, mock.Anything)
	})
}
