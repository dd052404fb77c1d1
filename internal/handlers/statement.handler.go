package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/internal/statement"
	xhttp "github.com/ekhata-app/ekhata/pkg/http"
)

type StatementReader interface {
	Get(ctx context.Context, id string) (*model.Customer, error)
	ListForCustomerWithProducts(ctx context.Context, customerID string) ([]*model.TransactionWithProducts, error)
}

type statementReader struct {
	customers CustomerService
	ledger    LedgerService
}

func (r statementReader) Get(ctx context.Context, id string) (*model.Customer, error) {
	return r.customers.Get(ctx, id)
}

func (r statementReader) ListForCustomerWithProducts(ctx context.Context, customerID string) ([]*model.TransactionWithProducts, error) {
	return r.ledger.ListForCustomerWithProducts(ctx, customerID)
}

// StatementHandler serves the rendered HTML statement. Archived customers
// keep their history, so statements stay available for them too.
type StatementHandler struct {
	svc StatementReader
}

func NewStatementHandler(customerService CustomerService, ledgerService LedgerService) *StatementHandler {
	return &StatementHandler{
		svc: statementReader{customers: customerService, ledger: ledgerService},
	}
}

func RegisterStatementRoutes(e *router.Group, h *StatementHandler) {
	e.GET("/customers/{id}/statement", h.GetStatement)
}

func (h *StatementHandler) GetStatement(ctx *xhttp.RequestCtx) {
	id := pathParam(ctx, "id")

	customer, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	transactions, err := h.svc.ListForCustomerWithProducts(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	body, err := statement.Render(customer, transactions)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.SetStatusCode(xhttp.StatusOK)
	ctx.SetContentType("text/html; charset=utf-8")
	ctx.SetBody(body)
}
