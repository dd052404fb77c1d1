package handlers

import (
	"context"
	"strings"

	"github.com/fasthttp/router"

	"github.com/ekhata-app/ekhata/internal/model"
	xhttp "github.com/ekhata-app/ekhata/pkg/http"
)

type LedgerService interface {
	Record(ctx context.Context, p model.TransactionRecordRequest) (*model.Transaction, error)
	ListForCustomer(ctx context.Context, customerID string) ([]*model.Transaction, error)
	ListForCustomerWithProducts(ctx context.Context, customerID string) ([]*model.TransactionWithProducts, error)
	Totals(ctx context.Context, customerID string) (*model.CustomerTotals, error)
}

type TransactionHandler struct {
	svc LedgerService
}

func NewTransactionHandler(ledgerService LedgerService) *TransactionHandler {
	return &TransactionHandler{
		svc: ledgerService,
	}
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.POST("/customers/{id}/transactions", h.RecordTransaction)
	e.GET("/customers/{id}/transactions", h.ListTransactions)
	e.GET("/customers/{id}/totals", h.GetTotals)
}

type recordTransactionRequest struct {
	Type        string               `json:"type"`
	Amount      float64              `json:"amount"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
	Products    []model.ProductInput `json:"products"`
}

type transactionListResponse struct {
	Items []*model.Transaction `json:"items"`
}

type transactionWithProductsListResponse struct {
	Items []*model.TransactionWithProducts `json:"items"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *TransactionHandler) RecordTransaction(ctx *xhttp.RequestCtx) {
	var req recordTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Record(ctx, model.TransactionRecordRequest{
		CustomerID:  pathParam(ctx, "id"),
		Type:        model.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Products:    req.Products,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	customerID := pathParam(ctx, "id")

	if strings.EqualFold(query(ctx, "with_products"), "true") {
		items, err := h.svc.ListForCustomerWithProducts(ctx, customerID)
		if err != nil {
			writeServiceError(ctx, err)
			return
		}
		writeJSON(ctx, xhttp.StatusOK, transactionWithProductsListResponse{Items: items})
		return
	}

	items, err := h.svc.ListForCustomer(ctx, customerID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, transactionListResponse{Items: items})
}

func (h *TransactionHandler) GetTotals(ctx *xhttp.RequestCtx) {
	totals, err := h.svc.Totals(ctx, pathParam(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, totals)
}
