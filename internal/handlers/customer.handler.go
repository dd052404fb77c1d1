package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fasthttp/router"

	"github.com/ekhata-app/ekhata/internal/model"
	"github.com/ekhata-app/ekhata/internal/repository"
	xhttp "github.com/ekhata-app/ekhata/pkg/http"
)

type CustomerService interface {
	Create(ctx context.Context, p model.CustomerRequest) (*model.Customer, error)
	Update(ctx context.Context, id string, p model.CustomerRequest) (*model.Customer, error)
	Get(ctx context.Context, id string) (*model.Customer, error)
	ListActive(ctx context.Context) ([]*model.Customer, error)
	ListArchived(ctx context.Context) ([]*model.Customer, error)
	CountArchived(ctx context.Context) (int64, error)
	Archive(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	PermanentlyDelete(ctx context.Context, id string) error
}

type CustomerHandler struct {
	svc CustomerService
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		svc: customerService,
	}
}

func RegisterCustomerRoutes(e *router.Group, h *CustomerHandler) {
	e.POST("/customers", h.CreateCustomer)
	e.GET("/customers", h.ListCustomers)
	e.GET("/customers/{id}", h.GetCustomer)
	e.PUT("/customers/{id}", h.UpdateCustomer)
	e.POST("/customers/{id}/archive", h.ArchiveCustomer)
	e.POST("/customers/{id}/restore", h.RestoreCustomer)
	e.DELETE("/customers/{id}", h.DeleteCustomer)
	e.GET("/archived", h.ListArchived)
	e.GET("/archived/count", h.CountArchived)
}

type customerListResponse struct {
	Items []*model.Customer `json:"items"`
}

type archivedCountResponse struct {
	Count int64 `json:"count"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *CustomerHandler) CreateCustomer(ctx *xhttp.RequestCtx) {
	var req model.CustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	created, err := h.svc.Create(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, created)
}

func (h *CustomerHandler) ListCustomers(ctx *xhttp.RequestCtx) {
	items, err := h.svc.ListActive(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customerListResponse{Items: items})
}

func (h *CustomerHandler) ListArchived(ctx *xhttp.RequestCtx) {
	items, err := h.svc.ListArchived(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customerListResponse{Items: items})
}

func (h *CustomerHandler) CountArchived(ctx *xhttp.RequestCtx) {
	count, err := h.svc.CountArchived(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, archivedCountResponse{Count: count})
}

func (h *CustomerHandler) GetCustomer(ctx *xhttp.RequestCtx) {
	customer, err := h.svc.Get(ctx, pathParam(ctx, "id"))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(ctx *xhttp.RequestCtx) {
	var req model.CustomerRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := h.svc.Update(ctx, pathParam(ctx, "id"), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, updated)
}

func (h *CustomerHandler) ArchiveCustomer(ctx *xhttp.RequestCtx) {
	if err := h.svc.Archive(ctx, pathParam(ctx, "id")); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(xhttp.StatusOK)
}

func (h *CustomerHandler) RestoreCustomer(ctx *xhttp.RequestCtx) {
	if err := h.svc.Restore(ctx, pathParam(ctx, "id")); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(xhttp.StatusOK)
}

// DeleteCustomer is the irreversible path. The UI's double confirmation
// sits in front of it; here it is just a distinct verb from archive.
func (h *CustomerHandler) DeleteCustomer(ctx *xhttp.RequestCtx) {
	if err := h.svc.PermanentlyDelete(ctx, pathParam(ctx, "id")); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.SetStatusCode(xhttp.StatusOK)
}

/* --------------------------------- Helpers ----------------------------------- */

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	return json.Unmarshal(ctx.PostBody(), dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	body, _ := json.Marshal(v)
	ctx.SetBody(body)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrTransactionNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrEmptyName),
		errors.Is(err, model.ErrInvalidType),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidProduct):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	default:
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
	}
}

func pathParam(ctx *xhttp.RequestCtx, key string) string {
	if v, ok := ctx.UserValue(key).(string); ok {
		return v
	}
	return ""
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}
