package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/fasthttp/router"

	"github.com/ekhata-app/ekhata/internal/model"
	xhttp "github.com/ekhata-app/ekhata/pkg/http"
)

const defaultTopDebtors = 5

type ReportProvider interface {
	PeriodSummary(ctx context.Context, start, end string) (*model.PeriodSummary, error)
	DailyBreakdown(ctx context.Context, start, end string) ([]*model.DaySummary, error)
	TopDebtors(ctx context.Context, limit int) ([]*model.TopDebtor, error)
	TotalOutstanding(ctx context.Context) (float64, error)
}

type ReportHandler struct {
	svc ReportProvider
}

func NewReportHandler(reports ReportProvider) *ReportHandler {
	return &ReportHandler{
		svc: reports,
	}
}

func RegisterReportRoutes(e *router.Group, h *ReportHandler) {
	e.GET("/reports/summary", h.GetPeriodSummary)
	e.GET("/reports/daily", h.GetDailyBreakdown)
	e.GET("/reports/top-debtors", h.GetTopDebtors)
	e.GET("/reports/outstanding", h.GetTotalOutstanding)
}

type daySummaryListResponse struct {
	Items []*model.DaySummary `json:"items"`
}

type topDebtorListResponse struct {
	Items []*model.TopDebtor `json:"items"`
}

type outstandingResponse struct {
	Total float64 `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *ReportHandler) GetPeriodSummary(ctx *xhttp.RequestCtx) {
	start, end, ok := dateRange(ctx)
	if !ok {
		return
	}

	summary, err := h.svc.PeriodSummary(ctx, start, end)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, summary)
}

func (h *ReportHandler) GetDailyBreakdown(ctx *xhttp.RequestCtx) {
	start, end, ok := dateRange(ctx)
	if !ok {
		return
	}

	days, err := h.svc.DailyBreakdown(ctx, start, end)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, daySummaryListResponse{Items: days})
}

func (h *ReportHandler) GetTopDebtors(ctx *xhttp.RequestCtx) {
	limit := defaultTopDebtors
	if v := query(ctx, "limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	debtors, err := h.svc.TopDebtors(ctx, limit)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, topDebtorListResponse{Items: debtors})
}

func (h *ReportHandler) GetTotalOutstanding(ctx *xhttp.RequestCtx) {
	total, err := h.svc.TotalOutstanding(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, outstandingResponse{Total: total})
}

func dateRange(ctx *xhttp.RequestCtx) (start, end string, ok bool) {
	start = query(ctx, "start")
	end = query(ctx, "end")
	if !validDate(start) || !validDate(end) {
		writeError(ctx, xhttp.StatusBadRequest, "start and end must be YYYY-MM-DD")
		return "", "", false
	}
	return start, end, true
}

func validDate(s string) bool {
	_, err := time.Parse(model.DateLayout, s)
	return err == nil
}
