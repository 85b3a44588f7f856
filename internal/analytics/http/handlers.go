// Package analytichttp exposes the dashboard and sales analytics endpoints.
package analytichttp

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dashel-erp/dashel-erp/internal/analytics"
	"github.com/dashel-erp/dashel-erp/internal/analytics/export"
	"github.com/dashel-erp/dashel-erp/internal/platform/httpx"
)

// AnalyticsService defines the data contract used by the handler.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (analytics.DashboardStats, error)
	SalesAnalytics(ctx context.Context, filter analytics.AggregateFilter) ([]analytics.Bucket, error)
}

// Handler coordinates HTTP requests for dashboard KPIs and sales analytics.
type Handler struct {
	logger  *slog.Logger
	service AnalyticsService
	csvPool sync.Pool
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service AnalyticsService) *Handler {
	h := &Handler{logger: logger, service: service}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// Dashboard serves the aggregated KPI block.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, stats)
}

// SalesAnalytics serves the bucketed sales series.
func (h *Handler) SalesAnalytics(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	buckets, err := h.service.SalesAnalytics(r.Context(), filter)
	if err != nil {
		h.logger.Error("sales analytics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if buckets == nil {
		buckets = []analytics.Bucket{}
	}
	httpx.OKMeta(w, buckets, map[string]string{"granularity": string(filter.Granularity)})
}

// ExportCSV streams the bucketed series as a CSV download.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	buckets, err := h.service.SalesAnalytics(r.Context(), filter)
	if err != nil {
		h.logger.Error("sales analytics export", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.csvPool.Put(buf)

	if err := export.WriteBucketsCSV(buf, buckets); err != nil {
		h.logger.Error("render analytics csv", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sales-analytics.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func parseFilter(r *http.Request) (analytics.AggregateFilter, error) {
	q := r.URL.Query()
	filter := analytics.AggregateFilter{
		Granularity: analytics.ParseGranularity(strings.TrimSpace(q.Get("granularity"))),
	}
	var err error
	if filter.From, err = parseDate(q.Get("from")); err != nil {
		return analytics.AggregateFilter{}, httpx.Validationf("from must be YYYY-MM-DD")
	}
	if filter.To, err = parseDate(q.Get("to")); err != nil {
		return analytics.AggregateFilter{}, httpx.Validationf("to must be YYYY-MM-DD")
	}
	return filter, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
