package transport

import (
	"errors"
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReportHandler handles HTTP requests for sales reports
type ReportHandler struct {
	reportService service.ReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, logger: logger}
}

// RegisterRoutes registers all report routes
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/reportes", func(r chi.Router) {
		r.Get("/productos-mas-vendidos", h.TopSellingProducts)
		r.Get("/ganancias-por-fecha", h.ProfitByDate)
		r.Get("/ingresos-detallados", h.DetailedIncome)
		r.Get("/productos-bajo-stock", h.LowStockProducts)
		r.Get("/rendimiento-empleados", h.EmployeePerformance)
		r.Get("/ventas-por-cliente", h.SalesByClient)
	})
}

// respondReportError maps report service failures to HTTP responses. Bad
// date or threshold parameters are client errors and name the parameter.
func (h *ReportHandler) respondReportError(w http.ResponseWriter, report string, err error) {
	var invalidDate *service.InvalidDateError
	if errors.As(err, &invalidDate) {
		middleware.RespondWithError(w, http.StatusBadRequest, invalidDate.Error())
		return
	}
	var invalidThreshold *service.InvalidThresholdError
	if errors.As(err, &invalidThreshold) {
		middleware.RespondWithError(w, http.StatusBadRequest, invalidThreshold.Error())
		return
	}
	h.logger.Error("Report query failed", zap.String("report", report), zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, "failed to generate report")
}

// TopSellingProducts ranks products by units sold
func (h *ReportHandler) TopSellingProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.TopSellingProducts(r.Context())
	if err != nil {
		h.respondReportError(w, "productos-mas-vendidos", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, rows)
}

// ProfitByDate aggregates per-product profit over ?start_date&end_date
func (h *ReportHandler) ProfitByDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.reportService.ProfitByDate(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.respondReportError(w, "ganancias-por-fecha", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, rows)
}

// DetailedIncome lists every sold line over ?start_date&end_date
func (h *ReportHandler) DetailedIncome(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.reportService.DetailedIncome(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.respondReportError(w, "ingresos-detallados", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, rows)
}

// LowStockProducts lists active products at or below ?umbral
func (h *ReportHandler) LowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.reportService.LowStockProducts(r.Context(), r.URL.Query().Get("umbral"))
	if err != nil {
		h.respondReportError(w, "productos-bajo-stock", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// EmployeePerformance aggregates invoices per employee over
// ?start_date&end_date
func (h *ReportHandler) EmployeePerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.reportService.EmployeePerformance(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.respondReportError(w, "rendimiento-empleados", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, rows)
}

// SalesByClient aggregates invoices per client over ?start_date&end_date
func (h *ReportHandler) SalesByClient(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.reportService.SalesByClient(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.respondReportError(w, "ventas-por-cliente", err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, rows)
}
