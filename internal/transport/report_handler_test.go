package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"
	"github.com/JSebastianB25/Web-Project/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubReportRepository returns fixed rows for every query
type stubReportRepository struct {
	repository.ReportRepository

	profitRows []*repository.ProfitRow
	products   []*domain.Product
}

func (r *stubReportRepository) ProfitByDate(ctx context.Context, start, end *time.Time) ([]*repository.ProfitRow, error) {
	return r.profitRows, nil
}

func (r *stubReportRepository) LowStockProducts(ctx context.Context, threshold int) ([]*domain.Product, error) {
	return r.products, nil
}

func newReportRouter(repo repository.ReportRepository) *chi.Mux {
	router := chi.NewRouter()
	NewReportHandler(service.NewReportService(repo), zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestProfitByDate_InvalidStartDateNamesParameter(t *testing.T) {
	router := newReportRouter(&stubReportRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/ganancias-por-fecha?start_date=15-01-2024", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_date")
}

func TestProfitByDate_InvalidEndDateNamesParameter(t *testing.T) {
	router := newReportRouter(&stubReportRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/ganancias-por-fecha?end_date=ayer", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end_date")
}

func TestLowStock_InvalidThresholdRejected(t *testing.T) {
	router := newReportRouter(&stubReportRepository{})

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/productos-bajo-stock?umbral=muchos", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "umbral")
}

func TestProfitByDate_ValidRangeReturnsRows(t *testing.T) {
	router := newReportRouter(&stubReportRepository{
		profitRows: []*repository.ProfitRow{
			{ProductReference: "REF-1", ProductName: "Licencia", Quantity: 3, Profit: 12.00, TotalSales: 30.00},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reportes/ganancias-por-fecha?start_date=2024-01-01&end_date=2024-12-31", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ganancia_por_item")
	assert.Contains(t, rec.Body.String(), "REF-1")
}
