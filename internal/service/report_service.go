package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"
)

const (
	// DefaultLowStockThreshold is used when no threshold is requested
	DefaultLowStockThreshold = 10

	reportDateLayout = "2006-01-02"
)

// InvalidDateError reports a report date parameter that could not be parsed
type InvalidDateError struct {
	Param string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date for parameter %q: %q, expected YYYY-MM-DD", e.Param, e.Value)
}

// InvalidThresholdError reports a low-stock threshold that is not a
// non-negative integer
type InvalidThresholdError struct {
	Value string
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("invalid threshold %q for parameter \"umbral\": must be a non-negative integer", e.Value)
}

// ReportService defines the interface for sales reporting. Date parameters
// arrive as raw query strings and are validated here.
type ReportService interface {
	TopSellingProducts(ctx context.Context) ([]*repository.TopProductRow, error)
	ProfitByDate(ctx context.Context, startDate, endDate string) ([]*repository.ProfitRow, error)
	DetailedIncome(ctx context.Context, startDate, endDate string) ([]*repository.IncomeRow, error)
	LowStockProducts(ctx context.Context, threshold string) ([]*domain.Product, error)
	EmployeePerformance(ctx context.Context, startDate, endDate string) ([]*repository.EmployeePerformanceRow, error)
	SalesByClient(ctx context.Context, startDate, endDate string) ([]*repository.ClientSalesRow, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new instance of ReportService
func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

// TopSellingProducts returns products ranked by units sold
func (s *reportService) TopSellingProducts(ctx context.Context) ([]*repository.TopProductRow, error) {
	return s.reportRepo.TopSellingProducts(ctx)
}

// ProfitByDate returns per-product profit over an optional date range
func (s *reportService) ProfitByDate(ctx context.Context, startDate, endDate string) ([]*repository.ProfitRow, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.ProfitByDate(ctx, start, end)
}

// DetailedIncome returns every sold line over an optional date range
func (s *reportService) DetailedIncome(ctx context.Context, startDate, endDate string) ([]*repository.IncomeRow, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.DetailedIncome(ctx, start, end)
}

// LowStockProducts returns active products at or below the threshold. An
// empty threshold falls back to the default; a malformed one is rejected.
func (s *reportService) LowStockProducts(ctx context.Context, threshold string) ([]*domain.Product, error) {
	limit := DefaultLowStockThreshold
	if threshold != "" {
		parsed, err := strconv.Atoi(threshold)
		if err != nil || parsed < 0 {
			return nil, &InvalidThresholdError{Value: threshold}
		}
		limit = parsed
	}
	return s.reportRepo.LowStockProducts(ctx, limit)
}

// EmployeePerformance aggregates invoices per employee over an optional range
func (s *reportService) EmployeePerformance(ctx context.Context, startDate, endDate string) ([]*repository.EmployeePerformanceRow, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.EmployeePerformance(ctx, start, end)
}

// SalesByClient aggregates invoices per client over an optional range
func (s *reportService) SalesByClient(ctx context.Context, startDate, endDate string) ([]*repository.ClientSalesRow, error) {
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return s.reportRepo.SalesByClient(ctx, start, end)
}

// parseDateRange parses optional YYYY-MM-DD bounds. Empty strings mean
// unbounded.
func parseDateRange(startDate, endDate string) (start, end *time.Time, err error) {
	if startDate != "" {
		t, parseErr := time.Parse(reportDateLayout, startDate)
		if parseErr != nil {
			return nil, nil, &InvalidDateError{Param: "start_date", Value: startDate}
		}
		start = &t
	}
	if endDate != "" {
		t, parseErr := time.Parse(reportDateLayout, endDate)
		if parseErr != nil {
			return nil, nil, &InvalidDateError{Param: "end_date", Value: endDate}
		}
		end = &t
	}
	return start, end, nil
}
