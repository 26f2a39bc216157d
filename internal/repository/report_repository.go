package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"
)

// Report row shapes keep the field names the existing web client consumes.

// TopProductRow aggregates sold quantity and revenue per product
type TopProductRow struct {
	ProductReference string  `json:"referencia_producto"`
	ProductName      string  `json:"nombre_producto"`
	Quantity         int     `json:"cantidad"`
	TotalSales       float64 `json:"total_ventas"`
}

// ProfitRow aggregates per-product margin over a date range
type ProfitRow struct {
	ProductReference string  `json:"referencia_producto"`
	ProductName      string  `json:"nombre_producto"`
	Quantity         int     `json:"cantidad"`
	Profit           float64 `json:"ganancia_por_item"`
	TotalSales       float64 `json:"total_ventas"`
}

// IncomeRow is one sold line with its invoice context
type IncomeRow struct {
	InvoiceNumber    string    `json:"numero_factura"`
	IssuedAt         time.Time `json:"fecha"`
	ProductReference string    `json:"referencia_producto"`
	ProductName      string    `json:"nombre_producto"`
	Quantity         int       `json:"cantidad"`
	UnitPrice        float64   `json:"precio_unitario"`
	Subtotal         float64   `json:"subtotal"`
}

// EmployeePerformanceRow aggregates invoices per creating user
type EmployeePerformanceRow struct {
	Username     string  `json:"nombre_empleado"`
	InvoiceCount int     `json:"numero_facturas"`
	TotalSales   float64 `json:"total_ventas_netas"`
}

// ClientSalesRow aggregates invoices per client
type ClientSalesRow struct {
	ClientName   string  `json:"nombre_cliente"`
	InvoiceCount int     `json:"numero_facturas"`
	TotalSales   float64 `json:"total_ventas_netas"`
}

// ReportRepository defines read-only aggregation queries over invoices and
// their items. Voided invoices are excluded everywhere; nil range bounds mean
// unbounded.
type ReportRepository interface {
	TopSellingProducts(ctx context.Context) ([]*TopProductRow, error)
	ProfitByDate(ctx context.Context, start, end *time.Time) ([]*ProfitRow, error)
	DetailedIncome(ctx context.Context, start, end *time.Time) ([]*IncomeRow, error)
	LowStockProducts(ctx context.Context, threshold int) ([]*domain.Product, error)
	EmployeePerformance(ctx context.Context, start, end *time.Time) ([]*EmployeePerformanceRow, error)
	SalesByClient(ctx context.Context, start, end *time.Time) ([]*ClientSalesRow, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// dateRangeClause appends an inclusive issued_at range filter to a query that
// already has a WHERE clause and returns the extended argument list.
func dateRangeClause(query string, args []interface{}, start, end *time.Time) (string, []interface{}) {
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND i.issued_at >= $%d", len(args))
	}
	if end != nil {
		// inclusive upper bound: anything before the start of the next day
		args = append(args, end.AddDate(0, 0, 1))
		query += fmt.Sprintf(" AND i.issued_at < $%d", len(args))
	}
	return query, args
}

// TopSellingProducts returns per-product sold quantities and revenue across
// all non-voided invoices, best sellers first.
func (r *reportRepository) TopSellingProducts(ctx context.Context) ([]*TopProductRow, error) {
	query := `
		SELECT p.reference, p.name, SUM(ii.quantity), SUM(ii.subtotal)
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN products p ON p.reference = ii.product_reference
		WHERE i.status <> $1
		GROUP BY p.reference, p.name
		ORDER BY SUM(ii.quantity) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, domain.InvoiceStatusVoided)
	if err != nil {
		return nil, fmt.Errorf("failed to query top selling products: %w", err)
	}
	defer rows.Close()

	results := []*TopProductRow{}
	for rows.Next() {
		row := &TopProductRow{}
		if err := rows.Scan(&row.ProductReference, &row.ProductName, &row.Quantity, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("failed to scan top product row: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top product rows: %w", err)
	}

	return results, nil
}

// ProfitByDate returns per-product quantity, margin and revenue over the
// range. Margin is (unit sale price - unit cost price) x quantity.
func (r *reportRepository) ProfitByDate(ctx context.Context, start, end *time.Time) ([]*ProfitRow, error) {
	query := `
		SELECT p.reference, p.name, SUM(ii.quantity),
		       SUM((ii.unit_price - p.cost_price) * ii.quantity),
		       SUM(ii.subtotal)
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN products p ON p.reference = ii.product_reference
		WHERE i.status <> $1
	`
	args := []interface{}{domain.InvoiceStatusVoided}
	query, args = dateRangeClause(query, args, start, end)
	query += `
		GROUP BY p.reference, p.name
		ORDER BY SUM((ii.unit_price - p.cost_price) * ii.quantity) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profit by date: %w", err)
	}
	defer rows.Close()

	results := []*ProfitRow{}
	for rows.Next() {
		row := &ProfitRow{}
		if err := rows.Scan(&row.ProductReference, &row.ProductName, &row.Quantity, &row.Profit, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("failed to scan profit row: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profit rows: %w", err)
	}

	return results, nil
}

// DetailedIncome returns every sold line within the range with its invoice
// number and date, newest first.
func (r *reportRepository) DetailedIncome(ctx context.Context, start, end *time.Time) ([]*IncomeRow, error) {
	query := `
		SELECT i.invoice_number, i.issued_at, p.reference, p.name, ii.quantity, ii.unit_price, ii.subtotal
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		JOIN products p ON p.reference = ii.product_reference
		WHERE i.status <> $1
	`
	args := []interface{}{domain.InvoiceStatusVoided}
	query, args = dateRangeClause(query, args, start, end)
	query += ` ORDER BY i.issued_at DESC, ii.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query detailed income: %w", err)
	}
	defer rows.Close()

	results := []*IncomeRow{}
	for rows.Next() {
		row := &IncomeRow{}
		err := rows.Scan(
			&row.InvoiceNumber,
			&row.IssuedAt,
			&row.ProductReference,
			&row.ProductName,
			&row.Quantity,
			&row.UnitPrice,
			&row.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income rows: %w", err)
	}

	return results, nil
}

// LowStockProducts returns active products at or below the threshold,
// lowest stock first.
func (r *reportRepository) LowStockProducts(ctx context.Context, threshold int) ([]*domain.Product, error) {
	query := `
		SELECT reference, name, cost_price, sale_price, stock, supplier_id, category_id, brand_id, image_url, active, created_at
		FROM products
		WHERE active = TRUE AND stock <= $1
		ORDER BY stock ASC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.Reference,
			&product.Name,
			&product.CostPrice,
			&product.SalePrice,
			&product.Stock,
			&product.SupplierID,
			&product.CategoryID,
			&product.BrandID,
			&product.ImageURL,
			&product.Active,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock products: %w", err)
	}

	return products, nil
}

// EmployeePerformance returns invoice counts and net totals per creating user
func (r *reportRepository) EmployeePerformance(ctx context.Context, start, end *time.Time) ([]*EmployeePerformanceRow, error) {
	query := `
		SELECT u.username, COUNT(i.id), COALESCE(SUM(i.total), 0)
		FROM invoices i
		JOIN users u ON u.id = i.user_id
		WHERE i.status <> $1
	`
	args := []interface{}{domain.InvoiceStatusVoided}
	query, args = dateRangeClause(query, args, start, end)
	query += `
		GROUP BY u.username
		ORDER BY COALESCE(SUM(i.total), 0) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee performance: %w", err)
	}
	defer rows.Close()

	results := []*EmployeePerformanceRow{}
	for rows.Next() {
		row := &EmployeePerformanceRow{}
		if err := rows.Scan(&row.Username, &row.InvoiceCount, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("failed to scan employee performance row: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee performance rows: %w", err)
	}

	return results, nil
}

// SalesByClient returns invoice counts and net totals per client
func (r *reportRepository) SalesByClient(ctx context.Context, start, end *time.Time) ([]*ClientSalesRow, error) {
	query := `
		SELECT c.name, COUNT(i.id), COALESCE(SUM(i.total), 0)
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.status <> $1
	`
	args := []interface{}{domain.InvoiceStatusVoided}
	query, args = dateRangeClause(query, args, start, end)
	query += `
		GROUP BY c.name
		ORDER BY COALESCE(SUM(i.total), 0) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by client: %w", err)
	}
	defer rows.Close()

	results := []*ClientSalesRow{}
	for rows.Next() {
		row := &ClientSalesRow{}
		if err := rows.Scan(&row.ClientName, &row.InvoiceCount, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("failed to scan client sales row: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client sales rows: %w", err)
	}

	return results, nil
}
