package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product with this reference already exists")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, reference string) error
	FindByReference(ctx context.Context, reference string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	ListForSale(ctx context.Context) ([]*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. When no reference code is supplied one is
// assigned from product_reference_seq.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.Reference == "" {
		var next int64
		err := r.db.QueryRowContext(ctx, `SELECT nextval('product_reference_seq')`).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to assign product reference: %w", err)
		}
		product.Reference = domain.FormatReference(next)
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO products (reference, name, cost_price, sale_price, stock, supplier_id, category_id, brand_id, image_url, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.Reference,
		product.Name,
		product.CostPrice,
		product.SalePrice,
		product.Stock,
		product.SupplierID,
		product.CategoryID,
		product.BrandID,
		product.ImageURL,
		product.Active,
		product.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update updates an existing product. Stock is deliberately not written here:
// all stock changes go through the locked invoice item path.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, cost_price = $3, sale_price = $4, supplier_id = $5,
		    category_id = $6, brand_id = $7, image_url = $8, active = $9
		WHERE reference = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.Reference,
		product.Name,
		product.CostPrice,
		product.SalePrice,
		product.SupplierID,
		product.CategoryID,
		product.BrandID,
		product.ImageURL,
		product.Active,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *productRepository) Delete(ctx context.Context, reference string) error {
	query := `DELETE FROM products WHERE reference = $1`

	result, err := r.db.ExecContext(ctx, query, reference)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByReference retrieves a product by its reference code
func (r *productRepository) FindByReference(ctx context.Context, reference string) (*domain.Product, error) {
	query := `
		SELECT reference, name, cost_price, sale_price, stock, supplier_id, category_id, brand_id, image_url, active, created_at
		FROM products
		WHERE reference = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, reference).Scan(
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
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by reference: %w", err)
	}

	return product, nil
}

// List retrieves every product regardless of state
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT reference, name, cost_price, sale_price, stock, supplier_id, category_id, brand_id, image_url, active, created_at
		FROM products
		ORDER BY created_at DESC
	`

	return r.queryProducts(ctx, query)
}

// ListForSale retrieves only active products with positive stock, the subset
// a point-of-sale listing offers.
func (r *productRepository) ListForSale(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT reference, name, cost_price, sale_price, stock, supplier_id, category_id, brand_id, image_url, active, created_at
		FROM products
		WHERE active = TRUE AND stock > 0
		ORDER BY name ASC
	`

	return r.queryProducts(ctx, query)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
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
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
