package domain

import (
	"fmt"
	"time"
)

// ReferencePrefix is prepended to the sequence value when generating
// a product reference code.
const ReferencePrefix = "PRODKEEPLIC"

// Product represents an item in the catalog. It is keyed by its unique
// reference code rather than a numeric id.
type Product struct {
	Reference  string    `json:"reference" db:"reference"`
	Name       string    `json:"name" db:"name"`
	CostPrice  float64   `json:"cost_price" db:"cost_price"`
	SalePrice  float64   `json:"sale_price" db:"sale_price"`
	Stock      int       `json:"stock" db:"stock"`
	SupplierID int64     `json:"supplier_id" db:"supplier_id"`
	CategoryID *int64    `json:"category_id" db:"category_id"`
	BrandID    *int64    `json:"brand_id" db:"brand_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// FormatReference builds a reference code from a sequence value.
func FormatReference(n int64) string {
	return fmt.Sprintf("%s%09d", ReferencePrefix, n)
}
