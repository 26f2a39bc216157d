package domain

import "time"

// Invoice status values. Pending invoices can be completed or voided;
// completed invoices can only be voided.
const (
	InvoiceStatusPending   = "Pending"
	InvoiceStatusCompleted = "Completed"
	InvoiceStatusVoided    = "Voided"
)

// Invoice represents a sale issued to a client
type Invoice struct {
	ID              int64     `json:"id" db:"id"`
	InvoiceNumber   string    `json:"invoice_number" db:"invoice_number"`
	IssuedAt        time.Time `json:"issued_at" db:"issued_at"`
	ClientID        int64     `json:"client_id" db:"client_id"`
	PaymentMethodID int64     `json:"payment_method_id" db:"payment_method_id"`
	Total           float64   `json:"total" db:"total"`
	Status          string    `json:"status" db:"status"`
	UserID          int64     `json:"user_id" db:"user_id"`

	Items []*InvoiceItem `json:"items,omitempty"`
}

// InvoiceItem is one product/quantity/price line within an invoice
type InvoiceItem struct {
	ID               int64   `json:"id" db:"id"`
	InvoiceID        int64   `json:"invoice_id" db:"invoice_id"`
	ProductReference string  `json:"product_reference" db:"product_reference"`
	Quantity         int     `json:"quantity" db:"quantity"`
	UnitPrice        float64 `json:"unit_price" db:"unit_price"`
	Subtotal         float64 `json:"subtotal" db:"subtotal"`
}

// InvoiceDetail carries an invoice together with the related names the
// read API and the PDF renderer need.
type InvoiceDetail struct {
	Invoice
	ClientName        string `json:"client_name"`
	ClientPhone       string `json:"client_phone"`
	ClientEmail       string `json:"client_email"`
	PaymentMethodName string `json:"payment_method_name"`
	Username          string `json:"username"`

	DetailItems []*InvoiceItemDetail `json:"detail_items,omitempty"`
}

// InvoiceItemDetail is an invoice item joined with its product name.
type InvoiceItemDetail struct {
	InvoiceItem
	ProductName string `json:"product_name"`
}
