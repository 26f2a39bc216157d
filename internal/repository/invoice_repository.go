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
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceItemNotFound  = errors.New("invoice item not found")
	ErrInsufficientStock    = errors.New("insufficient stock for product")
	ErrInvoiceAlreadyVoided = errors.New("invoice is already voided")
	ErrInvoiceNotPending    = errors.New("invoice is not pending")
)

// InvoiceRepository defines the interface for invoice and invoice item data
// access. Every method that changes product stock runs the read-check-write
// inside a single transaction with the product row locked FOR UPDATE.
type InvoiceRepository interface {
	CreateWithItems(ctx context.Context, invoice *domain.Invoice, items []*domain.InvoiceItem) error
	FindByID(ctx context.Context, id int64) (*domain.Invoice, error)
	FindDetail(ctx context.Context, id int64) (*domain.InvoiceDetail, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
	Complete(ctx context.Context, id int64) error
	Void(ctx context.Context, id int64) error

	AddItem(ctx context.Context, item *domain.InvoiceItem) error
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*domain.InvoiceItem, error)
	DeleteItem(ctx context.Context, itemID int64) error
	FindItemByID(ctx context.Context, itemID int64) (*domain.InvoiceItem, error)
	ListItems(ctx context.Context, invoiceID int64) ([]*domain.InvoiceItem, error)
	ListAllItems(ctx context.Context) ([]*domain.InvoiceItem, error)
}

type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(db *sql.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

// adjustStock locks the product row and applies delta to its stock. A positive
// delta is a deduction and fails with ErrInsufficientStock when the on-hand
// quantity is lower than the delta; a negative delta restores stock.
func adjustStock(ctx context.Context, tx *sql.Tx, reference string, delta int) error {
	var stock int
	err := tx.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE reference = $1 FOR UPDATE`,
		reference,
	).Scan(&stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to lock product row: %w", err)
	}

	if delta > 0 && stock < delta {
		return ErrInsufficientStock
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET stock = stock - $2 WHERE reference = $1`,
		reference, delta,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	return nil
}

// refreshTotal rewrites the invoice total from the sum of its item subtotals.
func refreshTotal(ctx context.Context, tx *sql.Tx, invoiceID int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE invoices
		SET total = COALESCE((SELECT SUM(subtotal) FROM invoice_items WHERE invoice_id = $1), 0)
		WHERE id = $1
	`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to refresh invoice total: %w", err)
	}
	return nil
}

// CreateWithItems assigns the next invoice number, inserts the invoice and all
// of its items, deducting stock per item, in one transaction. Any stock
// failure rolls the whole invoice back.
func (r *invoiceRepository) CreateWithItems(ctx context.Context, invoice *domain.Invoice, items []*domain.InvoiceItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return fmt.Errorf("failed to assign invoice number: %w", err)
	}
	invoice.InvoiceNumber = fmt.Sprintf("%011d", seq)

	if invoice.Status == "" {
		invoice.Status = domain.InvoiceStatusPending
	}
	if invoice.IssuedAt.IsZero() {
		invoice.IssuedAt = time.Now()
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO invoices (invoice_number, issued_at, client_id, payment_method_id, total, status, user_id)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		RETURNING id
	`,
		invoice.InvoiceNumber,
		invoice.IssuedAt,
		invoice.ClientID,
		invoice.PaymentMethodID,
		invoice.Status,
		invoice.UserID,
	).Scan(&invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	total := 0.0
	for _, item := range items {
		item.InvoiceID = invoice.ID
		item.Subtotal = float64(item.Quantity) * item.UnitPrice

		if err := adjustStock(ctx, tx, item.ProductReference, item.Quantity); err != nil {
			return err
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO invoice_items (invoice_id, product_reference, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			item.InvoiceID,
			item.ProductReference,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to create invoice item: %w", err)
		}

		total += item.Subtotal
	}

	if _, err := tx.ExecContext(ctx, `UPDATE invoices SET total = $2 WHERE id = $1`, invoice.ID, total); err != nil {
		return fmt.Errorf("failed to set invoice total: %w", err)
	}
	invoice.Total = total
	invoice.Items = items

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindByID retrieves an invoice together with its items
func (r *invoiceRepository) FindByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, issued_at, client_id, payment_method_id, total, status, user_id
		FROM invoices
		WHERE id = $1
	`

	invoice := &domain.Invoice{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.InvoiceNumber,
		&invoice.IssuedAt,
		&invoice.ClientID,
		&invoice.PaymentMethodID,
		&invoice.Total,
		&invoice.Status,
		&invoice.UserID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID: %w", err)
	}

	items, err := r.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	invoice.Items = items

	return invoice, nil
}

// FindDetail retrieves an invoice joined with client, payment method, user
// and product names, the shape the read API and the PDF renderer consume.
func (r *invoiceRepository) FindDetail(ctx context.Context, id int64) (*domain.InvoiceDetail, error) {
	query := `
		SELECT i.id, i.invoice_number, i.issued_at, i.client_id, i.payment_method_id, i.total, i.status, i.user_id,
		       c.name, c.phone, c.email, pm.method, u.username
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		JOIN payment_methods pm ON pm.id = i.payment_method_id
		JOIN users u ON u.id = i.user_id
		WHERE i.id = $1
	`

	detail := &domain.InvoiceDetail{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.InvoiceNumber,
		&detail.IssuedAt,
		&detail.ClientID,
		&detail.PaymentMethodID,
		&detail.Total,
		&detail.Status,
		&detail.UserID,
		&detail.ClientName,
		&detail.ClientPhone,
		&detail.ClientEmail,
		&detail.PaymentMethodName,
		&detail.Username,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice detail: %w", err)
	}

	itemQuery := `
		SELECT ii.id, ii.invoice_id, ii.product_reference, ii.quantity, ii.unit_price, ii.subtotal, p.name
		FROM invoice_items ii
		JOIN products p ON p.reference = ii.product_reference
		WHERE ii.invoice_id = $1
		ORDER BY ii.id ASC
	`

	rows, err := r.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice item details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domain.InvoiceItemDetail{}
		err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.ProductReference,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice item detail: %w", err)
		}
		detail.DetailItems = append(detail.DetailItems, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item details: %w", err)
	}

	return detail, nil
}

// List retrieves all invoices, most recent first
func (r *invoiceRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, issued_at, client_id, payment_method_id, total, status, user_id
		FROM invoices
		ORDER BY issued_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []*domain.Invoice{}
	for rows.Next() {
		invoice := &domain.Invoice{}
		err := rows.Scan(
			&invoice.ID,
			&invoice.InvoiceNumber,
			&invoice.IssuedAt,
			&invoice.ClientID,
			&invoice.PaymentMethodID,
			&invoice.Total,
			&invoice.Status,
			&invoice.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// Update rewrites the invoice's client and payment method. Number, total,
// status and items are owned by their dedicated operations and never change
// here.
func (r *invoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		UPDATE invoices
		SET client_id = $2, payment_method_id = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, invoice.ID, invoice.ClientID, invoice.PaymentMethodID)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// lockStatus reads the invoice status with the row locked for update.
func lockStatus(ctx context.Context, tx *sql.Tx, id int64) (string, error) {
	var status string
	err := tx.QueryRowContext(ctx, `SELECT status FROM invoices WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrInvoiceNotFound
		}
		return "", fmt.Errorf("failed to lock invoice row: %w", err)
	}
	return status, nil
}

// Complete transitions a pending invoice to completed
func (r *invoiceRepository) Complete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	status, err := lockStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	if status != domain.InvoiceStatusPending {
		return ErrInvoiceNotPending
	}

	if _, err := tx.ExecContext(ctx, `UPDATE invoices SET status = $2 WHERE id = $1`, id, domain.InvoiceStatusCompleted); err != nil {
		return fmt.Errorf("failed to complete invoice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Void restores the stock of every item exactly once and marks the invoice
// voided. Voiding an already voided invoice is an error, which guarantees
// stock is never restored twice.
func (r *invoiceRepository) Void(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	status, err := lockStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	if status == domain.InvoiceStatusVoided {
		return ErrInvoiceAlreadyVoided
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_reference, quantity FROM invoice_items WHERE invoice_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to list invoice items: %w", err)
	}

	type restore struct {
		reference string
		quantity  int
	}
	restores := []restore{}
	for rows.Next() {
		var rst restore
		if err := rows.Scan(&rst.reference, &rst.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan invoice item: %w", err)
		}
		restores = append(restores, rst)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating invoice items: %w", err)
	}
	rows.Close()

	for _, rst := range restores {
		if err := adjustStock(ctx, tx, rst.reference, -rst.quantity); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE invoices SET status = $2 WHERE id = $1`, id, domain.InvoiceStatusVoided); err != nil {
		return fmt.Errorf("failed to void invoice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddItem deducts stock and inserts the item atomically, then refreshes the
// invoice total from its items.
func (r *invoiceRepository) AddItem(ctx context.Context, item *domain.InvoiceItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, item.InvoiceID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check invoice: %w", err)
	}
	if !exists {
		return ErrInvoiceNotFound
	}

	if err := adjustStock(ctx, tx, item.ProductReference, item.Quantity); err != nil {
		return err
	}

	item.Subtotal = float64(item.Quantity) * item.UnitPrice
	err = tx.QueryRowContext(ctx, `
		INSERT INTO invoice_items (invoice_id, product_reference, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		item.InvoiceID,
		item.ProductReference,
		item.Quantity,
		item.UnitPrice,
		item.Subtotal,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create invoice item: %w", err)
	}

	if err := refreshTotal(ctx, tx, item.InvoiceID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateItemQuantity applies the quantity delta against locked stock: a
// positive delta must not exceed the available stock, a negative delta
// restores the difference.
func (r *invoiceRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*domain.InvoiceItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	item := &domain.InvoiceItem{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, invoice_id, product_reference, quantity, unit_price, subtotal
		FROM invoice_items
		WHERE id = $1
		FOR UPDATE
	`, itemID).Scan(
		&item.ID,
		&item.InvoiceID,
		&item.ProductReference,
		&item.Quantity,
		&item.UnitPrice,
		&item.Subtotal,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvoiceItemNotFound
		}
		return nil, fmt.Errorf("failed to lock invoice item: %w", err)
	}

	delta := quantity - item.Quantity
	if err := adjustStock(ctx, tx, item.ProductReference, delta); err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.Subtotal = float64(quantity) * item.UnitPrice
	_, err = tx.ExecContext(ctx,
		`UPDATE invoice_items SET quantity = $2, subtotal = $3 WHERE id = $1`,
		itemID, item.Quantity, item.Subtotal,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice item: %w", err)
	}

	if err := refreshTotal(ctx, tx, item.InvoiceID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return item, nil
}

// DeleteItem restores the deducted stock unconditionally and removes the row
func (r *invoiceRepository) DeleteItem(ctx context.Context, itemID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var invoiceID int64
	var reference string
	var quantity int
	err = tx.QueryRowContext(ctx, `
		SELECT invoice_id, product_reference, quantity
		FROM invoice_items
		WHERE id = $1
		FOR UPDATE
	`, itemID).Scan(&invoiceID, &reference, &quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrInvoiceItemNotFound
		}
		return fmt.Errorf("failed to lock invoice item: %w", err)
	}

	if err := adjustStock(ctx, tx, reference, -quantity); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete invoice item: %w", err)
	}

	if err := refreshTotal(ctx, tx, invoiceID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FindItemByID retrieves a single invoice item
func (r *invoiceRepository) FindItemByID(ctx context.Context, itemID int64) (*domain.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_reference, quantity, unit_price, subtotal
		FROM invoice_items
		WHERE id = $1
	`

	item := &domain.InvoiceItem{}
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.InvoiceID,
		&item.ProductReference,
		&item.Quantity,
		&item.UnitPrice,
		&item.Subtotal,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvoiceItemNotFound
		}
		return nil, fmt.Errorf("failed to find invoice item by ID: %w", err)
	}

	return item, nil
}

// ListItems retrieves the items of one invoice
func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID int64) ([]*domain.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_reference, quantity, unit_price, subtotal
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id ASC
	`

	return r.queryItems(ctx, query, invoiceID)
}

// ListAllItems retrieves every invoice item across invoices
func (r *invoiceRepository) ListAllItems(ctx context.Context) ([]*domain.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_reference, quantity, unit_price, subtotal
		FROM invoice_items
		ORDER BY id ASC
	`

	return r.queryItems(ctx, query)
}

func (r *invoiceRepository) queryItems(ctx context.Context, query string, args ...interface{}) ([]*domain.InvoiceItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	defer rows.Close()

	items := []*domain.InvoiceItem{}
	for rows.Next() {
		item := &domain.InvoiceItem{}
		err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.ProductReference,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice items: %w", err)
	}

	return items, nil
}
