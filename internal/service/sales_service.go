package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/repository"
)

var (
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero")
	ErrNoItems                = errors.New("invoice must contain at least one item")
	ErrInvoiceDeleteForbidden = errors.New("invoices cannot be deleted, void them instead")
)

// SaleItemInput describes one line of a sale to be recorded
type SaleItemInput struct {
	ProductReference string
	Quantity         int
	UnitPrice        float64
}

// SalesService defines the interface for sale and invoice business logic
type SalesService interface {
	CreateSale(ctx context.Context, clientID, paymentMethodID, userID int64, items []SaleItemInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
	GetInvoiceDetail(ctx context.Context, id int64) (*domain.InvoiceDetail, error)
	ListInvoices(ctx context.Context) ([]*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, clientID, paymentMethodID *int64) (*domain.Invoice, error)
	CompleteInvoice(ctx context.Context, id int64) error
	VoidInvoice(ctx context.Context, id int64) error
	DeleteInvoice(ctx context.Context, id int64) error

	AddItem(ctx context.Context, invoiceID int64, item SaleItemInput) (*domain.InvoiceItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*domain.InvoiceItem, error)
	DeleteItem(ctx context.Context, itemID int64) error
	GetItem(ctx context.Context, itemID int64) (*domain.InvoiceItem, error)
	ListItems(ctx context.Context, invoiceID int64) ([]*domain.InvoiceItem, error)
	ListAllItems(ctx context.Context) ([]*domain.InvoiceItem, error)
}

type salesService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
}

// NewSalesService creates a new instance of SalesService
func NewSalesService(invoiceRepo repository.InvoiceRepository, productRepo repository.ProductRepository) SalesService {
	return &salesService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
	}
}

// CreateSale records a sale: it creates a pending invoice and its items,
// deducting stock atomically. When an item carries no unit price the
// product's current sale price is used.
func (s *salesService) CreateSale(ctx context.Context, clientID, paymentMethodID, userID int64, items []SaleItemInput) (*domain.Invoice, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	invoiceItems := make([]*domain.InvoiceItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			product, err := s.productRepo.FindByReference(ctx, item.ProductReference)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve product price: %w", err)
			}
			unitPrice = product.SalePrice
		}

		invoiceItems = append(invoiceItems, &domain.InvoiceItem{
			ProductReference: item.ProductReference,
			Quantity:         item.Quantity,
			UnitPrice:        unitPrice,
		})
	}

	invoice := &domain.Invoice{
		IssuedAt:        time.Now(),
		ClientID:        clientID,
		PaymentMethodID: paymentMethodID,
		Status:          domain.InvoiceStatusPending,
		UserID:          userID,
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice, invoiceItems); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice with its items
func (s *salesService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// GetInvoiceDetail retrieves an invoice with client, payment method, user and
// product names resolved
func (s *salesService) GetInvoiceDetail(ctx context.Context, id int64) (*domain.InvoiceDetail, error) {
	return s.invoiceRepo.FindDetail(ctx, id)
}

// ListInvoices returns all invoices, newest first
func (s *salesService) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	return s.invoiceRepo.List(ctx)
}

// UpdateInvoice reassigns the invoice's client and/or payment method. Nil
// fields keep their current value.
func (s *salesService) UpdateInvoice(ctx context.Context, id int64, clientID, paymentMethodID *int64) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if clientID != nil {
		invoice.ClientID = *clientID
	}
	if paymentMethodID != nil {
		invoice.PaymentMethodID = *paymentMethodID
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// CompleteInvoice marks a pending invoice as completed
func (s *salesService) CompleteInvoice(ctx context.Context, id int64) error {
	return s.invoiceRepo.Complete(ctx, id)
}

// VoidInvoice voids an invoice, restoring the stock its items consumed
func (s *salesService) VoidInvoice(ctx context.Context, id int64) error {
	return s.invoiceRepo.Void(ctx, id)
}

// DeleteInvoice always fails: invoices are an audit record and must be
// voided, never removed.
func (s *salesService) DeleteInvoice(ctx context.Context, id int64) error {
	if _, err := s.invoiceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return ErrInvoiceDeleteForbidden
}

// AddItem appends a line to an existing invoice, deducting stock
func (s *salesService) AddItem(ctx context.Context, invoiceID int64, input SaleItemInput) (*domain.InvoiceItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	unitPrice := input.UnitPrice
	if unitPrice == 0 {
		product, err := s.productRepo.FindByReference(ctx, input.ProductReference)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve product price: %w", err)
		}
		unitPrice = product.SalePrice
	}

	item := &domain.InvoiceItem{
		InvoiceID:        invoiceID,
		ProductReference: input.ProductReference,
		Quantity:         input.Quantity,
		UnitPrice:        unitPrice,
	}

	if err := s.invoiceRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItemQuantity changes a line's quantity, adjusting stock by the
// difference
func (s *salesService) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*domain.InvoiceItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.invoiceRepo.UpdateItemQuantity(ctx, itemID, quantity)
}

// DeleteItem removes a line from an invoice, returning its quantity to stock
func (s *salesService) DeleteItem(ctx context.Context, itemID int64) error {
	return s.invoiceRepo.DeleteItem(ctx, itemID)
}

// GetItem retrieves a single invoice line
func (s *salesService) GetItem(ctx context.Context, itemID int64) (*domain.InvoiceItem, error) {
	return s.invoiceRepo.FindItemByID(ctx, itemID)
}

// ListItems returns the lines of one invoice
func (s *salesService) ListItems(ctx context.Context, invoiceID int64) ([]*domain.InvoiceItem, error) {
	return s.invoiceRepo.ListItems(ctx, invoiceID)
}

// ListAllItems returns every recorded sale line
func (s *salesService) ListAllItems(ctx context.Context) ([]*domain.InvoiceItem, error) {
	return s.invoiceRepo.ListAllItems(ctx)
}
