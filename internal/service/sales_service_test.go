package service

import (
	"context"
	"testing"

	"github.com/JSebastianB25/Web-Project/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSale_DefaultsUnitPriceFromProduct(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	productRepo := newMockProductRepository()
	svc := NewSalesService(invoiceRepo, productRepo)
	ctx := context.Background()

	require.NoError(t, productRepo.Create(ctx, &domain.Product{
		Reference: "REF-1",
		Name:      "Licencia",
		SalePrice: 12.50,
		Stock:     10,
		Active:    true,
	}))

	invoice, err := svc.CreateSale(ctx, 1, 1, 1, []SaleItemInput{
		{ProductReference: "REF-1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)

	require.Len(t, invoiceRepo.createdItems, 1)
	assert.InDelta(t, 12.50, invoiceRepo.createdItems[0].UnitPrice, 0.001)
}

func TestCreateSale_KeepsExplicitUnitPrice(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	productRepo := newMockProductRepository()
	svc := NewSalesService(invoiceRepo, productRepo)

	_, err := svc.CreateSale(context.Background(), 1, 1, 1, []SaleItemInput{
		{ProductReference: "REF-1", Quantity: 2, UnitPrice: 8.00},
	})
	require.NoError(t, err)

	// no product lookup happens when the price is given
	require.Len(t, invoiceRepo.createdItems, 1)
	assert.InDelta(t, 8.00, invoiceRepo.createdItems[0].UnitPrice, 0.001)
}

func TestCreateSale_RejectsEmptyAndInvalidQuantities(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	svc := NewSalesService(invoiceRepo, newMockProductRepository())
	ctx := context.Background()

	_, err := svc.CreateSale(ctx, 1, 1, 1, nil)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = svc.CreateSale(ctx, 1, 1, 1, []SaleItemInput{
		{ProductReference: "REF-1", Quantity: 0, UnitPrice: 8.00},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateSale(ctx, 1, 1, 1, []SaleItemInput{
		{ProductReference: "REF-1", Quantity: -3, UnitPrice: 8.00},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Nil(t, invoiceRepo.created, "no invoice may be created for rejected input")
}

func TestUpdateItemQuantity_RejectsNonPositive(t *testing.T) {
	svc := NewSalesService(newMockInvoiceRepository(), newMockProductRepository())

	_, err := svc.UpdateItemQuantity(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestUpdateInvoice_NilFieldsKeepCurrentValues(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	svc := NewSalesService(invoiceRepo, newMockProductRepository())
	ctx := context.Background()

	invoiceRepo.invoices[4] = &domain.Invoice{ID: 4, ClientID: 1, PaymentMethodID: 2, Status: domain.InvoiceStatusPending}

	newClient := int64(9)
	updated, err := svc.UpdateInvoice(ctx, 4, &newClient, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.ClientID)
	assert.Equal(t, int64(2), updated.PaymentMethodID)

	newMethod := int64(5)
	updated, err = svc.UpdateInvoice(ctx, 4, nil, &newMethod)
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.ClientID)
	assert.Equal(t, int64(5), updated.PaymentMethodID)
}

func TestUpdateInvoice_UnknownInvoice(t *testing.T) {
	svc := NewSalesService(newMockInvoiceRepository(), newMockProductRepository())

	newClient := int64(9)
	_, err := svc.UpdateInvoice(context.Background(), 42, &newClient, nil)
	assert.Error(t, err)
}

func TestDeleteInvoice_AlwaysForbidden(t *testing.T) {
	invoiceRepo := newMockInvoiceRepository()
	svc := NewSalesService(invoiceRepo, newMockProductRepository())

	invoiceRepo.invoices[7] = &domain.Invoice{ID: 7}

	err := svc.DeleteInvoice(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvoiceDeleteForbidden)

	// a missing invoice reports not found instead
	err = svc.DeleteInvoice(context.Background(), 99)
	assert.NotErrorIs(t, err, ErrInvoiceDeleteForbidden)
	assert.Error(t, err)
}
