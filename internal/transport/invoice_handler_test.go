package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"
	"github.com/JSebastianB25/Web-Project/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSalesService returns canned results; each err field forces the
// corresponding operation to fail
type fakeSalesService struct {
	invoice   *domain.Invoice
	detail    *domain.InvoiceDetail
	createErr error
	stateErr  error
}

func (s *fakeSalesService) CreateSale(ctx context.Context, clientID, paymentMethodID, userID int64, items []service.SaleItemInput) (*domain.Invoice, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.invoice, nil
}

func (s *fakeSalesService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	if s.invoice == nil || s.invoice.ID != id {
		return nil, repository.ErrInvoiceNotFound
	}
	return s.invoice, nil
}

func (s *fakeSalesService) GetInvoiceDetail(ctx context.Context, id int64) (*domain.InvoiceDetail, error) {
	if s.detail == nil {
		return nil, repository.ErrInvoiceNotFound
	}
	return s.detail, nil
}

func (s *fakeSalesService) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	if s.invoice == nil {
		return []*domain.Invoice{}, nil
	}
	return []*domain.Invoice{s.invoice}, nil
}

func (s *fakeSalesService) UpdateInvoice(ctx context.Context, id int64, clientID, paymentMethodID *int64) (*domain.Invoice, error) {
	if s.invoice == nil || s.invoice.ID != id {
		return nil, repository.ErrInvoiceNotFound
	}
	if clientID != nil {
		s.invoice.ClientID = *clientID
	}
	if paymentMethodID != nil {
		s.invoice.PaymentMethodID = *paymentMethodID
	}
	return s.invoice, nil
}

func (s *fakeSalesService) CompleteInvoice(ctx context.Context, id int64) error { return s.stateErr }
func (s *fakeSalesService) VoidInvoice(ctx context.Context, id int64) error     { return s.stateErr }

func (s *fakeSalesService) DeleteInvoice(ctx context.Context, id int64) error {
	if s.invoice == nil || s.invoice.ID != id {
		return repository.ErrInvoiceNotFound
	}
	return service.ErrInvoiceDeleteForbidden
}

func (s *fakeSalesService) AddItem(ctx context.Context, invoiceID int64, item service.SaleItemInput) (*domain.InvoiceItem, error) {
	return nil, repository.ErrInvoiceNotFound
}

func (s *fakeSalesService) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) (*domain.InvoiceItem, error) {
	return nil, repository.ErrInvoiceItemNotFound
}

func (s *fakeSalesService) DeleteItem(ctx context.Context, itemID int64) error {
	return repository.ErrInvoiceItemNotFound
}

func (s *fakeSalesService) GetItem(ctx context.Context, itemID int64) (*domain.InvoiceItem, error) {
	return nil, repository.ErrInvoiceItemNotFound
}

func (s *fakeSalesService) ListItems(ctx context.Context, invoiceID int64) ([]*domain.InvoiceItem, error) {
	return []*domain.InvoiceItem{}, nil
}

func (s *fakeSalesService) ListAllItems(ctx context.Context) ([]*domain.InvoiceItem, error) {
	return []*domain.InvoiceItem{}, nil
}

type fakeInvoiceMailer struct {
	recipient string
	err       error
}

func (m *fakeInvoiceMailer) SendInvoice(ctx context.Context, invoiceID int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.recipient, nil
}

// newInvoiceRouter wires the handler behind a middleware that injects the
// authenticated user id, the way the auth middleware does in production
func newInvoiceRouter(sales service.SalesService, mailer service.InvoiceMailer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, int64(1))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	NewInvoiceHandler(sales, mailer, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestCreateSale_Success(t *testing.T) {
	sales := &fakeSalesService{
		invoice: &domain.Invoice{ID: 1, InvoiceNumber: "00000000001", Status: domain.InvoiceStatusPending, Total: 25.00},
	}
	router := newInvoiceRouter(sales, &fakeInvoiceMailer{})

	body := `{"client_id": 1, "payment_method_id": 1, "items": [{"product_reference": "REF-1", "quantity": 2, "unit_price": 12.50}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/facturas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "00000000001")
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	sales := &fakeSalesService{createErr: repository.ErrInsufficientStock}
	router := newInvoiceRouter(sales, &fakeInvoiceMailer{})

	body := `{"client_id": 1, "payment_method_id": 1, "items": [{"product_reference": "REF-1", "quantity": 999}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/facturas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient stock")
}

func TestCreateSale_EmptyItemsRejected(t *testing.T) {
	router := newInvoiceRouter(&fakeSalesService{}, &fakeInvoiceMailer{})

	body := `{"client_id": 1, "payment_method_id": 1, "items": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/facturas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateInvoice_ChangesClientKeepingPaymentMethod(t *testing.T) {
	sales := &fakeSalesService{
		invoice: &domain.Invoice{ID: 3, InvoiceNumber: "00000000003", ClientID: 1, PaymentMethodID: 2, Status: domain.InvoiceStatusPending},
	}
	router := newInvoiceRouter(sales, &fakeInvoiceMailer{})

	body := `{"client_id": 7}`
	req := httptest.NewRequest(http.MethodPatch, "/api/facturas/3", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), sales.invoice.ClientID)
	assert.Equal(t, int64(2), sales.invoice.PaymentMethodID)
}

func TestUpdateInvoice_NotFound(t *testing.T) {
	router := newInvoiceRouter(&fakeSalesService{}, &fakeInvoiceMailer{})

	body := `{"client_id": 7}`
	req := httptest.NewRequest(http.MethodPut, "/api/facturas/99", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteInvoice_AlwaysRefused(t *testing.T) {
	sales := &fakeSalesService{
		invoice: &domain.Invoice{ID: 5, InvoiceNumber: "00000000005", Status: domain.InvoiceStatusCompleted},
	}
	router := newInvoiceRouter(sales, &fakeInvoiceMailer{})

	req := httptest.NewRequest(http.MethodDelete, "/api/facturas/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	router := newInvoiceRouter(&fakeSalesService{}, &fakeInvoiceMailer{})

	req := httptest.NewRequest(http.MethodDelete, "/api/facturas/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteInvoice_NotPending(t *testing.T) {
	sales := &fakeSalesService{stateErr: repository.ErrInvoiceNotPending}
	router := newInvoiceRouter(sales, &fakeInvoiceMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/facturas/1/completar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "only pending invoices can be completed")
}

func TestVoidInvoice_AlreadyVoided(t *testing.T) {
	sales := &fakeSalesService{stateErr: repository.ErrInvoiceAlreadyVoided}
	router := newInvoiceRouter(sales, &fakeInvoiceMailer{})

	req := httptest.NewRequest(http.MethodPost, "/api/facturas/1/anular", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already voided")
}

func TestSendPDFEmail_Success(t *testing.T) {
	router := newInvoiceRouter(&fakeSalesService{}, &fakeInvoiceMailer{recipient: "cliente@example.com"})

	req := httptest.NewRequest(http.MethodPost, "/api/facturas/1/send_pdf_email", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cliente@example.com")
}

func TestSendPDFEmail_ClientHasNoEmail(t *testing.T) {
	router := newInvoiceRouter(&fakeSalesService{}, &fakeInvoiceMailer{err: service.ErrClientHasNoEmail})

	req := httptest.NewRequest(http.MethodPost, "/api/facturas/1/send_pdf_email", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "client has no email address")
}

func TestSendPDFEmail_InvoiceNotFound(t *testing.T) {
	router := newInvoiceRouter(&fakeSalesService{}, &fakeInvoiceMailer{err: repository.ErrInvoiceNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/facturas/1/send_pdf_email", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
