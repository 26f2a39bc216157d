package transport

import (
	"errors"
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"
	"github.com/JSebastianB25/Web-Project/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SaleItemRequest represents one line of a sale
type SaleItemRequest struct {
	ProductReference string  `json:"product_reference" validate:"required"`
	Quantity         int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice        float64 `json:"unit_price" validate:"gte=0"`
}

// CreateSaleRequest represents a sale creation payload
type CreateSaleRequest struct {
	ClientID        int64             `json:"client_id" validate:"required"`
	PaymentMethodID int64             `json:"payment_method_id" validate:"required"`
	Items           []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest represents a partial invoice update payload. Only the
// client and payment method can change; totals, numbers and status have their
// own operations.
type UpdateInvoiceRequest struct {
	ClientID        *int64 `json:"client_id"`
	PaymentMethodID *int64 `json:"payment_method_id"`
}

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	salesService  service.SalesService
	invoiceMailer service.InvoiceMailer
	logger        *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(salesService service.SalesService, invoiceMailer service.InvoiceMailer, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		salesService:  salesService,
		invoiceMailer: invoiceMailer,
		logger:        logger,
	}
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/facturas", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/completar", h.Complete)
		r.Post("/{id}/anular", h.Void)
		r.Post("/{id}/send_pdf_email", h.SendPDFEmail)
		r.Get("/{id}/detalles", h.ListItems)
	})
}

// List returns all invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.salesService.ListInvoices(r.Context())
	if err != nil {
		h.logger.Error("Failed to list invoices", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list invoices")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, invoices)
}

// Create records a sale: a pending invoice plus its items, deducting stock
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items := make([]service.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.SaleItemInput{
			ProductReference: item.ProductReference,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
		})
	}

	invoice, err := h.salesService.CreateSale(r.Context(), req.ClientID, req.PaymentMethodID, userID, items)
	if err != nil {
		switch err {
		case repository.ErrInsufficientStock:
			middleware.RespondWithError(w, http.StatusBadRequest, "insufficient stock")
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusBadRequest, "product not found")
		case service.ErrInvalidQuantity, service.ErrNoItems:
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to create sale", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create sale")
		}
		return
	}

	h.logger.Info("Sale recorded",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber))
	middleware.RespondWithJSON(w, http.StatusCreated, invoice)
}

// Get returns one invoice with client, payment method and product names
// resolved
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	detail, err := h.salesService.GetInvoiceDetail(r.Context(), id)
	if err != nil {
		if err == repository.ErrInvoiceNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("Failed to get invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get invoice")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

// Update reassigns the invoice's client and/or payment method
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	var req UpdateInvoiceRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invoice, err := h.salesService.UpdateInvoice(r.Context(), id, req.ClientID, req.PaymentMethodID)
	if err != nil {
		if err == repository.ErrInvoiceNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("Failed to update invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update invoice")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, invoice)
}

// Delete always refuses: invoices are voided, never removed
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	if err := h.salesService.DeleteInvoice(r.Context(), id); err != nil {
		if err == repository.ErrInvoiceNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
			return
		}
		if err == service.ErrInvoiceDeleteForbidden {
			middleware.RespondWithError(w, http.StatusMethodNotAllowed, err.Error())
			return
		}
		h.logger.Error("Failed to delete invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete invoice")
		return
	}
}

// Complete marks a pending invoice as completed
func (h *InvoiceHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	if err := h.salesService.CompleteInvoice(r.Context(), id); err != nil {
		switch err {
		case repository.ErrInvoiceNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
		case repository.ErrInvoiceNotPending:
			middleware.RespondWithError(w, http.StatusBadRequest, "only pending invoices can be completed")
		default:
			h.logger.Error("Failed to complete invoice", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to complete invoice")
		}
		return
	}

	h.logger.Info("Invoice completed", zap.Int64("invoice_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "invoice completed"})
}

// Void voids an invoice and restores the stock its items consumed
func (h *InvoiceHandler) Void(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	if err := h.salesService.VoidInvoice(r.Context(), id); err != nil {
		switch err {
		case repository.ErrInvoiceNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
		case repository.ErrInvoiceAlreadyVoided:
			middleware.RespondWithError(w, http.StatusBadRequest, "invoice is already voided")
		default:
			h.logger.Error("Failed to void invoice", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to void invoice")
		}
		return
	}

	h.logger.Info("Invoice voided", zap.Int64("invoice_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "invoice voided, stock restored"})
}

// SendPDFEmail renders the invoice to PDF and emails it to the client
func (h *InvoiceHandler) SendPDFEmail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	recipient, err := h.invoiceMailer.SendInvoice(r.Context(), id)
	if err != nil {
		switch {
		case err == repository.ErrInvoiceNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
		case err == service.ErrClientHasNoEmail:
			middleware.RespondWithError(w, http.StatusBadRequest, "client has no email address")
		case errors.Is(err, service.ErrRenderFailed):
			h.logger.Error("Failed to render invoice pdf", zap.Int64("invoice_id", id), zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render invoice pdf")
		default:
			h.logger.Error("Failed to send invoice email", zap.Int64("invoice_id", id), zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to send invoice email")
		}
		return
	}

	h.logger.Info("Invoice emailed", zap.Int64("invoice_id", id), zap.String("recipient", recipient))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message":   "invoice sent",
		"recipient": recipient,
	})
}

// ListItems returns the line items of one invoice
func (h *InvoiceHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}

	if _, err := h.salesService.GetInvoice(r.Context(), id); err != nil {
		if err == repository.ErrInvoiceNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "invoice not found")
			return
		}
		h.logger.Error("Failed to get invoice", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get invoice")
		return
	}

	items, err := h.salesService.ListItems(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list invoice items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list invoice items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}
