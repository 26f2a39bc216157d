package transport

import (
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"
	"github.com/JSebastianB25/Web-Project/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddSaleItemRequest represents a payload adding a line to an existing
// invoice
type AddSaleItemRequest struct {
	InvoiceID        int64   `json:"invoice_id" validate:"required"`
	ProductReference string  `json:"product_reference" validate:"required"`
	Quantity         int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice        float64 `json:"unit_price" validate:"gte=0"`
}

// UpdateSaleItemRequest represents a line quantity change
type UpdateSaleItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// SaleItemHandler handles HTTP requests for individual invoice lines
type SaleItemHandler struct {
	salesService service.SalesService
	logger       *zap.Logger
}

// NewSaleItemHandler creates a new SaleItemHandler
func NewSaleItemHandler(salesService service.SalesService, logger *zap.Logger) *SaleItemHandler {
	return &SaleItemHandler{salesService: salesService, logger: logger}
}

// RegisterRoutes registers all sale item routes
func (h *SaleItemHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/detalle_ventas", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns every recorded sale line
func (h *SaleItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.salesService.ListAllItems(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sale items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sale items")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// Create adds a line to an existing invoice, deducting stock atomically
func (h *SaleItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AddSaleItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.salesService.AddItem(r.Context(), req.InvoiceID, service.SaleItemInput{
		ProductReference: req.ProductReference,
		Quantity:         req.Quantity,
		UnitPrice:        req.UnitPrice,
	})
	if err != nil {
		switch err {
		case repository.ErrInsufficientStock:
			middleware.RespondWithError(w, http.StatusBadRequest, "insufficient stock")
		case repository.ErrInvoiceNotFound:
			middleware.RespondWithError(w, http.StatusBadRequest, "invoice not found")
		case repository.ErrProductNotFound:
			middleware.RespondWithError(w, http.StatusBadRequest, "product not found")
		case service.ErrInvalidQuantity:
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to add sale item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add sale item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, item)
}

// Get returns one sale line by id
func (h *SaleItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale item id")
		return
	}

	item, err := h.salesService.GetItem(r.Context(), id)
	if err != nil {
		if err == repository.ErrInvoiceItemNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "sale item not found")
			return
		}
		h.logger.Error("Failed to get sale item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get sale item")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}

// Update changes a line's quantity, adjusting stock by the difference
func (h *SaleItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale item id")
		return
	}

	var req UpdateSaleItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.salesService.UpdateItemQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		switch err {
		case repository.ErrInvoiceItemNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "sale item not found")
		case repository.ErrInsufficientStock:
			middleware.RespondWithError(w, http.StatusBadRequest, "insufficient stock")
		case service.ErrInvalidQuantity:
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update sale item", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update sale item")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, item)
}

// Delete removes a line, returning its quantity to stock
func (h *SaleItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale item id")
		return
	}

	if err := h.salesService.DeleteItem(r.Context(), id); err != nil {
		if err == repository.ErrInvoiceItemNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "sale item not found")
			return
		}
		h.logger.Error("Failed to delete sale item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete sale item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
