package transport

import (
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SupplierRequest represents a supplier create/update payload
type SupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
}

// BrandRequest represents a brand create/update payload
type BrandRequest struct {
	Name     string `json:"name" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// CategoryRequest represents a category create/update payload
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// PaymentMethodRequest represents a payment method create/update payload
type PaymentMethodRequest struct {
	Method string `json:"method" validate:"required"`
}

// CatalogHandler handles HTTP requests for the small catalog resources:
// suppliers, brands, categories and payment methods
type CatalogHandler struct {
	supplierRepo      repository.SupplierRepository
	brandRepo         repository.BrandRepository
	categoryRepo      repository.CategoryRepository
	paymentMethodRepo repository.PaymentMethodRepository
	logger            *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	supplierRepo repository.SupplierRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	paymentMethodRepo repository.PaymentMethodRepository,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		supplierRepo:      supplierRepo,
		brandRepo:         brandRepo,
		categoryRepo:      categoryRepo,
		paymentMethodRepo: paymentMethodRepo,
		logger:            logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/proveedores", func(r chi.Router) {
		r.Get("/", h.ListSuppliers)
		r.Post("/", h.CreateSupplier)
		r.Get("/{id}", h.GetSupplier)
		r.Put("/{id}", h.UpdateSupplier)
		r.Patch("/{id}", h.UpdateSupplier)
		r.Delete("/{id}", h.DeleteSupplier)
	})
	r.Route("/api/marcas", func(r chi.Router) {
		r.Get("/", h.ListBrands)
		r.Post("/", h.CreateBrand)
		r.Get("/{id}", h.GetBrand)
		r.Put("/{id}", h.UpdateBrand)
		r.Patch("/{id}", h.UpdateBrand)
		r.Delete("/{id}", h.DeleteBrand)
	})
	r.Route("/api/categorias", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{id}", h.GetCategory)
		r.Put("/{id}", h.UpdateCategory)
		r.Patch("/{id}", h.UpdateCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
	r.Route("/api/formas_pago", func(r chi.Router) {
		r.Get("/", h.ListPaymentMethods)
		r.Post("/", h.CreatePaymentMethod)
		r.Get("/{id}", h.GetPaymentMethod)
		r.Put("/{id}", h.UpdatePaymentMethod)
		r.Patch("/{id}", h.UpdatePaymentMethod)
		r.Delete("/{id}", h.DeletePaymentMethod)
	})
}

// ListSuppliers returns all suppliers
func (h *CatalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.supplierRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list suppliers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list suppliers")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, suppliers)
}

// CreateSupplier creates a supplier
func (h *CatalogHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	supplier := &domain.Supplier{Name: req.Name, Contact: req.Contact}
	if err := h.supplierRepo.Create(r.Context(), supplier); err != nil {
		h.logger.Error("Failed to create supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, supplier)
}

// GetSupplier returns one supplier by id
func (h *CatalogHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	supplier, err := h.supplierRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrSupplierNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}
		h.logger.Error("Failed to get supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, supplier)
}

// UpdateSupplier updates a supplier
func (h *CatalogHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	var req SupplierRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	supplier := &domain.Supplier{ID: id, Name: req.Name, Contact: req.Contact}
	if err := h.supplierRepo.Update(r.Context(), supplier); err != nil {
		if err == repository.ErrSupplierNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}
		h.logger.Error("Failed to update supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, supplier)
}

// DeleteSupplier deletes a supplier
func (h *CatalogHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	if err := h.supplierRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrSupplierNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}
		h.logger.Error("Failed to delete supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete supplier")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBrands returns all brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list brands", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, brands)
}

// CreateBrand creates a brand
func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req BrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand := &domain.Brand{Name: req.Name, ImageURL: req.ImageURL}
	if err := h.brandRepo.Create(r.Context(), brand); err != nil {
		if err == repository.ErrBrandAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "brand with this name already exists")
			return
		}
		h.logger.Error("Failed to create brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, brand)
}

// GetBrand returns one brand by id
func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	brand, err := h.brandRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrBrandNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
			return
		}
		h.logger.Error("Failed to get brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

// UpdateBrand updates a brand
func (h *CatalogHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	var req BrandRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	brand := &domain.Brand{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	if err := h.brandRepo.Update(r.Context(), brand); err != nil {
		if err == repository.ErrBrandNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
			return
		}
		if err == repository.ErrBrandAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "brand with this name already exists")
			return
		}
		h.logger.Error("Failed to update brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update brand")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, brand)
}

// DeleteBrand deletes a brand
func (h *CatalogHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	if err := h.brandRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrBrandNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "brand not found")
			return
		}
		h.logger.Error("Failed to delete brand", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete brand")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories returns all categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory creates a category
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := &domain.Category{Name: req.Name}
	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// GetCategory returns one category by id
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.categoryRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrCategoryNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("Failed to get category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// UpdateCategory updates a category
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req CategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category := &domain.Category{ID: id, Name: req.Name}
	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		if err == repository.ErrCategoryNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("Failed to update category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// DeleteCategory deletes a category
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrCategoryNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("Failed to delete category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPaymentMethods returns all payment methods
func (h *CatalogHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.paymentMethodRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list payment methods", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list payment methods")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, methods)
}

// CreatePaymentMethod creates a payment method
func (h *CatalogHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	method := &domain.PaymentMethod{Method: req.Method}
	if err := h.paymentMethodRepo.Create(r.Context(), method); err != nil {
		h.logger.Error("Failed to create payment method", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create payment method")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, method)
}

// GetPaymentMethod returns one payment method by id
func (h *CatalogHandler) GetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment method id")
		return
	}

	method, err := h.paymentMethodRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrPaymentMethodNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "payment method not found")
			return
		}
		h.logger.Error("Failed to get payment method", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get payment method")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, method)
}

// UpdatePaymentMethod updates a payment method
func (h *CatalogHandler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment method id")
		return
	}

	var req PaymentMethodRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	method := &domain.PaymentMethod{ID: id, Method: req.Method}
	if err := h.paymentMethodRepo.Update(r.Context(), method); err != nil {
		if err == repository.ErrPaymentMethodNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "payment method not found")
			return
		}
		h.logger.Error("Failed to update payment method", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update payment method")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, method)
}

// DeletePaymentMethod deletes a payment method
func (h *CatalogHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid payment method id")
		return
	}

	if err := h.paymentMethodRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrPaymentMethodNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "payment method not found")
			return
		}
		h.logger.Error("Failed to delete payment method", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete payment method")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
