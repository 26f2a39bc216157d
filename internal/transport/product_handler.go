package transport

import (
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest represents a product creation payload. Stock is the
// initial stock level; later stock changes happen only through sales.
type CreateProductRequest struct {
	Name       string  `json:"name" validate:"required"`
	CostPrice  float64 `json:"cost_price" validate:"gte=0"`
	SalePrice  float64 `json:"sale_price" validate:"gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
	SupplierID int64   `json:"supplier_id" validate:"required"`
	CategoryID *int64  `json:"category_id"`
	BrandID    *int64  `json:"brand_id"`
	ImageURL   string  `json:"image_url" validate:"omitempty,url"`
	Active     *bool   `json:"active"`
}

// UpdateProductRequest represents a partial product update. Absent fields
// keep their current values; stock is never updatable here.
type UpdateProductRequest struct {
	Name       *string  `json:"name"`
	CostPrice  *float64 `json:"cost_price" validate:"omitempty,gte=0"`
	SalePrice  *float64 `json:"sale_price" validate:"omitempty,gte=0"`
	SupplierID *int64   `json:"supplier_id"`
	CategoryID *int64   `json:"category_id"`
	BrandID    *int64   `json:"brand_id"`
	ImageURL   *string  `json:"image_url" validate:"omitempty,url"`
	Active     *bool    `json:"active"`
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productRepo repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{productRepo: productRepo, logger: logger}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/productos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{reference}", h.Get)
		r.Put("/{reference}", h.Update)
		r.Patch("/{reference}", h.Update)
		r.Delete("/{reference}", h.Delete)
	})
}

// List returns products. With ?pos=true only active products with stock are
// returned, ordered by name for the sale screen.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		products []*domain.Product
		err      error
	)

	if r.URL.Query().Get("pos") == "true" {
		products, err = h.productRepo.ListForSale(r.Context())
	} else {
		products, err = h.productRepo.List(r.Context())
	}
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create creates a product, assigning its reference
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product := &domain.Product{
		Name:       req.Name,
		CostPrice:  req.CostPrice,
		SalePrice:  req.SalePrice,
		Stock:      req.Stock,
		SupplierID: req.SupplierID,
		CategoryID: req.CategoryID,
		BrandID:    req.BrandID,
		ImageURL:   req.ImageURL,
		Active:     active,
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("reference", product.Reference))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Get returns one product by reference
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	product, err := h.productRepo.FindByReference(r.Context(), reference)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update applies a partial update to a product. Stock is deliberately not
// updatable through this endpoint.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productRepo.FindByReference(r.Context(), reference)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.SupplierID != nil {
		product.SupplierID = *req.SupplierID
	}
	if req.CategoryID != nil {
		product.CategoryID = req.CategoryID
	}
	if req.BrandID != nil {
		product.BrandID = req.BrandID
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete deletes a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	if err := h.productRepo.Delete(r.Context(), reference); err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
