package transport

import (
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PermissionRequest represents a permission create/update payload
type PermissionRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	RoleID      int64  `json:"role_id" validate:"required"`
}

// PermissionHandler handles HTTP requests for permissions
type PermissionHandler struct {
	permissionRepo repository.PermissionRepository
	logger         *zap.Logger
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissionRepo repository.PermissionRepository, logger *zap.Logger) *PermissionHandler {
	return &PermissionHandler{permissionRepo: permissionRepo, logger: logger}
}

// RegisterRoutes registers all permission routes. Mutations require the
// manage_roles permission since permissions belong to roles.
func (h *PermissionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/permisos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePermission("manage_roles", h.logger))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List returns all permissions
func (h *PermissionHandler) List(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.permissionRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list permissions", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list permissions")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, permissions)
}

// Create creates a permission under a role
func (h *PermissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req PermissionRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permission := &domain.Permission{Name: req.Name, Description: req.Description, RoleID: req.RoleID}
	if err := h.permissionRepo.Create(r.Context(), permission); err != nil {
		h.logger.Error("Failed to create permission", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create permission")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, permission)
}

// Get returns one permission by id
func (h *PermissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	permission, err := h.permissionRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrPermissionNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "permission not found")
			return
		}
		h.logger.Error("Failed to get permission", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get permission")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, permission)
}

// Update updates a permission
func (h *PermissionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	var req PermissionRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permission := &domain.Permission{ID: id, Name: req.Name, Description: req.Description, RoleID: req.RoleID}
	if err := h.permissionRepo.Update(r.Context(), permission); err != nil {
		if err == repository.ErrPermissionNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "permission not found")
			return
		}
		h.logger.Error("Failed to update permission", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update permission")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, permission)
}

// Delete deletes a permission
func (h *PermissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	if err := h.permissionRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrPermissionNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "permission not found")
			return
		}
		h.logger.Error("Failed to delete permission", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete permission")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
