package transport

import (
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RoleRequest represents a role create/update payload
type RoleRequest struct {
	Name string `json:"name" validate:"required"`
}

// RoleHandler handles HTTP requests for roles
type RoleHandler struct {
	roleRepo repository.RoleRepository
	logger   *zap.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleRepo repository.RoleRepository, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, logger: logger}
}

// RegisterRoutes registers all role routes. Mutations require the
// manage_roles permission.
func (h *RoleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/roles", func(r chi.Router) {
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

// List returns all roles with their permissions
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list roles", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, roles)
}

// Create creates a role
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := &domain.Role{Name: req.Name}
	if err := h.roleRepo.Create(r.Context(), role); err != nil {
		h.logger.Error("Failed to create role", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create role")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, role)
}

// Get returns one role with its permissions
func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	role, err := h.roleRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrRoleNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "role not found")
			return
		}
		h.logger.Error("Failed to get role", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get role")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, role)
}

// Update updates a role
func (h *RoleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	var req RoleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role := &domain.Role{ID: id, Name: req.Name}
	if err := h.roleRepo.Update(r.Context(), role); err != nil {
		if err == repository.ErrRoleNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "role not found")
			return
		}
		h.logger.Error("Failed to update role", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, role)
}

// Delete deletes a role and, through the schema, its permissions
func (h *RoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	if err := h.roleRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrRoleNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "role not found")
			return
		}
		h.logger.Error("Failed to delete role", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
