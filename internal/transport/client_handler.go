package transport

import (
	"net/http"

	"github.com/JSebastianB25/Web-Project/internal/domain"
	"github.com/JSebastianB25/Web-Project/internal/middleware"
	"github.com/JSebastianB25/Web-Project/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClientRequest represents a client create/update payload
type ClientRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ClientHandler handles HTTP requests for clients
type ClientHandler struct {
	clientRepo repository.ClientRepository
	logger     *zap.Logger
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientRepo repository.ClientRepository, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo, logger: logger}
}

// RegisterRoutes registers all client routes
func (h *ClientHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/clientes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns all clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientRepo.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, clients)
}

// Create creates a client
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := &domain.Client{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := h.clientRepo.Create(r.Context(), client); err != nil {
		if err == repository.ErrClientAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "client with this email already exists")
			return
		}
		h.logger.Error("Failed to create client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create client")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, client)
}

// Get returns one client by id
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	client, err := h.clientRepo.FindByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrClientNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("Failed to get client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get client")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, client)
}

// Update updates a client
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	var req ClientRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client := &domain.Client{ID: id, Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := h.clientRepo.Update(r.Context(), client); err != nil {
		if err == repository.ErrClientNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "client not found")
			return
		}
		if err == repository.ErrClientAlreadyExists {
			middleware.RespondWithError(w, http.StatusConflict, "client with this email already exists")
			return
		}
		h.logger.Error("Failed to update client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update client")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, client)
}

// Delete deletes a client
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.clientRepo.Delete(r.Context(), id); err != nil {
		if err == repository.ErrClientNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("Failed to delete client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
