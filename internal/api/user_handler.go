package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/clinic-api/internal/api/shared"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

// SimulatedResponse is returned by users-api write endpoints, which accept a
// request but never persist it.
type SimulatedResponse struct {
	Message string         `json:"message"`
	ID      int64          `json:"id,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// UserHandler handles /users requests over a read-only source.
type UserHandler struct {
	users  store.UserReader
	errors ErrorPolicy
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users store.UserReader, policy ErrorPolicy, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		errors: policy,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// Routes mounts the user endpoints on r.
func (h *UserHandler) Routes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Create handles POST /users. Nothing is stored.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("simulated user create")
	shared.RespondWithJSON(w, r, http.StatusCreated, SimulatedResponse{
		Message: "simulated: user would be created",
		Payload: payload,
	})
}

// Update handles PUT /users/{id}. Nothing is stored.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.existingID(w, r)
	if !ok {
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("simulated user update", slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, SimulatedResponse{
		Message: "simulated: user would be updated",
		ID:      id,
		Payload: payload,
	})
}

// Delete handles DELETE /users/{id}. Nothing is removed.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.existingID(w, r)
	if !ok {
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Info("simulated user delete", slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, SimulatedResponse{
		Message: "simulated: user would be deleted",
		ID:      id,
	})
}

// existingID parses {id} and checks that the user exists, writing the error
// response when it does not.
func (h *UserHandler) existingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return 0, false
	}
	if _, err := h.users.GetByID(r.Context(), id); err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return 0, false
	}
	return id, true
}

func (h *UserHandler) decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	payload := map[string]any{}
	if err := shared.DecodeJSON(r, &payload); err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return nil, false
	}
	return payload, true
}
