package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/clinic-api/internal/api/shared"
	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/store"
)

// DoctorHandler handles /doctors requests.
type DoctorHandler struct {
	doctors store.DoctorStore
	errors  ErrorPolicy
	logger  *slog.Logger
}

// NewDoctorHandler creates a DoctorHandler.
func NewDoctorHandler(doctors store.DoctorStore, policy ErrorPolicy, logger *slog.Logger) *DoctorHandler {
	if doctors == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("doctors cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DoctorHandler{
		doctors: doctors,
		errors:  policy,
		logger:  logger.With(slog.String("component", "doctor_handler")),
	}
}

// Routes mounts the doctor endpoints on r.
func (h *DoctorHandler) Routes(r chi.Router) {
	r.Route("/doctors", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /doctors.
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctors.List(r.Context())
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, doctors)
}

// Get handles GET /doctors/{id}.
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}

	doctor, err := h.doctors.GetByID(r.Context(), id)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, doctor)
}

// Create handles POST /doctors. A duplicate email is a 500 unless the
// policy enables strict conflicts.
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewDoctor
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return
	}

	doctor, err := h.doctors.Create(r.Context(), req)
	if err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, doctor)
}

// Update handles PUT /doctors/{id}.
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}

	var patch domain.DoctorPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}
	if err := shared.ValidateRequest(patch); err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}

	doctor, err := h.doctors.Update(r.Context(), id, patch)
	if err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, doctor)
}

// Delete handles DELETE /doctors/{id}.
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgDeleteFailed)
		return
	}

	if err := h.doctors.Delete(r.Context(), id); err != nil {
		h.errors.respondError(w, r, err, msgDeleteFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deleted(id))
}
