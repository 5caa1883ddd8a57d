package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/clinic-api/internal/api/shared"
	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/service"
	"github.com/phrazzld/clinic-api/internal/store"
)

// ProductHandler handles /products requests.
type ProductHandler struct {
	products store.ProductStore
	catalog  service.ProductCatalog
	errors   ErrorPolicy
	logger   *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(
	products store.ProductStore,
	catalog service.ProductCatalog,
	policy ErrorPolicy,
	logger *slog.Logger,
) *ProductHandler {
	if products == nil || catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("products and catalog cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		products: products,
		catalog:  catalog,
		errors:   policy,
		logger:   logger.With(slog.String("component", "product_handler")),
	}
}

// Routes mounts the product endpoints on r.
func (h *ProductHandler) Routes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/with-users", h.ListWithUsers)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// ListWithUsers handles GET /products/with-users. An unreachable users-api
// still yields 200 with usersCount 0; only a local failure is an error, and
// it is reported as 502.
func (h *ProductHandler) ListWithUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalog.ListWithUsersCount(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway, "products query failed", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		h.errors.respondError(w, r, err, msgQueryFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewProduct
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return
	}

	product, err := h.products.Create(r.Context(), req)
	if err != nil {
		h.errors.respondError(w, r, err, msgInsertFailed)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).
		Debug("product created", slog.Int64("product_id", product.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// Update handles PUT /products/{id}. Absent or null fields are left unchanged.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}

	var patch domain.ProductPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}
	if err := shared.ValidateRequest(patch); err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}

	product, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		h.errors.respondError(w, r, err, msgUpdateFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.ParseID(r)
	if err != nil {
		h.errors.respondError(w, r, err, msgDeleteFailed)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.errors.respondError(w, r, err, msgDeleteFailed)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deleted(id))
}
