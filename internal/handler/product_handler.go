package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Collection handles GET (list) and POST (create) on /api/products.
func (h *ProductHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	if err := auth.Authorize(r.Context(), auth.OpProductList); err != nil {
		respondError(w, err, h.logger)
		return
	}

	q, err := query.Parse(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	page, err := h.service.List(r.Context(), q)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := auth.Authorize(r.Context(), auth.OpProductCreate); err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Item handles GET, PUT, PATCH and DELETE on /api/products/{id}.
func (h *ProductHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.replace(w, r, id)
	case http.MethodPatch:
		h.patch(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request, id int64) {
	if err := auth.Authorize(r.Context(), auth.OpProductRead); err != nil {
		respondError(w, err, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			respondNotFound(w, h.logger)
			return
		}
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) replace(w http.ResponseWriter, r *http.Request, id int64) {
	if err := auth.Authorize(r.Context(), auth.OpProductUpdate); err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Replace(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			respondNotFound(w, h.logger)
			return
		}
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) patch(w http.ResponseWriter, r *http.Request, id int64) {
	if err := auth.Authorize(r.Context(), auth.OpProductUpdate); err != nil {
		respondError(w, err, h.logger)
		return
	}

	var patch model.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Patch(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			respondNotFound(w, h.logger)
			return
		}
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := auth.Authorize(r.Context(), auth.OpProductDelete); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			respondNotFound(w, h.logger)
			return
		}
		respondError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Info handles GET /api/products/info.
func (h *ProductHandler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := auth.Authorize(r.Context(), auth.OpProductInfo); err != nil {
		respondError(w, err, h.logger)
		return
	}

	info, err := h.service.Info(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// productID extracts the numeric product ID from the request path.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID format", h.logger)
		return 0, false
	}

	return id, true
}
