package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/models"
	"levelgen.dev/internal/services"
)

// LayoutHandler handles layout generation endpoints
type LayoutHandler struct {
	layoutService *services.LayoutService
}

// NewLayoutHandler creates a new LayoutHandler
func NewLayoutHandler(ls *services.LayoutService) *LayoutHandler {
	return &LayoutHandler{layoutService: ls}
}

// Generate handles POST /api/layouts
func (h *LayoutHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	layout, err := h.layoutService.Generate(r.Context(), req)
	h.respondLayout(w, layout, err)
}

// GetLayout handles GET /api/layouts/{catalog}/{seed}?target=N - fixed seed, cached
func (h *LayoutHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.lookup(w, r)
	if layout == nil && err == nil {
		return
	}
	h.respondLayout(w, layout, err)
}

// GetLayoutASCII handles GET /api/layouts/{catalog}/{seed}/ascii
func (h *LayoutHandler) GetLayoutASCII(w http.ResponseWriter, r *http.Request) {
	layout, err := h.lookup(w, r)
	if layout == nil && err == nil {
		return
	}
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(layout.ASCII))
}

// Batch handles POST /api/layouts/batch
func (h *LayoutHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.layoutService.GenerateBatch(r.Context(), req)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// lookup parses the path and query and fetches the cached layout.
// It writes the response itself and returns nil, nil when the input is invalid.
func (h *LayoutHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Layout, error) {
	catalogName := chi.URLParam(r, "catalog")

	seed, err := strconv.ParseInt(chi.URLParam(r, "seed"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid seed")
		return nil, nil
	}

	target := 0
	if raw := r.URL.Query().Get("target"); raw != "" {
		target, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid target")
			return nil, nil
		}
	}

	return h.layoutService.Get(r.Context(), catalogName, seed, target)
}

// respondLayout writes a layout, or the error it failed with.
// Exhausted searches still return the failed layout body.
func (h *LayoutHandler) respondLayout(w http.ResponseWriter, layout *models.Layout, err error) {
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, layout)
	case errors.Is(err, generation.ErrNoMapProduced) && layout != nil:
		respondJSON(w, http.StatusUnprocessableEntity, layout)
	default:
		respondError(w, statusFor(err), err.Error())
	}
}
