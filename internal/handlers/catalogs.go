package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"levelgen.dev/internal/models"
	"levelgen.dev/internal/services"
)

// CatalogHandler handles catalog endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cs *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

// ListCatalogs handles GET /api/catalogs
func (h *CatalogHandler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.CatalogList{Catalogs: h.catalogService.List()})
}

// GetCatalog handles GET /api/catalogs/{name} - returns the full definition
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	def, err := h.catalogService.Definition(name)
	if err != nil {
		respondError(w, http.StatusNotFound, "Catalog not found")
		return
	}

	respondJSON(w, http.StatusOK, def)
}
