package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"levelgen.dev/internal/config"
	"levelgen.dev/internal/generation"
	"levelgen.dev/internal/middleware"
	"levelgen.dev/internal/models"
	"levelgen.dev/internal/services"
	"levelgen.dev/internal/ws"
)

// maxBodyBytes limits request bodies
const maxBodyBytes = 1 << 20

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Standard()...)

	// Initialize services
	catalogService, err := services.NewCatalogService(cfg.CatalogPath)
	if err != nil {
		log.Printf("Warning: Failed to load catalog %s: %v", cfg.CatalogPath, err)
		catalogService, _ = services.NewCatalogService("")
	}
	layoutService := services.NewLayoutService(catalogService, services.LayoutDefaults{
		Target:       cfg.TargetModules,
		MaxAttempts:  cfg.MaxAttempts,
		MaxTarget:    cfg.MaxTarget,
		AttemptLimit: cfg.AttemptLimit,
		BroadPhase:   cfg.BroadPhase,
	})

	// Watchers receive every layout the server produces
	hub := ws.NewHub()
	layoutService.OnLayout = func(l *models.Layout) {
		hub.BroadcastJSON(models.StreamMessage{Type: "layout", Layout: l})
	}

	// Initialize handlers
	catalogHandler := NewCatalogHandler(catalogService)
	layoutHandler := NewLayoutHandler(layoutService)
	streamHandler := NewStreamHandler(layoutService, hub)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/catalogs", catalogHandler.ListCatalogs)
		r.Get("/catalogs/{name}", catalogHandler.GetCatalog)

		// Layout endpoints
		r.Post("/layouts", layoutHandler.Generate)
		r.Post("/layouts/batch", layoutHandler.Batch)
		r.Get("/layouts/{catalog}/{seed}", layoutHandler.GetLayout)
		r.Get("/layouts/{catalog}/{seed}/ascii", layoutHandler.GetLayoutASCII)

		// Websocket endpoints
		r.Get("/layouts/stream", streamHandler.Stream)
		r.Get("/layouts/watch", streamHandler.Watch)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service and engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCatalogNotFound):
		return http.StatusNotFound
	case errors.Is(err, generation.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrNoMapProduced):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
