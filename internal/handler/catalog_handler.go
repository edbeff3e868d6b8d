package handler

import (
	"net/http"

	"churro-kiosk/internal/catalog"
	"churro-kiosk/internal/model"
	"churro-kiosk/internal/session"

	"github.com/rs/zerolog"
)

// CatalogHandler serves the cached catalog and triggers refreshes.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(cat *catalog.Catalog, sessions *session.Manager, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		sessions: sessions,
		logger:   logger.With().Str("handler", "catalog").Logger(),
	}
}

// CatalogResponse is the cached catalog snapshot.
type CatalogResponse struct {
	Products   []model.Product  `json:"products"`
	Categories []model.Category `json:"categories"`
}

// Get handles GET /api/catalog requests. An optional category query filters
// the products.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Products()

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := products[:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Products:   products,
		Categories: h.catalog.Categories(),
	})
}

// Refresh handles POST /api/catalog/refresh requests. A failed fetch keeps
// the previous snapshot; the caller is told so it can surface the problem.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Current()
	if sess == nil {
		writeDomainError(w, model.ErrNoSession, h.logger)
		return
	}

	if err := h.catalog.Refresh(r.Context(), *sess); err != nil {
		writeError(w, http.StatusBadGateway, "failed to refresh catalog", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, CatalogResponse{
		Products:   h.catalog.Products(),
		Categories: h.catalog.Categories(),
	})
}
