package handler

import (
	"encoding/json"
	"net/http"

	"churro-kiosk/internal/cart"
	"churro-kiosk/internal/catalog"
	"churro-kiosk/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler exposes the cart engine over the local facade.
type CartHandler struct {
	engine  *cart.Engine
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(engine *cart.Engine, cat *catalog.Catalog, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		engine:  engine,
		catalog: cat,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// CartResponse is the cart view returned by every cart endpoint.
type CartResponse struct {
	Items  []model.CartItem `json:"items"`
	Totals model.Totals     `json:"totals"`
}

// AddItemRequest asks for quantity units of a catalog product, either as a
// cash purchase or as a points redemption.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Redeem    bool   `json:"redeem"`
}

// UpdateQuantityRequest sets the absolute quantity of a cart line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView())
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	product, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		writeDomainError(w, model.ErrProductNotFound, h.logger)
		return
	}

	item := model.NewCashItem(product, req.Quantity)
	if req.Redeem {
		item = model.NewRedemptionItem(product, req.Quantity)
	}

	if err := h.engine.AddItem(item); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

// UpdateQuantity handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.engine.UpdateQuantity(id, req.Quantity); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.cartView())
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.engine.RemoveItem(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.cartView())
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.engine.Clear()
	writeJSON(w, http.StatusOK, h.cartView())
}

func (h *CartHandler) cartView() CartResponse {
	items := h.engine.Items()
	return CartResponse{
		Items:  items,
		Totals: cart.ComputeTotals(items),
	}
}
