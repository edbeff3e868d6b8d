package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"churro-kiosk/internal/checkout"
	"churro-kiosk/internal/model"

	"github.com/rs/zerolog"
)

// CheckoutHandler exposes the order submission state machine over the local
// facade.
type CheckoutHandler struct {
	checkout *checkout.Checkout
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(co *checkout.Checkout, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: co,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// ConfirmRequest selects the payment method and submits the order. Print
// requests the receipt-printing variant of the same call.
type ConfirmRequest struct {
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Print         bool                `json:"print"`
}

// Get handles GET /api/checkout requests.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.checkout.Snapshot())
}

// Start handles POST /api/checkout/start requests.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Begin(); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.checkout.Snapshot())
}

// Confirm handles POST /api/checkout/confirm requests.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.PaymentMethod != "" {
		if err := h.checkout.SelectPayment(req.PaymentMethod); err != nil {
			writeDomainError(w, err, h.logger)
			return
		}
	}

	if err := h.checkout.Confirm(r.Context(), req.Print); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeDomainError(w, err, h.logger)
			return
		}

		// Submission failure: the machine is in the failed state and the
		// snapshot carries the user-facing reason.
		h.logger.Warn().Err(err).Msg("order submission failed")
		writeJSON(w, http.StatusBadGateway, h.checkout.Snapshot())
		return
	}

	writeJSON(w, http.StatusOK, h.checkout.Snapshot())
}

// Acknowledge handles POST /api/checkout/ack requests.
func (h *CheckoutHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Acknowledge(); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.checkout.Snapshot())
}

// Cancel handles POST /api/checkout/cancel requests.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Cancel(); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.checkout.Snapshot())
}
