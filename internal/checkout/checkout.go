package checkout

import (
	"context"
	"errors"
	"sync"

	"churro-kiosk/internal/backend"
	"churro-kiosk/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is the position of the checkout session in its submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingPayment
	StateSubmitting
	StateSucceeded
	StateFailed
)

// String returns the wire name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPayment:
		return "awaiting_payment"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// genericFailureMessage is shown when the backend gave no usable reason.
const genericFailureMessage = "There was a problem processing your order. Please try again."

// OrderPoster submits order drafts to the store backend.
type OrderPoster interface {
	CreateOrder(ctx context.Context, sess model.Session, draft *model.OrderDraft, print bool) error
}

// CartEngine is the slice of the cart the checkout needs: a snapshot to
// build the order from, its totals, and the clear on confirmed success.
type CartEngine interface {
	Items() []model.CartItem
	Totals() model.Totals
	Clear()
}

// SessionSource supplies the active credential, or nil when signed out.
type SessionSource interface {
	Current() *model.Session
}

// Snapshot is the externally visible checkout state.
type Snapshot struct {
	State         string              `json:"state"`
	PaymentMethod model.PaymentMethod `json:"payment_method,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
}

// Checkout drives order submission for one checkout session:
// idle → awaiting payment → submitting → succeeded/failed. The cart is
// cleared only on confirmed success; on failure it is preserved and the
// session may retry, each retry building a fresh draft. At most one
// submission is in flight at a time.
type Checkout struct {
	cart     CartEngine
	sessions SessionSource
	api      OrderPoster
	logger   zerolog.Logger

	mu         sync.Mutex
	state      State
	method     model.PaymentMethod
	failReason string
}

// New creates an idle checkout session.
func New(cart CartEngine, sessions SessionSource, api OrderPoster, logger zerolog.Logger) *Checkout {
	return &Checkout{
		cart:     cart,
		sessions: sessions,
		api:      api,
		logger:   logger.With().Str("component", "checkout").Logger(),
	}
}

// Begin enters the payment-selection state. The cart must be non-empty.
func (c *Checkout) Begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return model.ErrWrongState
	}
	if len(c.cart.Items()) == 0 {
		return model.ErrEmptyCart
	}

	c.state = StateAwaitingPayment
	c.logger.Debug().Msg("checkout started")
	return nil
}

// SelectPayment records the payment method for the next confirm.
func (c *Checkout) SelectPayment(method model.PaymentMethod) error {
	if !method.Valid() {
		return model.ErrNoPaymentMethod
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAwaitingPayment && c.state != StateFailed {
		return model.ErrWrongState
	}

	c.method = method
	c.logger.Debug().Str("payment_method", string(method)).Msg("payment method selected")
	return nil
}

// Confirm builds a fresh order draft from the current cart and submits it.
// With print set, the backend is additionally asked to print receipts; the
// rest of the behaviour is identical. Validation failures (no payment
// method, no session) refuse the transition and leave the state unchanged.
func (c *Checkout) Confirm(ctx context.Context, print bool) error {
	c.mu.Lock()

	if c.state == StateSubmitting {
		c.mu.Unlock()
		return model.ErrSubmitInFlight
	}
	if c.state != StateAwaitingPayment && c.state != StateFailed {
		c.mu.Unlock()
		return model.ErrWrongState
	}
	if !c.method.Valid() {
		c.mu.Unlock()
		return model.ErrNoPaymentMethod
	}

	sess := c.sessions.Current()
	if sess == nil {
		c.mu.Unlock()
		return model.ErrNoSession
	}

	items := c.cart.Items()
	if len(items) == 0 {
		c.mu.Unlock()
		return model.ErrEmptyCart
	}

	draft := model.NewOrderDraft(sess.UserID, c.method, items, c.cart.Totals(), uuid.NewString())
	c.state = StateSubmitting
	c.failReason = ""
	c.mu.Unlock()

	err := c.api.CreateOrder(ctx, *sess, draft, print)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateFailed
		c.failReason = failureReason(err)
		c.logger.Warn().Err(err).Str("reason", c.failReason).Msg("order submission failed, cart preserved")
		return err
	}

	c.cart.Clear()
	c.state = StateSucceeded
	c.logger.Info().Str("user_id", sess.UserID).Msg("order confirmed, cart cleared")
	return nil
}

// Acknowledge resets a succeeded checkout back to idle.
func (c *Checkout) Acknowledge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSucceeded {
		return model.ErrWrongState
	}

	c.state = StateIdle
	c.method = ""
	c.failReason = ""
	return nil
}

// Cancel abandons the checkout session, preserving the cart. A submission
// already in flight cannot be cancelled; its outcome is simply ignored once
// the session is back to idle.
func (c *Checkout) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return model.ErrSubmitInFlight
	}

	c.state = StateIdle
	c.method = ""
	c.failReason = ""
	c.logger.Debug().Msg("checkout cancelled")
	return nil
}

// State returns the current submission state.
func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the externally visible state for the facade.
func (c *Checkout) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:         c.state.String(),
		PaymentMethod: c.method,
		FailureReason: c.failReason,
	}
}

// failureReason maps a submission error to the user-facing reason: the
// server-provided message when there is one, a generic transport message
// otherwise.
func failureReason(err error) string {
	var srvErr *backend.ServerError
	if errors.As(err, &srvErr) && srvErr.Message != "" {
		return srvErr.Message
	}
	return genericFailureMessage
}
