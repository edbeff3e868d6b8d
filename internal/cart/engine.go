package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"churro-kiosk/internal/model"
	"churro-kiosk/internal/store"

	"github.com/rs/zerolog"
)

// persistTimeout bounds a single background write to the store.
const persistTimeout = 5 * time.Second

// Engine owns the in-memory cart, the single source of truth. The persisted
// copy is an eventually-consistent mirror: every mutation hands a snapshot
// to a background writer and returns without waiting, and write failures are
// logged but never surfaced. Lines keep insertion order; additions sharing
// the merge identity (product id, redemption flag) collapse into one line.
type Engine struct {
	store  store.Store
	logger zerolog.Logger

	mu     sync.Mutex
	items  []model.CartItem
	closed bool

	// writes holds at most the latest pending snapshot; stale snapshots
	// are dropped, giving last-write-wins persistence.
	writes chan []byte
	done   chan struct{}
}

// NewEngine creates a cart engine backed by the given store and starts its
// persistence writer.
func NewEngine(st store.Store, logger zerolog.Logger) *Engine {
	e := &Engine{
		store:  st,
		logger: logger.With().Str("component", "cart").Logger(),
		items:  make([]model.CartItem, 0),
		writes: make(chan []byte, 1),
		done:   make(chan struct{}),
	}

	go e.writer()

	return e
}

// Restore loads the persisted cart into memory. A missing, corrupt or
// unreadable blob initialises an empty cart; restore never fails app start.
func (e *Engine) Restore(ctx context.Context) {
	data, err := e.store.Get(ctx, store.CartStorageKey)
	if errors.Is(err, store.ErrNotFound) {
		e.logger.Debug().Msg("no persisted cart found, starting empty")
		return
	}
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to load persisted cart, starting empty")
		return
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		e.logger.Warn().Err(err).Msg("persisted cart is corrupt, starting empty")
		return
	}

	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			e.logger.Warn().
				Str("product_id", item.ID).
				Int("quantity", item.Quantity).
				Msg("persisted cart contains an invalid line, starting empty")
			return
		}
	}

	e.mu.Lock()
	if items == nil {
		items = make([]model.CartItem, 0)
	}
	e.items = items
	e.mu.Unlock()

	e.logger.Info().Int("line_count", len(items)).Msg("cart restored from storage")
}

// AddItem merges the item into an existing line with the same product id
// and redemption flag, or appends it as a new line. The item's quantity
// must be at least one.
func (e *Engine) AddItem(item model.CartItem) error {
	if item.Quantity < 1 {
		return model.ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	merged := false
	for i := range e.items {
		if e.items[i].SameLine(item) {
			e.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		e.items = append(e.items, item)
	}

	e.logger.Debug().
		Str("product_id", item.ID).
		Bool("redemption", item.IsRedemption).
		Int("quantity", item.Quantity).
		Bool("merged", merged).
		Msg("item added to cart")

	e.persistLocked()
	return nil
}

// UpdateQuantity sets the quantity on the lines matching id. Decrementing a
// line to zero goes through RemoveItem; a quantity below one is rejected.
func (e *Engine) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return model.ErrInvalidQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	found := false
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Quantity = quantity
			found = true
		}
	}
	if !found {
		return model.ErrItemNotFound
	}

	e.logger.Debug().Str("product_id", id).Int("quantity", quantity).Msg("cart quantity updated")

	e.persistLocked()
	return nil
}

// RemoveItem deletes the lines matching id. Removing an absent id is a
// no-op.
func (e *Engine) RemoveItem(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.items[:0]
	for _, item := range e.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(e.items) {
		return
	}
	e.items = kept

	e.logger.Debug().Str("product_id", id).Msg("item removed from cart")

	e.persistLocked()
}

// Clear empties the cart and overwrites the persisted blob with the empty
// sequence. The in-memory clear holds regardless of the write outcome.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = make([]model.CartItem, 0)

	e.logger.Debug().Msg("cart cleared")

	e.persistLocked()
}

// Items returns a snapshot copy of the cart lines in order.
func (e *Engine) Items() []model.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]model.CartItem, len(e.items))
	copy(items, e.items)
	return items
}

// Totals computes the derived figures for the current cart.
func (e *Engine) Totals() model.Totals {
	return ComputeTotals(e.Items())
}

// Close stops the persistence writer after draining any pending write.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.writes)
	e.mu.Unlock()

	<-e.done
}

// persistLocked snapshots the cart and queues it for the background writer,
// replacing any write still pending. Callers must hold e.mu.
func (e *Engine) persistLocked() {
	if e.closed {
		return
	}

	data, err := json.Marshal(e.items)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to serialise cart")
		return
	}

	for {
		select {
		case e.writes <- data:
			return
		default:
		}
		// Queue full: drop the stale snapshot and try again.
		select {
		case <-e.writes:
		default:
		}
	}
}

func (e *Engine) writer() {
	defer close(e.done)

	for data := range e.writes {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := e.store.Set(ctx, store.CartStorageKey, data); err != nil {
			e.logger.Warn().Err(err).Msg("failed to persist cart")
		}
		cancel()
	}
}
