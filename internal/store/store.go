package store

import (
	"context"
	"errors"
)

// CartStorageKey is the fixed key the cart blob lives under. The value is
// carried over from earlier app versions so an upgrade keeps the saved cart.
const CartStorageKey = "churros_cuchito_cart"

// ErrNotFound is returned by Get when no blob exists for the key.
var ErrNotFound = errors.New("key not found")

// Store is the durable key-value blob store backing the cart mirror. The
// persisted copy is derived state: callers treat every failure as
// recoverable and never block on it.
type Store interface {
	// Get returns the blob stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, data []byte) error
}
