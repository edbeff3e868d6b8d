package catalog

import (
	"context"
	"strconv"
	"sync"

	"churro-kiosk/internal/model"

	"github.com/rs/zerolog"
)

// Fetcher retrieves the product list from the store backend.
type Fetcher interface {
	FetchProducts(ctx context.Context, sess model.Session) ([]model.Product, error)
}

// Catalog caches the remote product list on the device. Refresh failures
// are absorbed: the previous snapshot stays in place and browsing degrades
// rather than breaking.
type Catalog struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu         sync.RWMutex
	products   []model.Product
	categories []model.Category
}

// New creates an empty catalog backed by the given fetcher.
func New(fetcher Fetcher, logger zerolog.Logger) *Catalog {
	return &Catalog{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Refresh replaces the cached snapshot with a fresh fetch. On failure the
// previous snapshot is kept and the error is returned for callers that want
// to report it; the catalog itself remains usable.
func (c *Catalog) Refresh(ctx context.Context, sess model.Session) error {
	products, err := c.fetcher.FetchProducts(ctx, sess)
	if err != nil {
		c.logger.Warn().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
		return err
	}

	categories := deriveCategories(products)

	c.mu.Lock()
	c.products = products
	c.categories = categories
	c.mu.Unlock()

	c.logger.Info().
		Int("product_count", len(products)).
		Int("category_count", len(categories)).
		Msg("catalog refreshed")

	return nil
}

// Products returns the cached product snapshot.
func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]model.Product, len(c.products))
	copy(products, c.products)
	return products
}

// Categories returns the categories derived from the cached products, in
// first-seen order.
func (c *Catalog) Categories() []model.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	categories := make([]model.Category, len(c.categories))
	copy(categories, c.categories)
	return categories
}

// ByID looks up a cached product.
func (c *Catalog) ByID(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

func deriveCategories(products []model.Product) []model.Category {
	seen := make(map[string]bool, len(products))
	var categories []model.Category
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, model.Category{
			ID:   strconv.Itoa(len(categories)),
			Name: p.Category,
		})
	}
	return categories
}
