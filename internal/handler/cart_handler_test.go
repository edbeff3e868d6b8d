package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"churro-kiosk/internal/cart"
	"churro-kiosk/internal/catalog"
	"churro-kiosk/internal/checkout"
	"churro-kiosk/internal/handler"
	"churro-kiosk/internal/model"
	"churro-kiosk/internal/router"
	"churro-kiosk/internal/session"
	"churro-kiosk/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

// MockOrderPoster is a mock implementation of checkout.OrderPoster.
type MockOrderPoster struct {
	mock.Mock
}

func (m *MockOrderPoster) CreateOrder(ctx context.Context, sess model.Session, draft *model.OrderDraft, print bool) error {
	args := m.Called(ctx, sess, draft, print)
	return args.Error(0)
}

// stubFetcher serves a fixed product list to the catalog.
type stubFetcher struct {
	products []model.Product
}

func (f *stubFetcher) FetchProducts(ctx context.Context, sess model.Session) ([]model.Product, error) {
	return f.products, nil
}

func facadeProducts() []model.Product {
	return []model.Product{
		{ID: "churro-1", Name: "Churro Clásico", Category: "Churros", Price: 1000, Points: 10},
		{ID: "cafe-1", Name: "Café", Category: "Bebidas", Price: 1800, Points: 500},
	}
}

// testFacade wires the full facade with an in-process store and a mocked
// order backend.
type testFacade struct {
	engine   *cart.Engine
	sessions *session.Manager
	api      *MockOrderPoster
	handler  http.Handler
}

func newTestFacade(t *testing.T) *testFacade {
	t.Helper()

	logger := zerolog.Nop()

	st, err := store.NewFileStore(t.TempDir(), logger)
	require.NoError(t, err)

	engine := cart.NewEngine(st, logger)
	t.Cleanup(engine.Close)

	sessions := session.NewManager(logger)
	sessions.Set(model.Session{UserID: "u-1", Token: "tok-1"})

	cat := catalog.New(&stubFetcher{products: facadeProducts()}, logger)
	require.NoError(t, cat.Refresh(context.Background(), *sessions.Current()))

	api := new(MockOrderPoster)
	co := checkout.New(engine, sessions, api, logger)

	mux := router.New(
		handler.NewCartHandler(engine, cat, logger),
		handler.NewCheckoutHandler(co, logger),
		handler.NewSessionHandler(sessions, logger),
		handler.NewCatalogHandler(cat, sessions, logger),
		testAPIKey,
		logger,
	)

	return &testFacade{
		engine:   engine,
		sessions: sessions,
		api:      api,
		handler:  mux,
	}
}

func (f *testFacade) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) handler.CartResponse {
	t.Helper()

	var resp handler.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCartFacade_AddAndGet(t *testing.T) {
	f := newTestFacade(t)

	rec := f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "churro-1", Quantity: 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "churro-1", Quantity: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, f.do(t, http.MethodGet, "/api/cart", nil))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.Equal(t, 5000, resp.Totals.MoneyDue)
	assert.Equal(t, 50, resp.Totals.PointsEarned)
}

func TestCartFacade_AddRedemptionLine(t *testing.T) {
	f := newTestFacade(t)

	f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "cafe-1", Quantity: 1})
	rec := f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "cafe-1", Quantity: 1, Redeem: true})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 2)
	assert.False(t, resp.Items[0].IsRedemption)
	assert.True(t, resp.Items[1].IsRedemption)
	assert.Equal(t, 1800, resp.Totals.MoneyDue)
	assert.Equal(t, 500, resp.Totals.PointsSpent)
}

func TestCartFacade_AddUnknownProduct(t *testing.T) {
	f := newTestFacade(t)

	rec := f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "missing", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartFacade_AddInvalidQuantity(t *testing.T) {
	f := newTestFacade(t)

	rec := f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "churro-1", Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartFacade_UpdateQuantity(t *testing.T) {
	f := newTestFacade(t)
	f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "churro-1", Quantity: 2})

	rec := f.do(t, http.MethodPut, "/api/cart/items/churro-1", handler.UpdateQuantityRequest{Quantity: 4})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, decodeCart(t, rec).Items[0].Quantity)

	rec = f.do(t, http.MethodPut, "/api/cart/items/churro-1", handler.UpdateQuantityRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/cart/items/missing", handler.UpdateQuantityRequest{Quantity: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartFacade_RemoveAndClear(t *testing.T) {
	f := newTestFacade(t)
	f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "churro-1", Quantity: 1})
	f.do(t, http.MethodPost, "/api/cart/items", handler.AddItemRequest{ProductID: "cafe-1", Quantity: 1})

	rec := f.do(t, http.MethodDelete, "/api/cart/items/churro-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeCart(t, rec).Items, 1)

	rec = f.do(t, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestFacade_RequiresAPIKey(t *testing.T) {
	f := newTestFacade(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFacade_HealthNeedsNoAPIKey(t *testing.T) {
	f := newTestFacade(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalogFacade_GetWithCategoryFilter(t *testing.T) {
	f := newTestFacade(t)

	rec := f.do(t, http.MethodGet, "/api/catalog?category=Churros", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "churro-1", resp.Products[0].ID)
	assert.Len(t, resp.Categories, 2)
}
