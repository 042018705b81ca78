package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/catalog"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/service"
)

func setupCatalogRouter(t *testing.T) *chi.Mux {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	handler := NewCatalogHandler(service.NewCatalogService(cat, testLogger()), testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", handler.ListCategories)
		r.Get("/categories/{categoryId}/products", handler.ListProducts)
		r.Get("/products/{productId}", handler.GetProduct)
		r.Get("/products/{productId}/price", handler.QuoteVariant)
	})
	return r
}

func TestListCategories(t *testing.T) {
	router := setupCatalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/categories", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.NotEmpty(t, resp.Data)
}

func TestListProducts_KnownCategory(t *testing.T) {
	router := setupCatalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/categories/pipes/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	products := resp.Data.([]any)
	assert.NotEmpty(t, products)
}

func TestGetProduct_Found(t *testing.T) {
	router := setupCatalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/ball-valve", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	product := resp.Data.(map[string]any)
	assert.Equal(t, "Ball Valve", product["name"])
}

func TestGetProduct_NotFound(t *testing.T) {
	router := setupCatalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/garden-hose", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestQuoteVariant_FromQueryParams(t *testing.T) {
	router := setupCatalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/ball-valve/price?size=19mm", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	quote := resp.Data.(map[string]any)
	assert.InDelta(t, 120.50, quote["price"].(float64), 1e-9)
	assert.Equal(t, "₹120.50", quote["display_price"])
}

func TestQuoteVariant_MissingSelectionQuotesZero(t *testing.T) {
	router := setupCatalogRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/agri-pipe/price?size=19mm", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// Partial selection never errors; it prices at zero.
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	quote := resp.Data.(map[string]any)
	assert.Zero(t, quote["price"].(float64))
}
