package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/service"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/httputil"
)

// CatalogHandler handles HTTP requests for catalog browsing.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListCategories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Categories()})
}

// ListProducts handles GET /api/v1/catalog/categories/{categoryId}/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.ProductsByCategory(categoryID)})
}

// GetProduct handles GET /api/v1/catalog/products/{productId}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Product(chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// QuoteVariant handles GET /api/v1/catalog/products/{productId}/price
//
// Variant selections arrive as query parameters named after the product's
// dimensions, e.g. ?size=19mm&length=3m.
func (h *CatalogHandler) QuoteVariant(w http.ResponseWriter, r *http.Request) {
	selections := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			selections[key] = values[0]
		}
	}

	quote, err := h.service.QuoteVariant(chi.URLParam(r, "productId"), selections)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}
