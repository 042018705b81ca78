package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinyah/dinesh-pvc-pipes-sub001/internal/service"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/health"
	"github.com/vinyah/dinesh-pvc-pipes-sub001/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	checkoutService *service.CheckoutService,
	catalogService *service.CatalogService,
	authenticator service.Authenticator,
	healthHandler *health.Handler,
	corsConfig middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(corsConfig))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(cartService, logger)
	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)
	authHandler := NewAuthHandler(authenticator, logger)

	// Catalog browsing is anonymous; no shopper identity needed.
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/categories/{categoryId}/products", catalogHandler.ListProducts)
		r.Get("/products/{productId}", catalogHandler.GetProduct)
		r.Get("/products/{productId}/price", catalogHandler.QuoteVariant)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(RequireShopperID)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/lines", cartHandler.AddLine)
		r.Delete("/lines/{index}", cartHandler.RemoveLine)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(RequireShopperID)

		r.Post("/", checkoutHandler.Begin)
		r.Put("/address", checkoutHandler.SaveAddress)
		r.Get("/address", checkoutHandler.GetAddress)
		r.Get("/delivery/options", checkoutHandler.DeliveryOptions)
		r.Put("/delivery", checkoutHandler.SelectDelivery)
		r.Post("/coupon", checkoutHandler.ApplyCoupon)
		r.Get("/summary", checkoutHandler.Summary)
		r.Post("/order", checkoutHandler.PlaceOrder)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/me", authHandler.Me)
	})

	return r
}
