package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andersonseixas/fornecedor-backend/api/controllers"
	"github.com/andersonseixas/fornecedor-backend/api/middleware"
	"github.com/andersonseixas/fornecedor-backend/internal/analytics"
	"github.com/andersonseixas/fornecedor-backend/internal/cart"
	"github.com/andersonseixas/fornecedor-backend/internal/catalog"
	"github.com/andersonseixas/fornecedor-backend/internal/ledger"
	"github.com/andersonseixas/fornecedor-backend/internal/orders"
	"github.com/andersonseixas/fornecedor-backend/pkg/config"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogService catalog.Service,
	cartService cart.Service,
	orderService orders.Service,
	analyticsService analytics.Service,
	ledgerRepo ledger.Repository,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, catalogService))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(logg))

		r.Get("/catalog", controllers.CatalogList(catalogService, logg))
		r.Get("/catalog/{name}", controllers.CatalogFetch(catalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Delete("/items", controllers.CartRemoveItems(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(orderService, logg))
		r.Get("/orders/files/{name}", controllers.OrderFileDownload(ledgerRepo, logg))
		r.Get("/dashboard", controllers.DashboardFetch(analyticsService, logg))
	})

	return r
}
