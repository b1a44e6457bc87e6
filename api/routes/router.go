package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fatimaskitchen/storefront/api/controllers"
	"github.com/fatimaskitchen/storefront/api/middleware"
	"github.com/fatimaskitchen/storefront/internal/checkout"
	"github.com/fatimaskitchen/storefront/pkg/config"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

// Deps is everything the router hands to controllers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	Storage   controllers.Pinger
	Menu      controllers.MenuReader
	Cart      controllers.CartMutator
	Checkout  checkout.Service
	Orders    controllers.OrderReader
	Reviews   controllers.ReviewBoard
	Inventory controllers.StockTracker
	Gatherer  prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, deps.Storage, logg))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", controllers.MenuList(deps.Menu))
			r.Get("/search", controllers.MenuSearch(deps.Menu, logg))
			r.Get("/items/{itemID}", controllers.MenuItem(deps.Menu, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Checkout))
			r.Delete("/", controllers.CartClear(deps.Cart, deps.Checkout))
			r.Post("/items", controllers.CartAddItem(deps.Menu, deps.Cart, deps.Checkout, logg))
			r.Delete("/items/{itemID}", controllers.CartRemoveItem(deps.Cart, deps.Checkout))
			r.Post("/voucher", controllers.VoucherRedeem(deps.Checkout, logg))
			r.Get("/bill", controllers.CartBill(deps.Checkout))
		})

		r.Get("/vouchers/featured", controllers.VouchersFeatured(deps.Checkout))
		r.Post("/checkout", controllers.CheckoutPlaceOrder(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(deps.Orders, logg))
			r.Post("/{orderID}/advance", controllers.OrderAdvance(deps.Orders, logg))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.ReviewsList(deps.Reviews))
			r.Post("/", controllers.ReviewSubmit(deps.Reviews, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(deps.Inventory))
			r.Post("/{itemID}/adjust", controllers.InventoryAdjust(deps.Inventory, logg))
		})
	})

	return r
}
