package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andresmolina/casamolina-backend/api/controllers"
	"github.com/andresmolina/casamolina-backend/api/middleware"
	"github.com/andresmolina/casamolina-backend/internal/auth"
	"github.com/andresmolina/casamolina-backend/internal/cart"
	checkoutsvc "github.com/andresmolina/casamolina-backend/internal/checkout"
	"github.com/andresmolina/casamolina-backend/internal/menu"
	"github.com/andresmolina/casamolina-backend/internal/orders"
	"github.com/andresmolina/casamolina-backend/internal/users"
	pkgauth "github.com/andresmolina/casamolina-backend/pkg/auth"
	"github.com/andresmolina/casamolina-backend/pkg/auth/session"
	"github.com/andresmolina/casamolina-backend/pkg/config"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
	"github.com/andresmolina/casamolina-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          controllers.Pinger
	SessionChecker session.AccessSessionChecker
	Metrics        *metrics.HTTPMetrics
	Registry       prometheus.Gatherer

	MenuService     menu.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
	UsersService    users.Service
	AuthService     auth.Service
	RegisterService auth.RegisterService
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
		})
	})

	// Menu browsing is public.
	r.Route("/api/v1/menu", func(r chi.Router) {
		r.Get("/", controllers.MenuList(deps.MenuService, logg))
		r.Get("/{itemId}", controllers.MenuItemDetail(deps.MenuService, logg))
	})
	r.Get("/api/v1/toppings", controllers.ToppingsList(deps.MenuService, logg))

	// Guests can build a cart; checkout decides whether sign-in is needed.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Patch("/items/{index}", controllers.CartUpdateLine(deps.CartService, logg))
			r.Delete("/items/{index}", controllers.CartRemoveLine(deps.CartService, logg))

			r.Route("/customization", func(r chi.Router) {
				r.Post("/open", controllers.CustomizationOpen(deps.CartService, logg))
				r.Post("/toppings", controllers.CustomizationToggleTopping(deps.CartService, logg))
				r.Post("/quantity", controllers.CustomizationQuantity(deps.CartService, logg))
				r.Post("/commit", controllers.CustomizationCommit(deps.CartService, logg))
				r.Post("/cancel", controllers.CustomizationCancel(deps.CartService, logg))
			})
		})

		r.Post("/api/v1/checkout", controllers.Checkout(deps.CheckoutService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersService, logg))
		})

		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(deps.UsersService, logg))
			r.Put("/", controllers.ProfileUpdate(deps.UsersService, logg))
		})
	})

	r.Route("/api/admin/v1/menu", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.RequireRole(pkgauth.RoleAdmin, logg))
		r.Post("/", controllers.AdminMenuCreate(deps.MenuService, logg))
		r.Patch("/{itemId}", controllers.AdminMenuUpdate(deps.MenuService, logg))
		r.Delete("/{itemId}", controllers.AdminMenuDelete(deps.MenuService, logg))
	})

	return r
}
