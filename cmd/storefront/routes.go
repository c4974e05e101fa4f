package main

import (
	"log/slog"
	"net/http"
	"time"

	authapp "github.com/dwikikusuma/food-storefront/internal/auth/app"
	catalogapp "github.com/dwikikusuma/food-storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/food-storefront/internal/checkout/app"
	orderapp "github.com/dwikikusuma/food-storefront/internal/order/app"
	"github.com/dwikikusuma/food-storefront/internal/session"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type server struct {
	log      *slog.Logger
	sessions *session.Registry
	catalog  *catalogapp.Service
	orders   *orderapp.Service
	auth     *authapp.Service
	checkout *checkoutapp.Service

	cookieSecure bool
	// pingEvery is the keep-alive interval of the cart event stream.
	pingEvery time.Duration
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.withSession)

		r.Get("/menu", s.listMenu)
		r.Get("/menu/{id}", s.getMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.getCart)
			r.Delete("/", s.clearCart)
			r.Post("/items", s.addCartItem)
			r.Delete("/items/{id}", s.removeCartItem)
			r.Get("/events", s.cartEvents)
		})

		r.Get("/checkout/quote", s.quote)
		r.With(s.requireAuth).Post("/checkout", s.placeOrder)
		r.With(s.requireAuth).Get("/orders", s.listOrders)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/register", s.register)
			r.Post("/logout", s.logout)
			r.With(s.requireAuth).Get("/me", s.me)
			r.With(s.requireAuth).Patch("/profile", s.updateProfile)
		})

		r.Route("/admin/menu", func(r chi.Router) {
			r.Use(s.requireAuth, s.requireAdmin)
			r.Post("/", s.createMenu)
			r.Patch("/{id}", s.updateMenu)
			r.Delete("/{id}", s.deleteMenu)
		})
	})

	return r
}
