package rest

import (
	"database/sql"
	"net/http"

	"smartcart-be/internal/logger"
	"smartcart-be/internal/metrics"
	"smartcart-be/internal/middleware"
	"smartcart-be/internal/utils"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Cart     *CartHandler
	Order    *OrderHandler
	User     *UserHandler
}

// NewRouter wires the REST surface. Role gates are applied here, at route
// registration, so every protected route goes through the same check.
func NewRouter(h Handlers, stats *metrics.Store, db *sql.DB) http.Handler {
	r := mux.NewRouter()

	auth := func(next http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(next)
	}
	customer := func(next http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(middleware.RequireRole(utils.RoleCustomer)(next))
	}
	admin := func(next http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(middleware.RequireRole(utils.RoleAdmin)(next))
	}

	// Auth
	r.HandleFunc("/api/auth/register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost)

	// Catalog (public reads, admin writes)
	r.HandleFunc("/api/products", h.Product.List).Methods(http.MethodGet)
	r.HandleFunc("/api/products/featured", h.Product.Featured).Methods(http.MethodGet)
	r.HandleFunc("/api/products/count", h.Product.Count).Methods(http.MethodGet)
	r.HandleFunc("/api/products/related/{category}", h.Product.Related).Methods(http.MethodGet)
	r.HandleFunc("/api/products/{id:[0-9]+}", h.Product.Get).Methods(http.MethodGet)
	r.Handle("/api/products", admin(h.Product.Create)).Methods(http.MethodPost)
	r.Handle("/api/products/{id:[0-9]+}", admin(h.Product.Update)).Methods(http.MethodPut)
	r.Handle("/api/products/{id:[0-9]+}", admin(h.Product.Delete)).Methods(http.MethodDelete)
	r.Handle("/api/products/{id:[0-9]+}/status", admin(h.Product.ToggleStatus)).Methods(http.MethodPatch)

	// Categories
	r.HandleFunc("/api/categories", h.Category.List).Methods(http.MethodGet)
	r.HandleFunc("/api/categories/{id:[0-9]+}", h.Category.Get).Methods(http.MethodGet)
	r.Handle("/api/categories", admin(h.Category.Create)).Methods(http.MethodPost)
	r.Handle("/api/categories/{id:[0-9]+}", admin(h.Category.Update)).Methods(http.MethodPut)
	r.Handle("/api/categories/{id:[0-9]+}", admin(h.Category.Delete)).Methods(http.MethodDelete)

	// Cart
	r.Handle("/api/cart", customer(h.Cart.Get)).Methods(http.MethodGet)
	r.Handle("/api/cart", customer(h.Cart.Clear)).Methods(http.MethodDelete)
	r.Handle("/api/cart/items", customer(h.Cart.AddItem)).Methods(http.MethodPost)
	r.Handle("/api/cart/items/{productId:[0-9]+}", customer(h.Cart.UpdateItem)).Methods(http.MethodPut)
	r.Handle("/api/cart/items/{productId:[0-9]+}", customer(h.Cart.RemoveItem)).Methods(http.MethodDelete)

	// Orders
	r.Handle("/api/orders", customer(h.Order.Place)).Methods(http.MethodPost)
	r.Handle("/api/orders", admin(h.Order.ListAll)).Methods(http.MethodGet)
	r.Handle("/api/orders/my-orders", customer(h.Order.MyOrders)).Methods(http.MethodGet)
	r.Handle("/api/orders/{id:[0-9]+}/tracking", auth(h.Order.Tracking)).Methods(http.MethodGet)
	r.Handle("/api/orders/{id:[0-9]+}", customer(h.Order.Cancel)).Methods(http.MethodPatch)
	r.Handle("/api/orders/{id:[0-9]+}/admin", admin(h.Order.AdminUpdate)).Methods(http.MethodPatch)

	// Users (admin dashboard, plus self profile updates)
	r.Handle("/api/users", admin(h.User.List)).Methods(http.MethodGet)
	r.Handle("/api/users/customers", admin(h.User.ListCustomers)).Methods(http.MethodGet)
	r.Handle("/api/users/{id:[0-9]+}/status", admin(h.User.UpdateStatus)).Methods(http.MethodPatch)
	r.Handle("/api/users/{id:[0-9]+}", auth(h.User.Update)).Methods(http.MethodPut)

	r.HandleFunc("/healthz", healthHandler(stats, db)).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = countRequests(stats, handler)
	handler = middleware.RateLimitMiddleware(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}

func countRequests(stats *metrics.Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats.Requests.Inc()
		next.ServeHTTP(w, r)
	})
}

func healthHandler(stats *metrics.Store, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, code, map[string]any{
			"status":  status,
			"metrics": stats.Snapshot(),
		})
	}
}
