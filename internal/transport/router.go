package transport

import (
	"net/http"
	"time"

	"spicery-be/internal/logger"
	"spicery-be/internal/metrics"
	"spicery-be/internal/middleware"
	"spicery-be/internal/user"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type RouterOptions struct {
	Tokens         *user.Tokens
	AuthEnforced   bool
	AllowedOrigins []string
	Limiter        *middleware.Limiter
	RequestTimeout time.Duration
}

// NewRouter wires every route and the middleware stack. From the outside
// in: panic recovery, request id, access log, CORS, gzip, request timeout,
// then per-route auth, rate limit and metrics inside the mux.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})

	r.Use(metrics.Middleware)
	if opts.Tokens != nil {
		r.Use(middleware.Auth(opts.Tokens))
	}
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	owner := middleware.RequireRole(opts.AuthEnforced, user.RoleOwner)
	adminOnly := func(fn http.HandlerFunc) http.Handler { return owner(fn) }

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	api.Handle("/products", adminOnly(h.createProduct)).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	api.Handle("/products/{id}", adminOnly(h.updateProduct)).Methods(http.MethodPut)
	api.Handle("/products/{id}", adminOnly(h.deleteProduct)).Methods(http.MethodDelete)
	api.HandleFunc("/products/{id}/reviews", h.listReviews).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}/reviews", h.createReview).Methods(http.MethodPost)

	// Customers track their own orders by email; the full listing is admin only.
	allOrders := owner(http.HandlerFunc(h.listOrders))
	api.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "" {
			allOrders.ServeHTTP(w, r)
			return
		}
		h.listOrders(w, r)
	}).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", h.getOrder).Methods(http.MethodGet)
	api.Handle("/orders/{id}/status", adminOnly(h.updateOrderStatus)).Methods(http.MethodPatch)

	api.HandleFunc("/suppliers", h.listSuppliers).Methods(http.MethodGet)
	api.HandleFunc("/suppliers", h.registerSupplier).Methods(http.MethodPost)
	api.HandleFunc("/suppliers/{id}", h.getSupplier).Methods(http.MethodGet)
	api.Handle("/suppliers/{id}/status", adminOnly(h.updateSupplierStatus)).Methods(http.MethodPatch)

	api.Handle("/dashboard/summary", adminOnly(h.dashboardSummary)).Methods(http.MethodGet)

	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	var handler http.Handler = r
	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`)
	}
	handler = handlers.CompressHandler(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(handler)

	return handler
}

// recoveryLogger routes panics caught by gorilla/handlers into zap.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logger.L().Sugar().Errorw("panic recovered", "panic", v)
}
