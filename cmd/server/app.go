package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-dashboard/internal/auth"
	"github.com/diewo77/go-dashboard/internal/cache"
	"github.com/diewo77/go-dashboard/internal/handlers"
	"github.com/diewo77/go-dashboard/internal/metrics"
	"github.com/diewo77/go-dashboard/internal/services"
)

// App is the main application handler wiring every route.
type App struct {
	mux      *http.ServeMux
	sessions *auth.Sessions
	log      zerolog.Logger
}

// NewApp builds the service graph and route table. All dependencies are
// constructed here and injected; nothing is package-level state.
func NewApp(conn *gorm.DB, viewCache cache.ViewCache, m *metrics.Metrics, sessions *auth.Sessions, log zerolog.Logger) *App {
	invoiceSvc := services.NewInvoiceService(conn, viewCache, m, log)
	dashboardSvc := services.NewDashboardService(conn, m, log)
	customerSvc := services.NewCustomerService(conn, m, log)

	invoiceH := handlers.NewInvoiceHandler(invoiceSvc, dashboardSvc, viewCache, m, log)
	dashboardH := handlers.NewDashboardHandler(dashboardSvc, log)
	customerH := handlers.NewCustomerHandler(customerSvc, log)
	authH := handlers.NewAuthHandler(conn, sessions, log)
	adminH := handlers.NewAdminHandler(conn, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", authH.LoginForm)
	mux.HandleFunc("POST /login", authH.Login)
	mux.HandleFunc("POST /logout", authH.Logout)
	mux.HandleFunc("GET /healthz", adminH.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	// Seeding stays open so a fresh database can be bootstrapped before any
	// user exists; it is an idempotent one-shot dev endpoint.
	mux.HandleFunc("POST /admin/seed", adminH.Seed)

	guard := func(h http.HandlerFunc) http.Handler { return auth.RequireAuth(h) }
	mux.Handle("GET /dashboard", guard(dashboardH.Overview))
	mux.Handle("GET /dashboard/invoices", guard(invoiceH.List))
	mux.Handle("GET /dashboard/invoices/get", guard(invoiceH.Get))
	mux.Handle("POST /dashboard/invoices", guard(invoiceH.Create))
	mux.Handle("POST /dashboard/invoices/update", guard(invoiceH.Update))
	mux.Handle("POST /dashboard/invoices/delete", guard(invoiceH.Delete))
	mux.Handle("GET /dashboard/customers", guard(customerH.List))
	mux.Handle("GET /dashboard/customers/fields", guard(customerH.Fields))

	return &App{mux: mux, sessions: sessions, log: log}
}

// ServeHTTP applies session and logging middleware around the route table.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a.sessions.Middleware(a.mux).ServeHTTP(w, r)
	a.log.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Dur("duration", time.Since(start)).
		Msg("request")
}
