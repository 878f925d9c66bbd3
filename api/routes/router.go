package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rkartside/quoter-backend/api/controllers"
	"github.com/rkartside/quoter-backend/api/middleware"
	"github.com/rkartside/quoter-backend/internal/auth"
	"github.com/rkartside/quoter-backend/internal/quotes"
	"github.com/rkartside/quoter-backend/internal/rates"
	"github.com/rkartside/quoter-backend/internal/stores"
	"github.com/rkartside/quoter-backend/pkg/auth/session"
	"github.com/rkartside/quoter-backend/pkg/config"
	"github.com/rkartside/quoter-backend/pkg/db"
	"github.com/rkartside/quoter-backend/pkg/enums"
	"github.com/rkartside/quoter-backend/pkg/logger"
	"github.com/rkartside/quoter-backend/pkg/metrics"
	pkgredis "github.com/rkartside/quoter-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *pkgredis.Client
	SessionManager sessionManager
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService   auth.Service
	SwitchService auth.SwitchStoreService
	StoreService  stores.Service
	RateService   rates.Service
	QuoteService  quotes.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
		middleware.BasicAuthGateway(cfg.Gateway, logg),
	)

	r.Route("/healthz", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		// Pass an untyped nil when Redis isn't wired; a typed-nil *Client in
		// the interface would defeat HealthReady's nil guard.
		var cache pkgredis.Pinger
		if deps.Redis != nil {
			cache = deps.Redis
		}
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cache, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/auth", func(r chi.Router) {
			r.With(middleware.RequireRole(string(enums.MemberRoleAdmin), logg)).
				Post("/switch-store/{storeId}", controllers.AuthSwitchStore(deps.SwitchService, cfg.JWT, logg))
		})

		r.Route("/v1/stores", func(r chi.Router) {
			r.Get("/me", controllers.StoreProfile(deps.StoreService, logg))
			r.With(middleware.RequireRole(string(enums.MemberRoleAdmin), logg)).Get("/", controllers.StoreList(deps.StoreService, logg))
			r.Get("/{storeId}", controllers.StoreGet(deps.StoreService, logg))
		})

		r.Route("/v1/rates", func(r chi.Router) {
			r.Post("/calculate", controllers.RatesCalculate(deps.RateService, logg))
		})

		r.Route("/v1/quotes", func(r chi.Router) {
			lockTTL := cfg.Quotes.ActionLockTTL

			r.Get("/", controllers.QuoteList(deps.QuoteService, cfg.Quotes.PageSize, logg))
			r.With(middleware.ActionLock(deps.Redis, "quote_create", lockTTL, logg)).
				Post("/", controllers.QuoteCreate(deps.QuoteService, deps.RateService, logg))
			r.With(middleware.ActionLock(deps.Redis, "quote_confirm", lockTTL, logg)).
				Post("/{quoteId}/confirm", controllers.QuoteConfirm(deps.QuoteService, logg))
			r.With(middleware.ActionLock(deps.Redis, "quote_bulk_status", lockTTL, logg)).
				Post("/bulk-status", controllers.QuoteBulkStatus(deps.QuoteService, logg))
			r.With(middleware.ActionLock(deps.Redis, "quote_bulk_delete", lockTTL, logg)).
				Post("/bulk-delete", controllers.QuoteBulkDelete(deps.QuoteService, logg))
		})
	})

	return r
}
