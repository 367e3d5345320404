// Package storefront assembles the catalog, listing, and cart servers into
// the single public HTTP surface.
package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ThreadLine/internal/cart"
	"ThreadLine/internal/catalog"
	"ThreadLine/internal/listing"
	"ThreadLine/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	RateLimit      int // requests per window per IP; 0 disables
	RateWindowSecs int
}

func NewHandler(cat *catalog.Server, browse *listing.Server, crt *cart.Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(cat.Store, deps.Log))

	r.Get("/products", cat.ListHandler())
	r.Get("/products/browse", browse.BrowseHandler())
	r.Get("/products/{id}", cat.GetHandler())

	r.Post("/cart", crt.CreateSessionHandler())
	r.Group(func(pr chi.Router) {
		pr.Use(crt.RequireSession)
		pr.Get("/cart", crt.ShowHandler())
		pr.Post("/cart/items", crt.AddItemHandler())
		pr.Put("/cart/items", crt.UpdateItemHandler())
		pr.Delete("/cart/items/{id}/{size}", crt.RemoveItemHandler())
		pr.Delete("/cart", crt.ClearHandler())
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	if deps.RateLimit > 0 {
		limiter := kit.NewIPRateLimiter(deps.RateLimit, deps.RateWindowSecs)
		r.Use(limiter.Middleware)
	}
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func readyz(store catalog.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", "")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
