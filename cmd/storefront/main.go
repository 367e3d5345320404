package main

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ThreadLine/internal/cart"
	"ThreadLine/internal/catalog"
	"ThreadLine/internal/config"
	"ThreadLine/internal/listing"
	"ThreadLine/internal/storefront"
	"ThreadLine/pkg/kit"
)

const service = "storefront"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.Debug)
	defer func() { _ = log.Sync() }()

	if cfg.SessionSecret == "dev-secret-change-me" {
		log.Warn("using default session secret; set STOREFRONT_SESSION_SECRET in production")
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		log.Fatal("init catalog store failed", zap.Error(err))
	}
	defer closeStore()

	sessions := cart.NewSessions(cfg.SessionTTL)
	defer sessions.Close()

	catSrv := &catalog.Server{
		Store:     store,
		Log:       log,
		ListDelay: cfg.ListDelay,
		ItemDelay: cfg.ItemDelay,
	}
	browseSrv := &listing.Server{Store: store, Log: log}
	cartSrv := &cart.Server{
		Sessions: sessions,
		Tokens:   cart.NewTokenMaker(cfg.SessionSecret, cfg.SessionTTL),
		Catalog:  store,
		Log:      log,
	}

	h := storefront.NewHandler(catSrv, browseSrv, cartSrv, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		RateLimit:      cfg.RateLimit,
		RateWindowSecs: cfg.RateWindowSecs,
	})

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStore(cfg config.Config) (catalog.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return catalog.NewMemStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return catalog.NewPostgresStore(db), func() { _ = db.Close() }, nil
}
