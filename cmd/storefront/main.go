package main

import (
	"database/sql"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"bitykart/internal/cart"
	"bitykart/internal/catalog"
	"bitykart/internal/config"
	"bitykart/internal/render"
	"bitykart/internal/session"
	"bitykart/internal/shopapi"
	"bitykart/internal/storefront"
	"bitykart/pkg/kit"
)

func main() {
	service := "storefront"

	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadStorefront()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	backend, err := cartBackend(cfg.Cart)
	if err != nil {
		log.Fatal("cart backend", zap.Error(err), zap.String("backend", cfg.Cart.Backend))
	}
	log.Info("cart backend ready", zap.String("backend", cfg.Cart.Backend))

	s := &storefront.Server{
		Log:      log,
		Cart:     cart.NewStore(backend),
		Catalog:  catalog.NewCache(catalog.NewClient(cfg.APIBaseURL)),
		API:      shopapi.NewClient(cfg.APIBaseURL),
		Sessions: session.NewManager(cfg.Session.TTL),
		Render:   render.New(),
	}

	reg := prometheus.NewRegistry()
	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func cartBackend(cfg config.CartConfig) (cart.Backend, error) {
	switch cfg.Backend {
	case "file":
		return cart.NewFileBackend(cfg.Dir)
	case "redis":
		return cart.NewRedisBackend(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	case "postgres":
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return cart.NewPostgresBackend(db), nil
	default:
		return cart.NewMemBackend(), nil
	}
}
