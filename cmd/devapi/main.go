package main

import (
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bitykart/internal/config"
	"bitykart/internal/devapi"
	"bitykart/pkg/kit"
)

func main() {
	service := "devapi"

	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg, err := config.LoadDevAPI()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	s := &devapi.Server{
		Log:      log,
		Users:    devapi.NewUserStore(),
		Orders:   devapi.NewOrderStore(),
		Products: devapi.SeedProducts(),
		JWT:      devapi.NewTokenMaker(cfg.JWTSecret),
	}

	reg := prometheus.NewRegistry()
	h := devapi.NewHandler(s, devapi.HTTPDeps{
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
