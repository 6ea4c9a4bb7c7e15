// Package config loads configuration from the environment with sane
// development defaults. Values come from env vars (optionally via a
// .env file loaded in main).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storefront is the configuration of the storefront service.
type Storefront struct {
	Addr       string
	APIBaseURL string

	Cart    CartConfig
	Session SessionConfig

	MetricsEnabled bool
	MetricsToken   string
}

// CartConfig selects and parameterizes the cart persistence backend.
type CartConfig struct {
	// Backend is one of: memory, file, redis, postgres.
	Backend string

	// Dir holds per-namespace JSON files for the file backend.
	Dir string

	Redis RedisConfig

	// DatabaseURL is the postgres DSN for the postgres backend.
	DatabaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type SessionConfig struct {
	TTL time.Duration
}

// DevAPI is the configuration of the dev backend.
type DevAPI struct {
	Addr      string
	JWTSecret string

	MetricsEnabled bool
	MetricsToken   string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func LoadStorefront() (Storefront, error) {
	v := newViper()

	v.SetDefault("STOREFRONT_ADDR", ":8090")
	v.SetDefault("API_BASE_URL", "http://localhost:8091")
	v.SetDefault("CART_BACKEND", "memory")
	v.SetDefault("CART_DIR", "./data/carts")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CART_TTL", "720h")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("METRICS_ENABLED", false)
	v.SetDefault("METRICS_TOKEN", "")

	cfg := Storefront{
		Addr:       v.GetString("STOREFRONT_ADDR"),
		APIBaseURL: v.GetString("API_BASE_URL"),
		Cart: CartConfig{
			Backend: strings.ToLower(v.GetString("CART_BACKEND")),
			Dir:     v.GetString("CART_DIR"),
			Redis: RedisConfig{
				Addr:     v.GetString("REDIS_ADDR"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
				TTL:      v.GetDuration("CART_TTL"),
			},
			DatabaseURL: v.GetString("DATABASE_URL"),
		},
		Session: SessionConfig{
			TTL: v.GetDuration("SESSION_TTL"),
		},
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		MetricsToken:   v.GetString("METRICS_TOKEN"),
	}

	switch cfg.Cart.Backend {
	case "memory", "file", "redis", "postgres":
	default:
		return Storefront{}, fmt.Errorf("unknown cart backend %q", cfg.Cart.Backend)
	}
	if cfg.Cart.Backend == "postgres" && cfg.Cart.DatabaseURL == "" {
		return Storefront{}, fmt.Errorf("DATABASE_URL required for postgres cart backend")
	}

	return cfg, nil
}

func LoadDevAPI() (DevAPI, error) {
	v := newViper()

	v.SetDefault("DEVAPI_ADDR", ":8091")
	v.SetDefault("JWT_SECRET", "dev-secret-not-for-production")
	v.SetDefault("METRICS_ENABLED", false)
	v.SetDefault("METRICS_TOKEN", "")

	cfg := DevAPI{
		Addr:           v.GetString("DEVAPI_ADDR"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		MetricsToken:   v.GetString("METRICS_TOKEN"),
	}

	if cfg.JWTSecret == "" {
		return DevAPI{}, fmt.Errorf("JWT_SECRET must not be empty")
	}
	return cfg, nil
}
