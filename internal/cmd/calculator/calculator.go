// Package calculator parses calculator service flags and launches the service.
package calculator

import (
	"context"
	"flag"
	"time"

	entrypoint "github.com/louisbranch/mysticnumbers/internal/platform/cmd"
	server "github.com/louisbranch/mysticnumbers/internal/services/calculator/app"
	httpapi "github.com/louisbranch/mysticnumbers/internal/services/calculator/api/http"
	"go.uber.org/zap"
)

// Config holds calculator command configuration.
type Config struct {
	GRPCAddr       string        `env:"MYSTIC_NUMBERS_CALCULATOR_GRPC_ADDR" envDefault:":8090"`
	HTTPAddr       string        `env:"MYSTIC_NUMBERS_CALCULATOR_HTTP_ADDR" envDefault:":8080"`
	CatalogDir     string        `env:"MYSTIC_NUMBERS_CATALOG_DIR"`
	WatchCatalogs  bool          `env:"MYSTIC_NUMBERS_CATALOG_WATCH"        envDefault:"true"`
	AllowedOrigins []string      `env:"MYSTIC_NUMBERS_CORS_ORIGINS"         envSeparator:","`
	RateLimit      float64       `env:"MYSTIC_NUMBERS_RATE_LIMIT"           envDefault:"10"`
	RateBurst      int           `env:"MYSTIC_NUMBERS_RATE_BURST"           envDefault:"20"`
	RevealDelay    time.Duration `env:"MYSTIC_NUMBERS_REVEAL_DELAY"         envDefault:"1500ms"`
	TrustedProxies []string      `env:"MYSTIC_NUMBERS_TRUSTED_PROXIES"      envSeparator:","`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "The calculator gRPC listen address")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The calculator HTTP listen address; empty disables HTTP")
	fs.StringVar(&cfg.CatalogDir, "catalog-dir", cfg.CatalogDir, "Directory holding a locales/ catalog tree that replaces the embedded catalogs")
	fs.BoolVar(&cfg.WatchCatalogs, "watch-catalogs", cfg.WatchCatalogs, "Reload the catalog directory when it changes")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Sustained HTTP requests per second per client; 0 disables limiting")
	fs.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "HTTP request burst per client")
	fs.DurationVar(&cfg.RevealDelay, "reveal-delay", cfg.RevealDelay, "Default pause before a websocket reveal")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig converts the command configuration for the server package.
func (c Config) ServerConfig(logger *zap.Logger) server.Config {
	return server.Config{
		GRPCAddr:      c.GRPCAddr,
		HTTPAddr:      c.HTTPAddr,
		CatalogDir:    c.CatalogDir,
		WatchCatalogs: c.WatchCatalogs,
		HTTP: httpapi.Options{
			AllowedOrigins: c.AllowedOrigins,
			RateLimit:      c.RateLimit,
			RateBurst:      c.RateBurst,
			RevealDelay:    c.RevealDelay,
			TrustedProxies: c.TrustedProxies,
		},
		Logger: logger,
	}
}

// Run starts the calculator gRPC and HTTP APIs.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceCalculator)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()
	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceCalculator, options, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig(logger))
	})
}
