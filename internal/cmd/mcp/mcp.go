// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"

	entrypoint "github.com/louisbranch/mysticnumbers/internal/platform/cmd"
	"github.com/louisbranch/mysticnumbers/internal/platform/discovery"
	mcpservice "github.com/louisbranch/mysticnumbers/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	// Addr is the calculator gRPC address; empty computes in process.
	Addr string `env:"MYSTIC_NUMBERS_CALCULATOR_ADDR"`
	// Remote selects the in-network calculator address when Addr is empty.
	Remote    bool   `env:"MYSTIC_NUMBERS_MCP_REMOTE"`
	HTTPAddr  string `env:"MYSTIC_NUMBERS_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"MYSTIC_NUMBERS_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Calculator gRPC address; empty computes in process")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.BoolVar(&cfg.Remote, "remote", cfg.Remote, "Use the in-network calculator service when -addr is empty")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Remote {
		cfg.Addr = discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceCalculator)
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter. Logs go to stderr so the stdio
// transport keeps stdout to itself.
func Run(ctx context.Context, cfg Config) error {
	logger, err := entrypoint.NewLogger(entrypoint.ServiceMCP)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	options := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceMCP, options, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			CalculatorAddr: cfg.Addr,
			HTTPAddr:       cfg.HTTPAddr,
			Transport:      cfg.Transport,
			Logger:         logger,
		})
	})
}
