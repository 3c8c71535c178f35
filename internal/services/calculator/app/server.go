// Package server wires the calculator runtime: the gRPC API, the HTTP API
// and the catalog override watcher.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/mysticnumbers/internal/platform/grpc"
	"github.com/louisbranch/mysticnumbers/internal/platform/i18n/catalog"
	"github.com/louisbranch/mysticnumbers/internal/platform/logging"
	"github.com/louisbranch/mysticnumbers/internal/platform/timeouts"
	calculatorservice "github.com/louisbranch/mysticnumbers/internal/services/calculator/api/grpc/calculator"
	httpapi "github.com/louisbranch/mysticnumbers/internal/services/calculator/api/http"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds the calculator server settings.
type Config struct {
	// GRPCAddr is the gRPC listen address.
	GRPCAddr string
	// HTTPAddr is the HTTP listen address; empty disables the HTTP API.
	HTTPAddr string
	// CatalogDir overrides the embedded catalogs with a locales tree on disk.
	CatalogDir string
	// WatchCatalogs reloads CatalogDir when its files change.
	WatchCatalogs bool
	HTTP          httpapi.Options
	Logger        *zap.Logger
}

// Server hosts the calculator gRPC and HTTP APIs.
type Server struct {
	grpcListener net.Listener
	httpListener net.Listener
	grpcServer   *grpc.Server
	httpServer   *http.Server
	health       *health.Server
	catalogs     *catalog.Holder
	catalogDir   string
	watch        bool
	logger       *zap.Logger
}

// New creates a configured calculator server listening on the configured addresses.
func New(cfg Config) (*Server, error) {
	logger := logging.OrNop(cfg.Logger)

	catalogs, err := loadCatalogs(cfg.CatalogDir, logger)
	if err != nil {
		return nil, err
	}

	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	var httpListener net.Listener
	if strings.TrimSpace(cfg.HTTPAddr) != "" {
		httpListener, err = net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			_ = grpcListener.Close()
			return nil, fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
		}
	}

	svc := domain.NewService(catalogs, logger)

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.UnaryInterceptor(platformgrpc.UnaryServerMetadataInterceptor()),
	)
	healthServer := health.NewServer()
	calculatorservice.RegisterCalculatorServer(grpcServer, calculatorservice.NewService(svc, logger))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(calculatorservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	s := &Server{
		grpcListener: grpcListener,
		httpListener: httpListener,
		grpcServer:   grpcServer,
		health:       healthServer,
		catalogs:     catalogs,
		catalogDir:   strings.TrimSpace(cfg.CatalogDir),
		watch:        cfg.WatchCatalogs,
		logger:       logger,
	}
	if httpListener != nil {
		httpOpts := cfg.HTTP
		httpOpts.Logger = logger
		s.httpServer = &http.Server{
			Handler:           httpapi.NewHandler(svc, httpOpts),
			ReadHeaderTimeout: timeouts.ReadHeader,
		}
	}
	return s, nil
}

func loadCatalogs(dir string, logger *zap.Logger) (*catalog.Holder, error) {
	if strings.TrimSpace(dir) == "" {
		return catalog.NewHolder(nil), nil
	}
	bundle, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load catalogs from %s: %w", dir, err)
	}
	catalog.ReportMissingKeys(bundle, logger)
	return catalog.NewHolder(bundle), nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// HTTPAddr returns the HTTP listener address, or "" when HTTP is disabled.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Catalogs returns the holder serving catalog texts.
func (s *Server) Catalogs() *catalog.Holder {
	if s == nil {
		return nil
	}
	return s.catalogs
}

// Run creates and serves a calculator server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs the servers until ctx is cancelled or one of them fails, then
// drains them.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	group, groupCtx := errgroup.WithContext(ctx)

	s.logger.Info("calculator gRPC listening", zap.String("addr", s.Addr()))
	group.Go(func() error {
		if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})

	if s.httpServer != nil {
		s.logger.Info("calculator HTTP listening", zap.String("addr", s.HTTPAddr()))
		group.Go(func() error {
			if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve HTTP: %w", err)
			}
			return nil
		})
	}

	if s.watch && s.catalogDir != "" {
		group.Go(func() error {
			if err := catalog.Watch(groupCtx, s.catalogDir, s.catalogs, s.logger); err != nil {
				s.logger.Warn("catalog watcher stopped", zap.Error(err))
			}
			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		s.shutdown()
		return nil
	})

	return group.Wait()
}

// shutdown drains in-flight requests, bounded by timeouts.Shutdown.
func (s *Server) shutdown() {
	s.health.Shutdown()
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown HTTP", zap.Error(err))
		}
		cancel()
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeouts.Shutdown):
		s.grpcServer.Stop()
		<-stopped
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.grpcListener != nil {
		_ = s.grpcListener.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
}
