package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	platformgrpc "github.com/louisbranch/mysticnumbers/internal/platform/grpc"
	"github.com/louisbranch/mysticnumbers/internal/platform/logging"
	"github.com/louisbranch/mysticnumbers/internal/platform/timeouts"
	calculatorservice "github.com/louisbranch/mysticnumbers/internal/services/calculator/api/grpc/calculator"
	calculator "github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"github.com/louisbranch/mysticnumbers/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "mystic-numbers"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"

	healthCheckInterval = 30 * time.Second
)

// Transport kinds.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config selects the MCP transport and calculator backend.
type Config struct {
	// CalculatorAddr is the calculator gRPC address; empty computes in process.
	CalculatorAddr string
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	// Transport is TransportStdio or TransportHTTP.
	Transport string
	Logger    *zap.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
	logger    *zap.Logger
}

// New creates an MCP server backed by the calculator at addr, or by an
// in-process calculator when addr is empty.
func New(ctx context.Context, addr string, logger *zap.Logger) (*Server, error) {
	logger = logging.OrNop(logger)
	if strings.TrimSpace(addr) == "" {
		return NewWithCalculator(calculator.NewService(nil, logger), logger), nil
	}

	conn, err := dialCalculator(ctx, addr, logger)
	if err != nil {
		return nil, err
	}
	server := NewWithCalculator(calculatorservice.NewClient(conn), logger)
	server.conn = conn
	return server, nil
}

// NewWithCalculator creates an MCP server backed by calc.
func NewWithCalculator(calc calculator.Calculator, logger *zap.Logger) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, calc)
	registerResources(mcpServer, calc)
	return &Server{mcpServer: mcpServer, logger: logging.OrNop(logger)}
}

func registerTools(server *mcp.Server, calc calculator.Calculator) {
	mcp.AddTool(server, domain.ProfileTool(), domain.ProfileHandler(calc))
	mcp.AddTool(server, domain.ReduceTool(), domain.ReduceHandler(calc))
	mcp.AddTool(server, domain.DescribeTool(), domain.DescribeHandler(calc))
}

func registerResources(server *mcp.Server, calc calculator.Calculator) {
	server.AddResource(domain.LocalesResource(), domain.LocalesResourceHandler(calc))
	server.AddResourceTemplate(domain.InterpretationResourceTemplate(), domain.InterpretationResourceHandler(calc))
}

func dialCalculator(ctx context.Context, addr string, logger *zap.Logger) (*grpc.ClientConn, error) {
	conn, err := platformgrpc.DialWithHealth(ctx, addr, calculatorservice.ServiceName, timeouts.GRPCDial, logger)
	if err != nil {
		var dialErr *platformgrpc.DialError
		if errors.As(err, &dialErr) && dialErr.Stage == platformgrpc.DialStageHealth {
			return nil, fmt.Errorf("calculator gRPC health check failed for %s: %w", addr, dialErr.Err)
		}
		return nil, fmt.Errorf("connect to calculator at %s: %w", addr, err)
	}
	return conn, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(ctx, cfg.CalculatorAddr, cfg.Logger)
	if err != nil {
		return err
	}
	if cfg.Transport == TransportHTTP {
		return server.ServeHTTP(ctx, cfg.HTTPAddr)
	}
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server on transport and releases the
// calculator connection on exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return s.finish("serve MCP", err)
}

// ServeHTTP serves the MCP streamable HTTP transport on addr until ctx ends.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.TrimSpace(addr) == "" {
		addr = "localhost:8081"
	}

	healthCtx, healthCancel := context.WithCancel(ctx)
	defer healthCancel()
	go s.monitorHealth(healthCtx, healthCheckInterval)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("MCP HTTP listening", zap.String("addr", addr))
		serveErr <- httpServer.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err = httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
	case err = <-serveErr:
	}
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return s.finish("serve MCP HTTP", err)
}

// HTTPHandler returns the streamable HTTP handler for the MCP server, with a
// health probe at /healthz.
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil))
	return mux
}

// monitorHealth periodically checks the calculator connection. Failures are
// logged; tool calls surface their own errors.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	if s == nil || s.conn == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthClient := grpc_health_v1.NewHealthClient(s.conn)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
			response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: calculatorservice.ServiceName})
			cancel()
			if err != nil {
				s.logger.Warn("calculator health check failed", zap.Error(err))
			} else if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				s.logger.Warn("calculator health check status", zap.Stringer("status", response.GetStatus()))
			}
		}
	}
}

func (s *Server) finish(op string, err error) error {
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close gRPC connection: %w", closeErr)
		}
		return fmt.Errorf("%s: %v; close gRPC connection: %w", op, err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close releases the gRPC connection held by the server.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return err
	}
	s.conn = nil
	return nil
}
