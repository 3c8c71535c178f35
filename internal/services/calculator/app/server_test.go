package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	platformgrpc "github.com/louisbranch/mysticnumbers/internal/platform/grpc"
	calculatorservice "github.com/louisbranch/mysticnumbers/internal/services/calculator/api/grpc/calculator"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreAnyFunction("google.golang.org/grpc/internal/grpcsync.(*CallbackSerializer).run"))
}

func startServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.GRPCAddr == "" {
		cfg.GRPCAddr = "127.0.0.1:0"
	}
	cfg.Logger = zap.NewNop()

	srv, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(ctx)
	}()
	t.Cleanup(func() {
		http.DefaultClient.CloseIdleConnections()
		cancel()
		select {
		case serveErr := <-serveDone:
			require.NoError(t, serveErr)
		case <-time.After(10 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv
}

func httpGet(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerServesGRPCAndHTTP(t *testing.T) {
	srv := startServer(t, Config{HTTPAddr: "127.0.0.1:0"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, err := platformgrpc.DialWithHealth(ctx, srv.Addr(), calculatorservice.ServiceName, 5*time.Second, nil)
	require.NoError(t, err)
	defer conn.Close()

	client := calculatorservice.NewClient(conn)
	viaGRPC, err := client.ComputeProfile(ctx, domain.ProfileInput{BirthDate: "1990-05-15", Name: "John"})
	require.NoError(t, err)
	require.Equal(t, 3, viaGRPC.LifePath)

	resp, err := http.Post("http://"+srv.HTTPAddr()+"/v1/profile", "application/json",
		strings.NewReader(`{"birth_date":"1990-05-15","name":"John"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var viaHTTP domain.ProfileView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&viaHTTP))
	require.Equal(t, viaGRPC, viaHTTP)

	status, _ := httpGet(t, "http://"+srv.HTTPAddr()+"/healthz")
	require.Equal(t, http.StatusOK, status)
}

func TestServerWithoutHTTP(t *testing.T) {
	srv := startServer(t, Config{})
	require.Empty(t, srv.HTTPAddr())
	require.NotEmpty(t, srv.Addr())
}

func TestServerServesCatalogOverrides(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "interpretations", `  "interpretation.lifePath.3": "First override"`)

	srv := startServer(t, Config{HTTPAddr: "127.0.0.1:0", CatalogDir: dir, WatchCatalogs: true})
	url := "http://" + srv.HTTPAddr() + "/v1/interpretations/lifePath/3"

	status, body := httpGet(t, url)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "First override")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		writeCatalog(t, dir, "interpretations", `  "interpretation.lifePath.3": "Second override"`)
		time.Sleep(300 * time.Millisecond)
		if _, body := httpGet(t, url); strings.Contains(body, "Second override") {
			return
		}
	}
	t.Fatal("catalog override was not reloaded")
}

func TestNewRejectsBrokenCatalogDir(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "interpretations", `  "core.app.title": "misplaced"`)

	_, err := New(Config{GRPCAddr: "127.0.0.1:0", CatalogDir: dir})
	require.Error(t, err)
}

func TestNewRejectsBusyAddress(t *testing.T) {
	srv := startServer(t, Config{})
	_, err := New(Config{GRPCAddr: srv.Addr()})
	require.Error(t, err)
}

func TestServeRejectsNilServer(t *testing.T) {
	var srv *Server
	require.Error(t, srv.Serve(context.Background()))
	require.Empty(t, srv.Addr())
}

func writeCatalog(t *testing.T, dir string, namespace string, messages string) {
	t.Helper()
	path := filepath.Join(dir, "locales", "en-US", namespace+".yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := "locale: \"en-US\"\nnamespace: \"" + namespace + "\"\nmessages:\n" + messages + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
