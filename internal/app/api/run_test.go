package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryserver "github.com/Apurer/go-gin-inventory-server/go"

	inventorymemory "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application"
	apierrors "github.com/Apurer/go-gin-inventory-server/internal/shared/errors"
)

func TestNewEngine_MiddlewareReachesRoutes(t *testing.T) {
	logger := discardLogger()
	handlers := inventoryserver.ApiHandleFunctions{
		InventoryAPI: inventoryserver.NewInventoryAPI(
			inventoryapp.NewService(inventorymemory.NewRepository()),
			apierrors.NewResponder(logger),
		),
		PluginAPI: inventoryserver.NewPluginAPI("/projects/demo", "/projects/demo/scene.blend"),
		HealthAPI: inventoryserver.NewHealthAPI(DriverMemory, nil),
	}
	router := inventoryserver.NewRouterWithGinEngine(newEngine(Config{ServiceName: "inventory-api"}, logger), handlers)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-items", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(inventoryserver.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/get-items", nil)
	req.Header.Set(inventoryserver.RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(inventoryserver.RequestIDHeader))
}

func TestServe_DrainsInFlightRequestOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		_, _ = io.WriteString(w, "done")
	})}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln, 5*time.Second, discardLogger()) }()

	type result struct {
		status int
		body   string
		err    error
	}
	responses := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			responses <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		responses <- result{status: resp.StatusCode, body: string(body), err: err}
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}
	cancel()

	select {
	case err := <-served:
		t.Fatalf("serve returned before the in-flight request finished: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	close(release)

	select {
	case err := <-served:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}
	res := <-responses
	require.NoError(t, res.err)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "done", res.body)
}

func TestServe_ShutdownTimeoutIsAnError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	srv := &http.Server{Handler: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		close(started)
		<-release
	})}

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln, 50*time.Millisecond, discardLogger()) }()
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/stuck")
		if err == nil {
			resp.Body.Close()
		}
	}()

	<-started
	cancel()
	select {
	case err := <-served:
		require.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(5 * time.Second):
		t.Fatal("serve ignored the shutdown timeout")
	}
}
