package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	inventoryserver "github.com/Apurer/go-gin-inventory-server/go"

	inventoryobs "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/adapters/observability"
	inventoryapp "github.com/Apurer/go-gin-inventory-server/internal/domains/inventory/application"
	platformobservability "github.com/Apurer/go-gin-inventory-server/internal/platform/observability"
	apierrors "github.com/Apurer/go-gin-inventory-server/internal/shared/errors"
)

// Run boots the inventory HTTP API and blocks until ctx is cancelled, then
// drains in-flight requests and releases the store.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		LogLevel:    cfg.Log.Level,
		LogFormat:   cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("failed to close inventory store", slog.String("error", err.Error()))
		}
	}()

	locker, closeLocker, err := openLocker(ctx, cfg.Lock, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeLocker() }()

	coreService := inventoryapp.NewService(st.repo, inventoryapp.WithLocker(locker))
	service := inventoryobs.New(
		coreService,
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)

	handlers := inventoryserver.ApiHandleFunctions{
		InventoryAPI: inventoryserver.NewInventoryAPI(service, apierrors.NewResponder(logger)),
		PluginAPI:    inventoryserver.NewPluginAPI(cfg.Paths.ProjectFolder, cfg.Paths.DCCFile),
		HealthAPI:    inventoryserver.NewHealthAPI(cfg.Store.Driver, st.ping),
	}
	router := inventoryserver.NewRouterWithGinEngine(newEngine(cfg, logger), handlers)

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return serve(ctx, &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, ln, cfg.HTTP.ShutdownTimeout, logger)
}

// newEngine registers middleware before any route so every route gets it.
func newEngine(cfg Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		inventoryserver.RequestID(),
		otelgin.Middleware(cfg.ServiceName),
		inventoryserver.AccessLog(logger),
		inventoryserver.ResponseDelay(cfg.HTTP.ResponseDelay, "/healthz", "/file-path"),
	)
	return router
}

// serve owns ln until it returns. Cancelling ctx stops accepting connections
// and waits up to shutdownTimeout for in-flight requests to finish.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *slog.Logger) error {
	addr := ln.Addr().String()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("inventory API listening", slog.String("addr", addr))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("inventory API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down inventory API")
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
