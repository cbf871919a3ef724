package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/todos/internal/application/todo"
	"github.com/rezkam/todos/internal/config"
	todohttp "github.com/rezkam/todos/internal/infrastructure/http"
	"github.com/rezkam/todos/internal/infrastructure/http/handler"
	"github.com/rezkam/todos/internal/infrastructure/observability"
	"github.com/rezkam/todos/internal/infrastructure/persistence"
)

// telemetryFlushTimeout bounds provider shutdown when the collector is unreachable.
const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be initialized if config loading failed
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context, cancelled on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration via OTEL_* env vars (endpoint, headers, resource attributes)
	telemetry, err := observability.Setup(ctx, observability.Config{
		Enabled:        cfg.Observability.OTelEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: handler.Version,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	slog.SetDefault(telemetry.Logger)

	slog.InfoContext(ctx, "starting todos service",
		"env", cfg.Env,
		"driver", cfg.Database.Driver,
		"otel_enabled", cfg.Observability.OTelEnabled)

	store, err := persistence.Open(ctx, cfg.Database)
	if err != nil {
		flushTelemetry(telemetry)
		return fmt.Errorf("failed to create store: %w", err)
	}

	slog.InfoContext(ctx, "storage initialized", "target", maskPassword(cfg.Database.ConnectionString()))

	cleanup := newCleanup(context.Background(), telemetry, store)
	defer cleanup()

	svc := todo.NewService(store)

	server := todohttp.NewAPIServer(handler.NewAPIRouter(svc), todohttp.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		AllowCredentials:  cfg.CORS.AllowCredentials,
		CORSMaxAge:        cfg.CORS.MaxAge,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		// Fresh context: ctx is already cancelled here.
		httpCtx, cancel := newShutdownContext(cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(httpCtx); err != nil {
			slog.WarnContext(httpCtx, "HTTP server shutdown timed out", "error", err)
			return nil
		}
		slog.InfoContext(httpCtx, "HTTP server shutdown complete")
		return nil
	case err := <-errResult:
		return err
	}
}

func flushTelemetry(telemetry shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), telemetryFlushTimeout)
	defer cancel()
	if err := telemetry.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down telemetry", "error", err)
	}
}

// newShutdownContext creates a fresh context with timeout for graceful shutdown operations.
func newShutdownContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// maskPassword masks the password in a connection string for logging.
// Non-URL targets such as SQLite file paths are returned unchanged.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
