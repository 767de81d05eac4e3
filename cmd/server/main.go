// Dilçi - translation web server
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/activity"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/api"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/auth"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/config"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gateway"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/gemini"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/health"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/middleware"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/session"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/store"
	"github.com/hacktivities2025-ctrl/zirv--v2/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped successfully")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting server", "port", cfg.Port, "grpc_port", cfg.GRPCPort, "dev", cfg.IsDevelopment())

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()
	slog.Info("Database connected", "path", cfg.DBPath)

	model, err := gemini.NewClient(ctx, cfg.Gemini, logger)
	if err != nil {
		return fmt.Errorf("initialize model client: %w", err)
	}
	gw, err := gateway.New(model, gateway.WithMaxTextLength(cfg.MaxTextLength), gateway.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initialize gateway: %w", err)
	}

	authn, err := auth.New(cfg.AdminPassword, session.NewWriter(cfg.IsProduction(), cfg.SessionTTL))
	if err != nil {
		return fmt.Errorf("initialize auth: %w", err)
	}

	var rec *activity.Recorder
	if cfg.ActivityLog.Enabled {
		rec = activity.NewRecorder(repo, logger)
	} else {
		slog.Info("Activity log disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, repo, gw, rec, authn),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute, // speech synthesis can be slow
		IdleTimeout:       120 * time.Second,
	}

	var grpcLis net.Listener
	if cfg.GRPCPort != "" {
		if grpcLis, err = net.Listen("tcp", ":"+cfg.GRPCPort); err != nil {
			return fmt.Errorf("listen grpc: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if grpcLis != nil {
		hs := health.NewServer(repo, logger)
		grpcSrv := grpc.NewServer()
		hs.Register(grpcSrv)

		g.Go(func() error {
			slog.Info("gRPC health listening", "addr", grpcLis.Addr().String())
			if err := grpcSrv.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			hs.Run(gctx, 0)
			grpcSrv.GracefulStop()
			return nil
		})
	}

	if cfg.ActivityLog.Enabled {
		done := activity.StartRetentionWorker(gctx, repo, cfg.ActivityLog.Retention, cfg.ActivityLog.RetentionPeriod)
		g.Go(func() error {
			<-done
			return nil
		})
	}

	return g.Wait()
}

func newRouter(cfg *config.Config, repo store.Repository, gw gateway.Service, rec *activity.Recorder, authn *auth.Authenticator) http.Handler {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(session.Middleware)
	r.Use(middleware.Guard)

	api.NewHealthHandler(repo).RegisterHealth(r)
	api.NewGatewayHandler(gw, rec).RegisterRoutes(r)
	api.NewAuthHandler(authn).RegisterRoutes(r)
	api.NewAdminHandler(repo).RegisterRoutes(r)

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	return r
}
