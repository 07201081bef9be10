// Copyright (c) 2026 Centra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Centra HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Sync the access-right catalogue and seed bootstrap data.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/centra/internal/api"
	"github.com/taibuivan/centra/internal/core/center"
	"github.com/taibuivan/centra/internal/core/organization"
	"github.com/taibuivan/centra/internal/core/role"
	"github.com/taibuivan/centra/internal/core/task"
	"github.com/taibuivan/centra/internal/platform/config"
	"github.com/taibuivan/centra/internal/platform/constants"
	"github.com/taibuivan/centra/internal/platform/migration"
	pgstore "github.com/taibuivan/centra/internal/platform/postgres"
	redisstore "github.com/taibuivan/centra/internal/platform/redis"
	"github.com/taibuivan/centra/internal/platform/sec"
	"github.com/taibuivan/centra/internal/platform/seed"
	"github.com/taibuivan/centra/internal/users/account"
	"github.com/taibuivan/centra/internal/users/admin"
	"github.com/taibuivan/centra/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "centra"))
	slog.SetDefault(log)

	log.Info("[Centra] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "centra"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Service ──────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	must(log, err, "initialize token service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	assignmentRepository := auth.NewAssignmentRepository(pool)
	resolver := auth.NewResolver(assignmentRepository)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, resolver, resetTokenRepository, tokenService)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(account.NewPostgresRepository(pool), log)
	accountHandler := account.NewHandler(accountService)

	adminService := admin.NewService(admin.NewPostgresRepository(pool), log)
	adminHandler := admin.NewHandler(adminService)

	organizationService := organization.NewService(organization.NewPostgresRepository(pool), log)
	organizationHandler := organization.NewHandler(organizationService)

	centerService := center.NewService(center.NewPostgresRepository(pool), log)
	centerHandler := center.NewHandler(centerService)

	roleService := role.NewService(role.NewPostgresRepository(pool), role.NewPostgresAssignmentRepository(pool), log)
	roleHandler := role.NewHandler(roleService)

	taskService := task.NewService(task.NewPostgresRepository(pool), log)
	taskHandler := task.NewHandler(taskService)

	// ── 9. Catalogue Sync & Seed ──────────────────────────────────────────
	// The access-right table mirrors the compiled-in registry; reconcile it
	// on every startup so new permissions become visible to role editors.
	must(log, roleService.SyncAccessRights(startupCtx), "sync access rights")
	must(log, seed.Run(startupCtx, pool, cfg.SeedAdminPassword, log), "seed bootstrap data")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		Admin:        adminHandler,
		Organization: organizationHandler,
		Center:       centerHandler,
		Role:         roleHandler,
		Task:         taskHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, authService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
