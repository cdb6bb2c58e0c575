package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/fintrack/internal/app"
	"github.com/fintrack/fintrack/internal/auth"
	"github.com/fintrack/fintrack/internal/movements"
	"github.com/fintrack/fintrack/internal/pages"
	"github.com/fintrack/fintrack/internal/platform/cache"
	"github.com/fintrack/fintrack/internal/platform/db"
	"github.com/fintrack/fintrack/internal/rbac"
	"github.com/fintrack/fintrack/internal/reports"
	"github.com/fintrack/fintrack/internal/roles"
	"github.com/fintrack/fintrack/internal/shared"
	"github.com/fintrack/fintrack/internal/users"
	"github.com/fintrack/fintrack/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	rbacService := rbac.NewService(rbac.NewRepository(pool))
	rbacMiddleware := rbac.Middleware{Resolver: rbacService, Logger: logger}
	pageGuard := rbac.PageGuard{Resolver: rbacService, Logger: logger}

	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	movementsService := movements.NewService(movements.NewRepository(pool))
	movementsHandler := movements.NewHandler(logger, movementsService, rbacMiddleware)

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, rbacMiddleware)

	rolesService := roles.NewService(roles.NewRepository(pool))
	rolesHandler := roles.NewHandler(logger, rolesService, rbacMiddleware)

	reportsService := reports.NewService(reports.NewRepository(pool))
	reportsHandler := reports.NewHandler(logger, reportsService, rbacMiddleware)

	permissionsHandler := rbac.NewPermissionsHandler(logger, rbacService)
	pagesHandler := pages.NewHandler(logger, templates, csrfManager)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Templates:          templates,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		PagesHandler:       pagesHandler,
		MovementsHandler:   movementsHandler,
		UsersHandler:       usersHandler,
		RolesHandler:       rolesHandler,
		ReportsHandler:     reportsHandler,
		PermissionsHandler: permissionsHandler,
		PageGuard:          pageGuard,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
