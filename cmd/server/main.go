package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/code1379/bookmark/internal/api/controller"
	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/api/service"
	"github.com/code1379/bookmark/internal/auth"
	"github.com/code1379/bookmark/internal/config"
	"github.com/code1379/bookmark/internal/logger"
	"github.com/code1379/bookmark/internal/middleware"
	"github.com/code1379/bookmark/internal/server"
	"github.com/code1379/bookmark/internal/store"
	"github.com/code1379/bookmark/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Initialize telemetry
	shutdownTelemetry, err := telemetry.InitOtel()
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdownTelemetry(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.Init(cfg.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Select the persistence backend once; repositories never branch on it.
	var backend store.Store
	if cfg.RemoteConfigured() {
		backend = store.NewD1Client(cfg.CloudflareAccountID, cfg.D1DatabaseID, cfg.D1APIToken)
		slog.Info("using Cloudflare D1 backend")
	} else {
		fallback, err := store.NewSQLiteStore()
		if err != nil {
			log.Fatalf("failed to initialize fallback store: %v", err)
		}
		defer fallback.Close()
		backend = fallback
		slog.Warn("D1 is not configured, using the in-memory fallback store; data will not survive a restart")
	}

	sessions := auth.NewSessionManager(cfg.SessionSecret(), auth.SessionTTL)

	// Create repositories
	userRepo := repository.NewUserRepository(backend)
	categoryRepo := repository.NewCategoryRepository(backend)
	bookmarkRepo := repository.NewBookmarkRepository(backend)

	// Create services
	userService := service.NewUserService(userRepo, sessions)
	categoryService := service.NewCategoryService(categoryRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo)

	// Create controllers
	authController := controller.NewAuthController(userService, cfg.IsProduction())
	bookmarkController := controller.NewBookmarkController(bookmarkService)
	categoryController := controller.NewCategoryController(categoryService)

	srv := server.New(
		authController,
		bookmarkController,
		categoryController,
		middleware.SessionAuth(sessions, userRepo),
	)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("server exiting")
}
