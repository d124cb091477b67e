package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/config"
	"github.com/yukikurage/taskboard/internal/database"
	"github.com/yukikurage/taskboard/internal/handlers"
	"github.com/yukikurage/taskboard/internal/httpserver"
	"github.com/yukikurage/taskboard/internal/logger"
	"github.com/yukikurage/taskboard/internal/repository"
	"github.com/yukikurage/taskboard/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.IsRelease(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize services and handlers
	store := repository.NewStore(db)
	router := httpserver.NewRouter(httpserver.Handlers{
		System: handlers.NewSystemHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}, zlog),
		Users:    handlers.NewUserHandler(services.NewUserService(store)),
		Projects: handlers.NewProjectHandler(services.NewProjectService(store), zlog),
		Tasks:    handlers.NewTaskHandler(services.NewTaskService(store)),
	}, cfg.CORSAllowedOrigins, zlog)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	run(srv, db, zlog)
}

// run serves until SIGINT/SIGTERM and then drains in-flight requests.
func run(srv *http.Server, db *gorm.DB, zlog *zap.Logger) {
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zlog.Error("Server failed", zap.Error(err))
	case sig := <-quit:
		zlog.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		zlog.Warn("Failed to close database", zap.Error(err))
	}
}
