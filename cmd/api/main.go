package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/newsdeck/internal/api"
	"github.com/timmy/newsdeck/internal/config"
	"github.com/timmy/newsdeck/internal/logger"
	"github.com/timmy/newsdeck/internal/repository"
	"github.com/timmy/newsdeck/internal/service"
)

func main() {
	appLogger := logger.NewFromEnv(logger.LoadFromEnv("newsdeck-api"))
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH is used by production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	newsRepo := repository.NewNewsRepository(db)
	newsService := service.NewNewsService(newsRepo, &service.NewsConfig{
		DefaultLimit: cfg.News.DefaultLimit,
		MaxLimit:     cfg.News.MaxLimit,
	})

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to get database handle")
	}
	defer sqlDB.Close()

	router := api.SetupRouter(newsService, sqlDB.PingContext, &cfg.Server, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
