package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xailabs/insightflow/internal/analyzer"
	"github.com/xailabs/insightflow/internal/config"
	"github.com/xailabs/insightflow/internal/db"
	"github.com/xailabs/insightflow/internal/metrics"
	"github.com/xailabs/insightflow/internal/repository"
	"github.com/xailabs/insightflow/internal/router"
	"github.com/xailabs/insightflow/internal/services"
	"github.com/xailabs/insightflow/internal/storage"
	"github.com/xailabs/insightflow/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel)

	if !cfg.GroqConfigured() {
		logger.Warn("GROQ_API_KEY not configured; analysis requests will fail until it is set")
	}

	metrics.Init()

	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	if err := db.RunMigrations(cfg.DatabasePath); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	var reportStore storage.Storage
	if cfg.Export.Enabled {
		reportStore, err = storage.NewObjectStorage(cfg.Export)
		if err != nil {
			logger.Fatal("Failed to initialize report storage", "error", err)
		}
	}

	repo := repository.NewRepository(database)
	llm := analyzer.NewGroqAnalyzer(
		cfg.Groq.APIKey,
		cfg.Groq.Model,
		cfg.Groq.BaseURL,
		time.Duration(cfg.Groq.TimeoutSec)*time.Second,
		logger.With("component", "analyzer"),
	)
	service := services.NewService(repo, llm, reportStore, cfg, logger)

	handler := router.NewRouter(service, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "model", cfg.Groq.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
